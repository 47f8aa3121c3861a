package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// Store persists progress records for polling callers. Writes are
// last-write-wins; readers never block the run.
type Store interface {
	UpdateProgress(ctx context.Context, rec entity.ProgressRecord) error
	GetProgress(ctx context.Context, jobID uuid.UUID) (entity.ProgressRecord, error)
}

// Tracker is the single mutation entry point for a job's progress.
// Stage ordinal and percentage only move forward; backward transitions are
// dropped rather than applied. Terminal stages freeze the record, except
// that any non-terminal stage may still be forced into error.
type Tracker struct {
	store  Store
	logger *slog.Logger

	mu  sync.Mutex
	rec entity.ProgressRecord
}

func NewTracker(jobID uuid.UUID, store Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  store,
		logger: logger,
		rec: entity.ProgressRecord{
			JobID: jobID,
			Stage: constants.StageCreated,
		},
	}
}

// Advance moves the job to stage, clamping the percentage to the stage
// floor. A lower target stage or percentage is ignored.
func (t *Tracker) Advance(ctx context.Context, stage constants.Stage) {
	t.advance(ctx, stage, stage.Floor(), "")
}

// AdvanceImages records per-image completion inside the image window,
// interpolating the percentage between the window bounds.
func (t *Tracker) AdvanceImages(ctx context.Context, processed, total int) {
	pct := constants.ImageProgressStart
	if total > 0 {
		span := constants.ImageProgressEnd - constants.ImageProgressStart
		pct = constants.ImageProgressStart + span*processed/total
	}

	t.mu.Lock()
	if t.rec.Stage.Terminal() {
		t.mu.Unlock()
		return
	}
	t.rec.ImagesTotal = total
	t.rec.ImagesProcessed = processed
	t.mu.Unlock()

	t.advance(ctx, constants.StageProcessing, pct, "")
}

// Fail forces the record into the terminal error stage with a short
// human-readable reason. Safe to call from any non-terminal stage; calling
// it after ready is a no-op.
func (t *Tracker) Fail(ctx context.Context, reason string) {
	t.mu.Lock()
	if t.rec.Stage == constants.StageReady {
		t.mu.Unlock()
		return
	}
	t.rec.Stage = constants.StageError
	t.rec.Message = reason
	t.rec.UpdatedAt = time.Now().UTC()
	rec := t.rec
	t.mu.Unlock()

	t.write(ctx, rec)
}

// Current returns a copy of the latest record.
func (t *Tracker) Current() entity.ProgressRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rec
}

func (t *Tracker) advance(ctx context.Context, stage constants.Stage, pct int, msg string) {
	t.mu.Lock()
	if t.rec.Stage.Terminal() {
		t.mu.Unlock()
		return
	}
	if stage.Ordinal() < t.rec.Stage.Ordinal() {
		t.logger.Warn("progress.backward_transition_dropped",
			"job_id", t.rec.JobID, "from", t.rec.Stage, "to", stage)
		t.mu.Unlock()
		return
	}
	t.rec.Stage = stage
	if pct > t.rec.Percent {
		t.rec.Percent = pct
	}
	if msg != "" {
		t.rec.Message = msg
	}
	t.rec.UpdatedAt = time.Now().UTC()
	rec := t.rec
	t.mu.Unlock()

	t.write(ctx, rec)
}

// write is best-effort. A failed progress write must never abort the run;
// the caller keeps the in-memory record and the next write catches up.
func (t *Tracker) write(ctx context.Context, rec entity.ProgressRecord) {
	if t.store == nil {
		return
	}
	// progress writes survive job cancellation so the terminal error
	// record is still visible to pollers
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := t.store.UpdateProgress(ctx, rec); err != nil {
		t.logger.Warn("progress.write_failed",
			"job_id", rec.JobID, "stage", rec.Stage, "error", err)
	}
}
