package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// JobRepository is the document-store boundary consumed by the pipeline.
type JobRepository interface {
	CreateJob(ctx context.Context, job *entity.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	GetParentInputRefs(ctx context.Context, docID uuid.UUID) ([]string, error)
	UpdateProgress(ctx context.Context, rec entity.ProgressRecord) error
	GetProgress(ctx context.Context, jobID uuid.UUID) (entity.ProgressRecord, error)
	FinalizeResult(ctx context.Context, jobID uuid.UUID, res *entity.StructuredResult) error
	FinalizeError(ctx context.Context, jobID uuid.UUID, reason string) error
	GetResult(ctx context.Context, jobID uuid.UUID) (*entity.StructuredResult, error)
}

type jobRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewJobRepository(pool *pgxpool.Pool, log *slog.Logger) JobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &jobRepo{pool: pool, log: log}
}

func (r *jobRepo) CreateJob(ctx context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Stage == "" {
		job.Stage = constants.StageCreated
	}
	job.CreatedAt = time.Now().UTC()

	refs, err := json.Marshal(job.InputRefs)
	if err != nil {
		return common.WrapError(err, "marshal input refs")
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO exam_job (id, owner_id, input_refs, parent_doc_id, exam_type_hint, stage, progress, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.OwnerID, refs, job.ParentDocID, job.ExamTypeHint, string(job.Stage), job.Progress, job.CreatedAt,
	)
	if err != nil {
		return common.WrapError(err, "insert job")
	}
	return nil
}

func (r *jobRepo) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var (
		job   entity.Job
		refs  []byte
		stage string
	)
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, input_refs, parent_doc_id, exam_type_hint, stage, progress, error_message, created_at, finished_at
		FROM exam_job WHERE id = $1`, id)
	err := row.Scan(&job.ID, &job.OwnerID, &refs, &job.ParentDocID, &job.ExamTypeHint,
		&stage, &job.Progress, &job.ErrorMessage, &job.CreatedAt, &job.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.WrapError(err, "get job")
	}
	job.Stage = constants.Stage(stage)
	if len(refs) > 0 {
		if err := json.Unmarshal(refs, &job.InputRefs); err != nil {
			return nil, common.WrapError(err, "unmarshal input refs")
		}
	}
	return &job, nil
}

func (r *jobRepo) GetParentInputRefs(ctx context.Context, docID uuid.UUID) ([]string, error) {
	var refs []byte
	row := r.pool.QueryRow(ctx, `SELECT input_refs FROM exam_document WHERE id = $1`, docID)
	if err := row.Scan(&refs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "get parent document")
	}
	var out []string
	if len(refs) > 0 {
		if err := json.Unmarshal(refs, &out); err != nil {
			return nil, common.WrapError(err, "unmarshal parent refs")
		}
	}
	return out, nil
}

func (r *jobRepo) UpdateProgress(ctx context.Context, rec entity.ProgressRecord) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE exam_job
		SET stage = $2, progress = $3, images_total = $4, images_processed = $5,
		    progress_message = $6, updated_at = $7
		WHERE id = $1`,
		rec.JobID, string(rec.Stage), rec.Percent, rec.ImagesTotal, rec.ImagesProcessed,
		rec.Message, rec.UpdatedAt,
	)
	return common.WrapError(err, "update progress")
}

func (r *jobRepo) GetProgress(ctx context.Context, jobID uuid.UUID) (entity.ProgressRecord, error) {
	var (
		rec   entity.ProgressRecord
		stage string
		msg   *string
		upd   *time.Time
	)
	row := r.pool.QueryRow(ctx, `
		SELECT id, stage, progress, images_total, images_processed, progress_message, updated_at
		FROM exam_job WHERE id = $1`, jobID)
	err := row.Scan(&rec.JobID, &stage, &rec.Percent, &rec.ImagesTotal, &rec.ImagesProcessed, &msg, &upd)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, common.ErrNotFound
	}
	if err != nil {
		return rec, common.WrapError(err, "get progress")
	}
	rec.Stage = constants.Stage(stage)
	if msg != nil {
		rec.Message = *msg
	}
	if upd != nil {
		rec.UpdatedAt = *upd
	}
	return rec, nil
}

func (r *jobRepo) FinalizeResult(ctx context.Context, jobID uuid.UUID, res *entity.StructuredResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return common.WrapError(err, "marshal result")
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE exam_job
		SET stage = $2, progress = 100, result = $3, finished_at = $4, updated_at = $4
		WHERE id = $1`,
		jobID, string(constants.StageReady), payload, time.Now().UTC(),
	)
	return common.WrapError(err, "finalize result")
}

func (r *jobRepo) FinalizeError(ctx context.Context, jobID uuid.UUID, reason string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE exam_job
		SET stage = $2, error_message = $3, finished_at = $4, updated_at = $4
		WHERE id = $1`,
		jobID, string(constants.StageError), reason, time.Now().UTC(),
	)
	return common.WrapError(err, "finalize error")
}

func (r *jobRepo) GetResult(ctx context.Context, jobID uuid.UUID) (*entity.StructuredResult, error) {
	var payload []byte
	row := r.pool.QueryRow(ctx, `SELECT result FROM exam_job WHERE id = $1`, jobID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "get result")
	}
	if len(payload) == 0 {
		return nil, common.ErrNotFound
	}
	var res entity.StructuredResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, common.WrapError(err, "unmarshal result")
	}
	return &res, nil
}
