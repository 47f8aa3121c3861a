package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/enrich"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/images"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/progress"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
)

// Pipeline composes resolve → cascade → parse → enrich for one job.
// Stages run strictly in order; jobs are the unit of concurrency.
type Pipeline struct {
	repo     repository.JobRepository
	resolver *images.Resolver
	cascade  *llm.Cascade
	enricher *enrich.Enricher
	logger   *slog.Logger
}

func New(repo repository.JobRepository, resolver *images.Resolver, cascade *llm.Cascade, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		repo:     repo,
		resolver: resolver,
		cascade:  cascade,
		enricher: enrich.NewEnricher(logger),
		logger:   logger,
	}
}

// Run executes the full extraction for jobID. On success the structured
// result is persisted and returned; on any fatal error the job's progress
// record is forced into the terminal error stage before returning, so no
// job is ever left dangling for polling callers.
func (p *Pipeline) Run(ctx context.Context, jobID uuid.UUID) (*entity.StructuredResult, error) {
	start := time.Now()

	job, err := p.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, common.WrapError(err, "load job")
	}

	tracker := progress.NewTracker(jobID, p.repo, p.logger)
	p.logger.Info("pipeline.run.start",
		"job_id", jobID, "refs", len(job.InputRefs), "hint", job.ExamTypeHint)

	refs := job.InputRefs
	if len(refs) == 0 && job.ParentDocID != nil {
		refs, err = p.repo.GetParentInputRefs(ctx, *job.ParentDocID)
		if err != nil {
			return nil, p.fail(ctx, tracker, jobID, common.WrapError(common.ErrNoValidInput, err.Error()))
		}
	}

	// 1) resolve and encode images
	tracker.Advance(ctx, constants.StageDownloading)
	encoded, err := p.resolver.Resolve(ctx, refs, nil, func(processed, total int) {
		tracker.AdvanceImages(ctx, processed, total)
	})
	if err != nil {
		return nil, p.fail(ctx, tracker, jobID, err)
	}

	// 2) model cascade
	tracker.Advance(ctx, constants.StageCallingCascade)
	text, err := p.cascade.Run(ctx, llm.BuildExtractionPrompt(job.ExamTypeHint), encoded)
	if err != nil {
		return nil, p.fail(ctx, tracker, jobID, err)
	}

	// 3) parse, degrading to the heuristic extractor on ladder failure
	tracker.Advance(ctx, constants.StageParsingResponse)
	res := llm.ParseExtraction(text, p.logger)
	if res == nil {
		res = llm.ExtractHeuristic(text, p.logger)
	}
	if res == nil || res.MetricCount() == 0 {
		return nil, p.fail(ctx, tracker, jobID, common.ErrExtractionEmpty)
	}

	// heuristic output arrives as one untitled section; regroup by category
	if len(res.Sections) == 1 && res.Sections[0].Title == "" {
		res.Sections = enrich.Rebucket(res.Sections[0].Metrics)
	}

	// 4) enrich and score
	tracker.Advance(ctx, constants.StageEnriching)
	structured := p.enricher.Enrich(res)
	if structured.PatientName == "" {
		structured.PatientName = "Paciente"
	}

	// 5) persist and finish
	tracker.Advance(ctx, constants.StageFinalizing)
	if err := p.repo.FinalizeResult(ctx, jobID, structured); err != nil {
		return nil, p.fail(ctx, tracker, jobID, err)
	}
	tracker.Advance(ctx, constants.StageReady)

	p.logger.Info("pipeline.run.ok",
		"job_id", jobID,
		"sections", len(structured.Sections),
		"metrics", structured.Scorecard.Total,
		"percent_normal", structured.Scorecard.PercentNormal,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return structured, nil
}

// fail writes the terminal error record and finalizes the job. The reason
// shown to callers is the short classified message, never the raw error.
func (p *Pipeline) fail(ctx context.Context, tracker *progress.Tracker, jobID uuid.UUID, err error) error {
	if common.IsCancellation(err) {
		err = common.ErrCancelled
	}
	reason := common.UserReason(err)

	p.logger.Error("pipeline.run.failed", "job_id", jobID, "error", err)

	tracker.Fail(ctx, reason)
	// the finalize write must land even when the job context is gone
	finalCtx := context.WithoutCancel(ctx)
	if ferr := p.repo.FinalizeError(finalCtx, jobID, reason); ferr != nil {
		p.logger.Error("pipeline.finalize_error_failed", "job_id", jobID, "error", ferr)
	}
	return err
}
