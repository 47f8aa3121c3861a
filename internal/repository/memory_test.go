package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

func TestMemoryRepo_CreateAndGet(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	job := &entity.Job{OwnerID: uuid.New(), InputRefs: []string{"pag-1.png"}}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatal(err)
	}
	if job.ID == uuid.Nil {
		t.Fatal("CreateJob must assign an ID")
	}
	if job.Stage != constants.StageCreated {
		t.Errorf("stage = %v, want created", job.Stage)
	}

	got, err := repo.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.OwnerID != job.OwnerID || len(got.InputRefs) != 1 {
		t.Errorf("got %+v", got)
	}

	if _, err := repo.GetJob(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepo_ProgressDefaultsToCreated(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	job := &entity.Job{InputRefs: []string{"pag-1.png"}}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatal(err)
	}

	rec, err := repo.GetProgress(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Stage != constants.StageCreated || rec.Percent != 0 {
		t.Errorf("rec = %+v", rec)
	}

	if _, err := repo.GetProgress(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown job", err)
	}
}

func TestMemoryRepo_ProgressMirrorsOntoJob(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	job := &entity.Job{InputRefs: []string{"pag-1.png"}}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatal(err)
	}

	rec := entity.ProgressRecord{JobID: job.ID, Stage: constants.StageCallingCascade, Percent: 75}
	if err := repo.UpdateProgress(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, _ := repo.GetJob(ctx, job.ID)
	if got.Stage != constants.StageCallingCascade || got.Progress != 75 {
		t.Errorf("job = stage %v, progress %d", got.Stage, got.Progress)
	}
}

func TestMemoryRepo_Finalize(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	ok := &entity.Job{InputRefs: []string{"pag-1.png"}}
	bad := &entity.Job{InputRefs: []string{"pag-2.png"}}
	for _, j := range []*entity.Job{ok, bad} {
		if err := repo.CreateJob(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	res := &entity.StructuredResult{Scorecard: entity.Scorecard{Total: 1, Normal: 1, PercentNormal: 100}}
	if err := repo.FinalizeResult(ctx, ok.ID, res); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.GetJob(ctx, ok.ID)
	if got.Stage != constants.StageReady || got.Progress != 100 || got.FinishedAt == nil {
		t.Errorf("finalized job = %+v", got)
	}
	if stored, err := repo.GetResult(ctx, ok.ID); err != nil || stored.Scorecard.Total != 1 {
		t.Errorf("stored = %+v, err %v", stored, err)
	}

	if err := repo.FinalizeError(ctx, bad.ID, "Falha ao processar o exame."); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetJob(ctx, bad.ID)
	if got.Stage != constants.StageError || got.ErrorMessage == nil {
		t.Errorf("failed job = %+v", got)
	}
	if _, err := repo.GetResult(ctx, bad.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for failed job result", err)
	}
}

func TestMemoryRepo_ParentRefs(t *testing.T) {
	repo := NewMemoryJobRepository()
	ctx := context.Background()

	docID := uuid.New()
	repo.SetParentRefs(docID, []string{"pag-1.png", "pag-2.png"})

	refs, err := repo.GetParentInputRefs(ctx, docID)
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 2 {
		t.Errorf("refs = %v", refs)
	}

	if _, err := repo.GetParentInputRefs(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
