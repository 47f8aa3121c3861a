package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// MemoryJobRepository is the in-memory JobRepository used by tests and the
// local runner. Same semantics as the Postgres implementation, including
// last-write-wins progress visibility.
type MemoryJobRepository struct {
	mu         sync.RWMutex
	jobs       map[uuid.UUID]*entity.Job
	progress   map[uuid.UUID]entity.ProgressRecord
	results    map[uuid.UUID]*entity.StructuredResult
	parentRefs map[uuid.UUID][]string
}

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{
		jobs:       make(map[uuid.UUID]*entity.Job),
		progress:   make(map[uuid.UUID]entity.ProgressRecord),
		results:    make(map[uuid.UUID]*entity.StructuredResult),
		parentRefs: make(map[uuid.UUID][]string),
	}
}

// SetParentRefs seeds a parent document's input references.
func (r *MemoryJobRepository) SetParentRefs(docID uuid.UUID, refs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parentRefs[docID] = refs
}

func (r *MemoryJobRepository) CreateJob(_ context.Context, job *entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Stage == "" {
		job.Stage = constants.StageCreated
	}
	job.CreatedAt = time.Now().UTC()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MemoryJobRepository) GetJob(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *MemoryJobRepository) GetParentInputRefs(_ context.Context, docID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs, ok := r.parentRefs[docID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]string(nil), refs...), nil
}

func (r *MemoryJobRepository) UpdateProgress(_ context.Context, rec entity.ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress[rec.JobID] = rec
	if job, ok := r.jobs[rec.JobID]; ok {
		job.Stage = rec.Stage
		job.Progress = rec.Percent
	}
	return nil
}

func (r *MemoryJobRepository) GetProgress(_ context.Context, jobID uuid.UUID) (entity.ProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.progress[jobID]
	if !ok {
		if _, exists := r.jobs[jobID]; exists {
			return entity.ProgressRecord{JobID: jobID, Stage: constants.StageCreated}, nil
		}
		return entity.ProgressRecord{}, common.ErrNotFound
	}
	return rec, nil
}

func (r *MemoryJobRepository) FinalizeResult(_ context.Context, jobID uuid.UUID, res *entity.StructuredResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[jobID] = res
	now := time.Now().UTC()
	if job, ok := r.jobs[jobID]; ok {
		job.Stage = constants.StageReady
		job.Progress = 100
		job.FinishedAt = &now
	}
	return nil
}

func (r *MemoryJobRepository) FinalizeError(_ context.Context, jobID uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if job, ok := r.jobs[jobID]; ok {
		job.Stage = constants.StageError
		job.ErrorMessage = &reason
		job.FinishedAt = &now
	}
	return nil
}

func (r *MemoryJobRepository) GetResult(_ context.Context, jobID uuid.UUID) (*entity.StructuredResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.results[jobID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return res, nil
}
