package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
)

// Job represents one exam extraction run for data transfer between layers.
type Job struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	InputRefs    []string        `json:"input_refs"`
	ParentDocID  *uuid.UUID      `json:"parent_doc_id,omitempty"`
	ExamTypeHint string          `json:"exam_type_hint,omitempty"`
	Stage        constants.Stage `json:"stage"`
	Progress     int             `json:"progress"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}

// ImageBlob is one fetched input page. Owned by the job during a run and
// not retained afterwards.
type ImageBlob struct {
	Ref      string
	Data     []byte
	MIMEType string
}

// EncodedImage is an ImageBlob after transport encoding. CacheKey equals
// the source reference; at most one EncodedImage exists per key.
type EncodedImage struct {
	CacheKey string `json:"cache_key"`
	MIMEType string `json:"mime_type"`
	DataURL  string `json:"data_url"`
}

// ProgressRecord is the externally pollable mirror of a job's stage and
// percentage.
type ProgressRecord struct {
	JobID           uuid.UUID       `json:"job_id"`
	Stage           constants.Stage `json:"stage"`
	Percent         int             `json:"percent"`
	ImagesTotal     int             `json:"images_total,omitempty"`
	ImagesProcessed int             `json:"images_processed,omitempty"`
	Message         string          `json:"message,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
