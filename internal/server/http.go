package server

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/async"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/export"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
)

// API exposes job submission, progress polling and result retrieval over
// HTTP. The pipeline itself never touches this layer.
type API struct {
	repo   repository.JobRepository
	queue  *async.Queue
	export *export.Service
	logger *slog.Logger
}

func NewAPI(repo repository.JobRepository, queue *async.Queue, exp *export.Service, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{repo: repo, queue: queue, export: exp, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())

	api := r.Group("/api")
	{
		api.GET("/health", a.handleHealth)

		api.POST("/jobs", a.handleCreateJob)
		api.GET("/jobs/:id", a.handleGetJob)
		api.GET("/jobs/:id/progress", a.handleGetProgress)
		api.GET("/jobs/:id/result", a.handleGetResult)
		api.GET("/jobs/:id/export", a.handleExport)
		api.POST("/jobs/:id/abort", a.handleAbort)
	}
	return r
}

// requestID tags every request with an id, honoring one supplied by the
// caller, and echoes it back in the response header.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), rid))
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

type createJobRequest struct {
	OwnerID      string   `json:"owner_id" binding:"required"`
	InputRefs    []string `json:"input_refs"`
	ParentDocID  string   `json:"parent_doc_id"`
	ExamTypeHint string   `json:"exam_type_hint"`
}

func (a *API) handleCreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner_id must be a UUID"})
		return
	}

	job := &entity.Job{OwnerID: ownerID, InputRefs: req.InputRefs, ExamTypeHint: req.ExamTypeHint}
	if req.ParentDocID != "" {
		docID, err := uuid.Parse(req.ParentDocID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent_doc_id must be a UUID"})
			return
		}
		job.ParentDocID = &docID
	}
	if len(job.InputRefs) == 0 && job.ParentDocID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input_refs or parent_doc_id is required"})
		return
	}
	// Bare object keys have no extension and pass through to the resolver.
	for _, ref := range job.InputRefs {
		ext := constants.NormalizeExt(path.Ext(ref))
		if ext == "" {
			continue
		}
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file extension: " + ext})
			return
		}
	}

	ctx := common.WithOwnerID(c.Request.Context(), ownerID.String())
	if err := a.repo.CreateJob(ctx, job); err != nil {
		a.logger.Error("http.create_job_failed",
			"req_id", common.RequestIDFromContext(ctx), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create job"})
		return
	}
	_ = a.queue.Enqueue(ctx, async.Job{JobID: job.ID, SubmittedAt: time.Now()})

	a.logger.Info("http.job_accepted",
		"req_id", common.RequestIDFromContext(ctx),
		"owner_id", common.OwnerIDFromContext(ctx),
		"job_id", job.ID,
		"refs", len(job.InputRefs),
	)
	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "stage": job.Stage})
}

func (a *API) handleGetJob(c *gin.Context) {
	id, ok := a.jobID(c)
	if !ok {
		return
	}
	job, err := a.repo.GetJob(c.Request.Context(), id)
	if err != nil {
		a.notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (a *API) handleGetProgress(c *gin.Context) {
	id, ok := a.jobID(c)
	if !ok {
		return
	}
	rec, err := a.repo.GetProgress(c.Request.Context(), id)
	if err != nil {
		a.notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (a *API) handleGetResult(c *gin.Context) {
	id, ok := a.jobID(c)
	if !ok {
		return
	}
	res, err := a.repo.GetResult(c.Request.Context(), id)
	if err != nil {
		a.notFoundOrError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (a *API) handleExport(c *gin.Context) {
	id, ok := a.jobID(c)
	if !ok {
		return
	}
	data, err := a.export.ExportResultXLSX(c.Request.Context(), id)
	if err != nil {
		a.notFoundOrError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="exames-`+id.String()+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (a *API) handleAbort(c *gin.Context) {
	id, ok := a.jobID(c)
	if !ok {
		return
	}
	if aborted := a.queue.Abort(id); !aborted {
		c.JSON(http.StatusConflict, gin.H{"error": "job is not running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": id, "aborted": true})
}

func (a *API) jobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (a *API) notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	a.logger.Error("http.request_failed",
		"req_id", common.RequestIDFromContext(c.Request.Context()),
		"path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
