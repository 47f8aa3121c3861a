package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/async"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/export"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/images"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/pipeline"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubStore struct{}

func (stubStore) Fetch(_ context.Context, _ string) ([]byte, string, error) {
	return []byte("\x89PNG\r\n\x1a\npagina"), "image/png", nil
}

type stubInvoker struct{}

func (stubInvoker) Name() string { return "stub" }

func (stubInvoker) Invoke(_ context.Context, _ string, _ []entity.EncodedImage) (string, error) {
	return `{"patient_name": "Maria", "sections": [{"title": "Glicemia", "metrics": [{"name": "Glicose", "value": "92", "status": "normal"}]}]}`, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryJobRepository, *async.Queue) {
	t.Helper()
	repo := repository.NewMemoryJobRepository()
	resolver := images.NewResolver(stubStore{}, images.NewMemoryCache(), nil)
	p := pipeline.New(repo, resolver, llm.NewCascade([]llm.Invoker{stubInvoker{}}, nil), nil)
	q := async.NewQueue(p, nil, async.WithWorkers(1))
	t.Cleanup(func() { q.Shutdown(context.Background()) })

	api := NewAPI(repo, q, export.NewService(repo, nil), nil)
	return api.Router(), repo, q
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-teste-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "req-teste-42" {
		t.Errorf("X-Request-ID = %q, caller-supplied id must be honored", got)
	}
}

func TestCreateJob_Validation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing owner", `{"input_refs": ["pag-1.png"]}`},
		{"bad owner uuid", `{"owner_id": "nao-e-uuid", "input_refs": ["pag-1.png"]}`},
		{"bad parent uuid", `{"owner_id": "` + uuid.NewString() + `", "parent_doc_id": "x"}`},
		{"no inputs at all", `{"owner_id": "` + uuid.NewString() + `"}`},
		{"unsupported extension", `{"owner_id": "` + uuid.NewString() + `", "input_refs": ["laudo.exe"]}`},
		{"not json", `hello`},
	}
	for _, tc := range cases {
		if w := doJSON(r, http.MethodPost, "/api/jobs", tc.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, w.Code)
		}
	}
}

// Refs without an extension are bare object keys; only refs carrying a
// disallowed extension are rejected.
func TestCreateJob_BareObjectKeyAccepted(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := `{"owner_id": "` + uuid.NewString() + `", "input_refs": ["ab12cd34"]}`
	if w := doJSON(r, http.MethodPost, "/api/jobs", body); w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateJob_RoundTrip(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := `{"owner_id": "` + uuid.NewString() + `", "input_refs": ["pag-1.png"], "exam_type_hint": "hemograma"}`
	w := doJSON(r, http.MethodPost, "/api/jobs", body)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	jobID, err := uuid.Parse(created.JobID)
	if err != nil {
		t.Fatalf("job_id = %q", created.JobID)
	}

	// poll until the async worker finishes
	deadline := time.Now().Add(5 * time.Second)
	for {
		w := doJSON(r, http.MethodGet, "/api/jobs/"+jobID.String(), "")
		if w.Code != http.StatusOK {
			t.Fatalf("get job status = %d", w.Code)
		}
		var job entity.Job
		if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
			t.Fatal(err)
		}
		if job.Stage.Terminal() {
			if job.Progress != 100 {
				t.Errorf("terminal progress = %d", job.Progress)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job stuck at %v", job.Stage)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if w := doJSON(r, http.MethodGet, "/api/jobs/"+jobID.String()+"/progress", ""); w.Code != http.StatusOK {
		t.Errorf("progress status = %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/jobs/"+jobID.String()+"/result", "")
	if w.Code != http.StatusOK {
		t.Fatalf("result status = %d", w.Code)
	}
	var res entity.StructuredResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Scorecard.Total != 1 || res.PatientName != "Maria" {
		t.Errorf("result = %+v", res)
	}

	w = doJSON(r, http.MethodGet, "/api/jobs/"+jobID.String()+"/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("export content type = %q", ct)
	}
}

func TestGetJob_NotFoundAndBadID(t *testing.T) {
	r, _, _ := newTestRouter(t)

	if w := doJSON(r, http.MethodGet, "/api/jobs/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown job status = %d, want 404", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/jobs/abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
}

func TestAbort_NotRunning(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/jobs/"+uuid.NewString()+"/abort", "")
	if w.Code != http.StatusConflict {
		t.Errorf("abort status = %d, want 409", w.Code)
	}
}
