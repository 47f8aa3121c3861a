package export

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
)

func TestExportResultXLSX(t *testing.T) {
	repo := repository.NewMemoryJobRepository()
	ctx := context.Background()

	job := &entity.Job{InputRefs: []string{"pag-1.png"}}
	if err := repo.CreateJob(ctx, job); err != nil {
		t.Fatal(err)
	}
	res := &entity.StructuredResult{
		PatientName: "Maria Silva",
		ExamDate:    "2024-03-10",
		Sections: []entity.Section{{
			Title: "Hemograma",
			Metrics: []entity.Metric{
				{Name: "Hemoglobina", Value: "13,5", Unit: "g/dL", Reference: "12,0 - 16,0", Status: entity.StatusNormal},
				{Name: "Leucócitos", Value: "11200", Unit: "/mm³", Status: entity.StatusElevated},
			},
		}},
		Summary:   "A maior parte dos exames está normal.",
		Scorecard: entity.Scorecard{Total: 2, Normal: 1, Warning: 1, PercentNormal: 50},
	}
	if err := repo.FinalizeResult(ctx, job.ID, res); err != nil {
		t.Fatal(err)
	}

	data, err := NewService(repo, nil).ExportResultXLSX(ctx, job.ID)
	if err != nil {
		t.Fatalf("ExportResultXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	get := func(cell string) string {
		t.Helper()
		v, err := f.GetCellValue("Exames", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	if got := get("A1"); got != "Categoria" {
		t.Errorf("A1 = %q", got)
	}
	if got := get("B2"); got != "Hemoglobina" {
		t.Errorf("B2 = %q", got)
	}
	if got := get("F3"); got != "Elevado" {
		t.Errorf("F3 = %q, want status label", got)
	}
	if got := get("B5"); got != "Maria Silva" {
		t.Errorf("B5 = %q, want patient name", got)
	}
	if got := get("B7"); got != "1 de 2 (50%)" {
		t.Errorf("B7 = %q, want scorecard line", got)
	}
}

func TestExportResultXLSX_MissingResult(t *testing.T) {
	repo := repository.NewMemoryJobRepository()
	_, err := NewService(repo, nil).ExportResultXLSX(context.Background(), uuid.New())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[entity.MetricStatus]string{
		entity.StatusNormal:   "Normal",
		entity.StatusElevated: "Elevado",
		entity.StatusLow:      "Baixo",
		entity.StatusCritical: "Crítico",
	}
	for st, want := range cases {
		if got := statusLabel(st); got != want {
			t.Errorf("statusLabel(%v) = %q, want %q", st, got, want)
		}
	}
}
