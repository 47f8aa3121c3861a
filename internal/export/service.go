package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
)

// Service is a tiny façade over the job repository that produces XLSX
// bytes for result downloads.
type Service struct {
	repo   repository.JobRepository
	logger *slog.Logger
}

func NewService(repo repository.JobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportResultXLSX returns an XLSX workbook for a finished job: one row
// per metric plus a scorecard block at the bottom.
func (s *Service) ExportResultXLSX(ctx context.Context, jobID uuid.UUID) ([]byte, error) {
	start := time.Now()

	res, err := s.repo.GetResult(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Exames"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet excelize creates
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Categoria", "Exame", "Valor", "Unidade", "Referência", "Status"}
	for i, h := range headers {
		write(i+1, 1, h)
	}

	row := 2
	for _, sec := range res.Sections {
		for _, m := range sec.Metrics {
			write(1, row, sec.Title)
			write(2, row, m.Name)
			write(3, row, m.Value)
			write(4, row, m.Unit)
			write(5, row, m.Reference)
			write(6, row, statusLabel(m.Status))
			row++
		}
	}

	row++
	write(1, row, "Paciente")
	write(2, row, res.PatientName)
	row++
	write(1, row, "Data do exame")
	write(2, row, res.ExamDate)
	row++
	write(1, row, "Exames normais")
	write(2, row, fmt.Sprintf("%d de %d (%d%%)", res.Scorecard.Normal, res.Scorecard.Total, res.Scorecard.PercentNormal))
	row++
	write(1, row, "Resumo")
	write(2, row, res.Summary)

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "E", 16)
	_ = f.SetColWidth(sheet, "F", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"job_id", jobID,
		"metrics", res.Scorecard.Total,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func statusLabel(st entity.MetricStatus) string {
	switch st {
	case entity.StatusElevated:
		return "Elevado"
	case entity.StatusLow:
		return "Baixo"
	case entity.StatusCritical:
		return "Crítico"
	default:
		return "Normal"
	}
}
