package enrich

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/knowledge"
)

// Enricher attaches didactic explanations and categories to extracted
// metrics and computes the aggregate scorecard. Pure over its input: it
// never fails a run, and a panicking lookup degrades to "no enrichment"
// for that single metric.
type Enricher struct {
	logger *slog.Logger
}

func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger}
}

// Enrich filters invalid metrics, enriches the survivors, and assembles
// the final structured result with scorecard and summary.
func (e *Enricher) Enrich(res *entity.ExtractionResult) *entity.StructuredResult {
	sections := make([]entity.Section, 0, len(res.Sections))
	unenriched := 0

	for _, sec := range res.Sections {
		metrics := make([]entity.Metric, 0, len(sec.Metrics))
		for _, m := range sec.Metrics {
			if !m.Valid() {
				continue
			}
			enriched, ok := e.enrichOne(m)
			if !ok {
				unenriched++
			}
			metrics = append(metrics, enriched)
		}
		if len(metrics) == 0 {
			continue
		}
		if sec.Title == "" || sec.Icon == "" {
			cat := knowledge.CategoryFor(metrics[0].Name)
			if sec.Title == "" {
				sec.Title = cat.DisplayTitle()
			}
			if sec.Icon == "" {
				sec.Icon = cat.Icon()
			}
		}
		sec.Metrics = metrics
		sections = append(sections, sec)
	}

	if unenriched > 0 {
		e.logger.Info("enrich.partial", "metrics_without_knowledge", unenriched)
	}

	card := Score(sections)
	return &entity.StructuredResult{
		PatientName: res.PatientName,
		ExamDate:    res.ExamDate,
		Laboratory:  res.Laboratory,
		Sections:    sections,
		Summary:     Summary(card),
		Scorecard:   card,
	}
}

// enrichOne looks the metric up in the knowledge base. The second return
// reports whether an explanation was found.
func (e *Enricher) enrichOne(m entity.Metric) (out entity.Metric, found bool) {
	out = m
	defer func() {
		if r := recover(); r != nil {
			// a broken lookup must never abort the run
			e.logger.Warn("enrich.lookup_panic", "metric", m.Name, "panic", fmt.Sprint(r))
			out = m
			found = false
		}
	}()

	entry, ok := knowledge.Lookup(m.Name)
	if !ok {
		return out, false
	}
	out.Explanation = entry.Explanation
	return out, true
}

// Rebucket regroups metrics into display-category sections using the
// keyword sets, ignoring any section structure the model produced. Used
// when the extraction yields a single untitled section.
func Rebucket(metrics []entity.Metric) []entity.Section {
	buckets := make(map[constants.Category][]entity.Metric)
	order := make([]constants.Category, 0, 8)
	for _, m := range metrics {
		cat := knowledge.CategoryFor(m.Name)
		if _, seen := buckets[cat]; !seen {
			order = append(order, cat)
		}
		buckets[cat] = append(buckets[cat], m)
	}

	sections := make([]entity.Section, 0, len(order))
	for _, cat := range order {
		sections = append(sections, entity.Section{
			Title:   cat.DisplayTitle(),
			Icon:    cat.Icon(),
			Metrics: buckets[cat],
		})
	}
	return sections
}

// Score counts metrics by status. Elevated and low land in the warning
// bucket; critical stands alone.
func Score(sections []entity.Section) entity.Scorecard {
	var card entity.Scorecard
	for _, sec := range sections {
		for _, m := range sec.Metrics {
			card.Total++
			switch m.Status {
			case entity.StatusCritical:
				card.Critical++
			case entity.StatusElevated, entity.StatusLow:
				card.Warning++
			default:
				card.Normal++
			}
		}
	}
	if card.Total > 0 {
		card.PercentNormal = int(math.Round(float64(card.Normal) / float64(card.Total) * 100))
	}
	return card
}

// Summary returns the canned sentence for the scorecard band.
func Summary(card entity.Scorecard) string {
	if card.Total == 0 {
		return ""
	}
	switch {
	case card.PercentNormal == 100:
		return "Todos os exames estão dentro dos valores de referência. Continue com os bons hábitos!"
	case card.PercentNormal >= 80:
		return "A maior parte dos exames está normal. Alguns itens merecem atenção na próxima consulta."
	case card.PercentNormal >= 50:
		return "Vários exames estão fora da referência. Recomendamos conversar com seu médico."
	default:
		return "A maioria dos exames está alterada. Procure orientação médica para avaliação detalhada."
	}
}
