package llm

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/knowledge"
)

// metricLine matches "Name: 12,3 mg/dL (Ref: 10 - 20)" and looser variants
// without the unit or reference part.
var metricLine = regexp.MustCompile(
	`(?i)^\s*([\p{L}][\p{L}\d\s\(\)\./%-]{1,60}?)\s*[:=]\s*([<>]?\d+[.,]?\d*)\s*([\p{L}/%µ²³]+(?:/[\p{L}\d.]+)?)?\s*(?:\(\s*(?:ref\.?|refer[êe]ncia|vr)\s*:?\s*([^)]+)\))?`,
)

// ExtractHeuristic is the last-resort line-oriented extractor, used only
// after every repair tier fails. It keeps lines that either look like
// "name: value unit (Ref: range)" or name a known exam. Values are copied
// verbatim from the input; nothing is fabricated.
func ExtractHeuristic(raw string, logger *slog.Logger) *entity.ExtractionResult {
	if logger == nil {
		logger = slog.Default()
	}

	known := knowledge.KnownKeys()
	var metrics []entity.Metric

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 200 {
			continue
		}

		m := metricLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		if name == "" || value == "" {
			continue
		}

		// accept either a structurally complete line or a known exam name
		hasUnit := strings.TrimSpace(m[3]) != ""
		hasRef := strings.TrimSpace(m[4]) != ""
		if !hasUnit && !hasRef && !isKnownExam(name, known) {
			continue
		}

		metrics = append(metrics, entity.Metric{
			Name:      name,
			Value:     value,
			Unit:      strings.TrimSpace(m[3]),
			Reference: strings.TrimSpace(m[4]),
			Status:    entity.StatusNormal,
		})
	}

	if len(metrics) == 0 {
		return nil
	}
	logger.Info("llm.parse.heuristic_rescued", "metrics", len(metrics))

	return &entity.ExtractionResult{
		Sections: []entity.Section{{Metrics: metrics}},
	}
}

func isKnownExam(name string, known []string) bool {
	key := knowledge.Normalize(name)
	if key == "" {
		return false
	}
	for _, k := range known {
		if strings.Contains(key, k) || strings.Contains(k, key) {
			return true
		}
	}
	return false
}
