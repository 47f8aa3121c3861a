package entity

import "strings"

// MetricStatus is the model-provided flag for one measurement. The status
// comes from the extraction itself, not from comparing the value against
// the reference range.
type MetricStatus string

const (
	StatusNormal   MetricStatus = "normal"
	StatusElevated MetricStatus = "elevated"
	StatusLow      MetricStatus = "low"
	StatusCritical MetricStatus = "critical"
)

// NormalizeStatus maps free-form status text onto the stable enum,
// defaulting to normal when the model produced nothing usable.
func NormalizeStatus(s string) MetricStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elevated", "high", "alto", "elevado", "aumentado":
		return StatusElevated
	case "low", "baixo", "diminuido", "reduzido":
		return StatusLow
	case "critical", "critico", "muito_alto", "muito_baixo":
		return StatusCritical
	default:
		return StatusNormal
	}
}

// Metric is one laboratory measurement as printed on the source document.
// Value keeps the original formatting.
type Metric struct {
	Name        string       `json:"name"`
	Value       string       `json:"value"`
	Unit        string       `json:"unit,omitempty"`
	Reference   string       `json:"reference,omitempty"`
	Status      MetricStatus `json:"status"`
	Explanation string       `json:"explanation,omitempty"`
}

// Valid reports whether the metric carries the minimum extractable data.
// Invalid metrics are dropped before a result is returned.
func (m Metric) Valid() bool {
	return strings.TrimSpace(m.Name) != "" && strings.TrimSpace(m.Value) != ""
}

// Section is a named grouping of metrics with a display title and icon tag.
type Section struct {
	Title   string   `json:"title"`
	Icon    string   `json:"icon,omitempty"`
	Metrics []Metric `json:"metrics"`
}

// ExtractionResult is the raw-but-structured output of one model call,
// before enrichment.
type ExtractionResult struct {
	PatientName string    `json:"patient_name,omitempty"`
	ExamDate    string    `json:"exam_date,omitempty"`
	Laboratory  string    `json:"laboratory,omitempty"`
	Sections    []Section `json:"sections"`
}

// MetricCount returns the number of metrics across all sections.
func (r *ExtractionResult) MetricCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Metrics)
	}
	return n
}

// Scorecard aggregates metric statuses for one result.
type Scorecard struct {
	Total         int `json:"total"`
	Normal        int `json:"normal"`
	Warning       int `json:"warning"`
	Critical      int `json:"critical"`
	PercentNormal int `json:"percent_normal,omitempty"`
}

// StructuredResult is the sole contract handed to rendering and
// persistence collaborators.
type StructuredResult struct {
	PatientName string    `json:"patient_name"`
	ExamDate    string    `json:"exam_date,omitempty"`
	Laboratory  string    `json:"laboratory,omitempty"`
	Sections    []Section `json:"sections"`
	Summary     string    `json:"summary,omitempty"`
	Scorecard   Scorecard `json:"scorecard"`
}
