package llm

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// repairFunc attempts to produce a parseable JSON candidate from raw model
// text. Each is pure and unit-testable in isolation; ParseExtraction tries
// them in order and stops at the first candidate that decodes.
type repairFunc struct {
	name string
	fn   func(string) (string, bool)
}

var repairLadder = []repairFunc{
	{"direct", repairDirect},
	{"sanitized", repairSanitized},
	{"depth_truncated", repairDepthTruncated},
	{"section_rescue", repairSectionRescue},
}

// ParseExtraction runs the repair ladder over raw response text. Returns
// nil when every tier fails; parse failure is not fatal to the job — the
// orchestrator falls back to the heuristic extractor.
func ParseExtraction(raw string, logger *slog.Logger) *entity.ExtractionResult {
	if logger == nil {
		logger = slog.Default()
	}

	schema := BuildExamJSONSchema()
	for _, tier := range repairLadder {
		candidate, ok := tier.fn(raw)
		if !ok {
			continue
		}

		// Validate strictly first; on failure sanitize the optional
		// offenders and re-validate. A candidate that still violates the
		// schema is rejected so the next tier gets its chance.
		data := []byte(candidate)
		if err := ValidateJSONAgainstSchema(schema, data); err != nil {
			cleaned, dropped, sErr := SanitizeOptionalFields(data)
			if sErr != nil {
				logger.Warn("llm.parse.schema_rejected", "tier", tier.name, "error", err)
				continue
			}
			if vErr := ValidateJSONAgainstSchema(schema, cleaned); vErr != nil {
				logger.Warn("llm.parse.schema_rejected", "tier", tier.name, "error", vErr)
				continue
			}
			logger.Warn("llm.parse.lenient_sanitize_applied", "tier", tier.name, "dropped", dropped)
			data = cleaned
		}

		res := decodeResult(string(data))
		if res == nil || res.MetricCount() == 0 {
			continue
		}
		if tier.name != "direct" {
			logger.Info("llm.parse.repaired", "tier", tier.name, "metrics", res.MetricCount())
		}
		return res
	}

	logger.Warn("llm.parse.ladder_exhausted", "raw_bytes", len(raw))
	return nil
}

// repairDirect locates the first '{' and last '}' and takes the substring
// as-is.
func repairDirect(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// repairSanitized strips control characters, newlines and trailing commas
// before taking the brace-bounded substring.
func repairSanitized(raw string) (string, bool) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteByte(' ')
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := trailingComma.ReplaceAllString(b.String(), "$1")
	return repairDirect(cleaned)
}

// repairDepthTruncated scans bracket/brace depth (string-aware), truncates
// at the last position where a value closed, and appends the closers still
// open at that point. Fully-formed entries before the truncation survive.
func repairDepthTruncated(raw string) (string, bool) {
	s, ok := repairDirect(raw)
	if !ok {
		return "", false
	}

	var stack []byte
	inString := false
	escaped := false
	lastClose := -1
	var stackAtClose []byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return "", false // mismatched, let the next tier try
			}
			stack = stack[:len(stack)-1]
			lastClose = i
			stackAtClose = append(stackAtClose[:0], stack...)
		}
	}

	if lastClose < 0 {
		return "", false
	}
	if len(stackAtClose) == 0 {
		return s[:lastClose+1], true
	}

	var b strings.Builder
	b.WriteString(s[:lastClose+1])
	for i := len(stackAtClose) - 1; i >= 0; i-- {
		b.WriteByte(stackAtClose[i])
	}
	return b.String(), true
}

var sectionsStart = regexp.MustCompile(`"sections"\s*:\s*\[`)

// repairSectionRescue extracts just the sections array and wraps it in a
// minimal valid object.
func repairSectionRescue(raw string) (string, bool) {
	loc := sectionsStart.FindStringIndex(raw)
	if loc == nil {
		return "", false
	}
	arr, ok := repairDepthTruncated(`{"sections":[` + raw[loc[1]:])
	if !ok {
		return "", false
	}
	return arr, true
}

// wire shapes tolerate the model returning numbers where strings belong.
type wireMetric struct {
	Name      string `json:"name"`
	Value     any    `json:"value"`
	Unit      string `json:"unit"`
	Reference any    `json:"reference"`
	Status    string `json:"status"`
}

type wireSection struct {
	Title   string       `json:"title"`
	Icon    string       `json:"icon"`
	Metrics []wireMetric `json:"metrics"`
}

type wireResult struct {
	PatientName string        `json:"patient_name"`
	ExamDate    string        `json:"exam_date"`
	Laboratory  string        `json:"laboratory"`
	Sections    []wireSection `json:"sections"`
}

// decodeResult unmarshals a candidate, preserving original numeric
// formatting via json.Number and dropping metrics without name and value.
func decodeResult(candidate string) *entity.ExtractionResult {
	dec := json.NewDecoder(bytes.NewReader([]byte(candidate)))
	dec.UseNumber()
	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return nil
	}

	res := &entity.ExtractionResult{
		PatientName: strings.TrimSpace(w.PatientName),
		ExamDate:    strings.TrimSpace(w.ExamDate),
		Laboratory:  strings.TrimSpace(w.Laboratory),
	}
	for _, ws := range w.Sections {
		sec := entity.Section{Title: strings.TrimSpace(ws.Title), Icon: strings.TrimSpace(ws.Icon)}
		for _, wm := range ws.Metrics {
			m := entity.Metric{
				Name:      strings.TrimSpace(wm.Name),
				Value:     anyToString(wm.Value),
				Unit:      strings.TrimSpace(wm.Unit),
				Reference: anyToString(wm.Reference),
				Status:    entity.NormalizeStatus(wm.Status),
			}
			if m.Valid() {
				sec.Metrics = append(sec.Metrics, m)
			}
		}
		if len(sec.Metrics) > 0 {
			res.Sections = append(res.Sections, sec)
		}
	}
	return res
}

func anyToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
