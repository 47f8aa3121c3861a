package llm

import (
	"bytes"
	"encoding/json"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// SanitizeOptionalFields removes or normalizes fields that don't meet the
// strict schema, so the overall document can still validate. Names and
// values are never invented; numbers are reformatted to their literal
// string form, unusable entries are removed.
func SanitizeOptionalFields(doc []byte) ([]byte, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, nil, err
	}

	var dropped []string

	// top-level optionals: keep only usable strings
	for _, k := range []string{"patient_name", "exam_date", "laboratory"} {
		if v, ok := m[k]; ok {
			if s := anyToString(v); s != "" {
				m[k] = s
			} else {
				delete(m, k)
				dropped = append(dropped, k)
			}
		}
	}

	rawSecs, _ := m["sections"].([]any)
	secs := make([]any, 0, len(rawSecs))
	for _, rs := range rawSecs {
		sec, ok := rs.(map[string]any)
		if !ok {
			dropped = append(dropped, "sections[]")
			continue
		}
		for _, k := range []string{"title", "icon"} {
			if v, ok := sec[k]; ok {
				if s := anyToString(v); s != "" {
					sec[k] = s
				} else {
					delete(sec, k)
					dropped = append(dropped, k)
				}
			}
		}

		rawMetrics, _ := sec["metrics"].([]any)
		metrics := make([]any, 0, len(rawMetrics))
		for _, rm := range rawMetrics {
			met, ok := rm.(map[string]any)
			if !ok {
				dropped = append(dropped, "metrics[]")
				continue
			}
			name := anyToString(met["name"])
			value := anyToString(met["value"])
			if name == "" || value == "" {
				dropped = append(dropped, "metrics[]")
				continue
			}
			met["name"], met["value"] = name, value
			for _, k := range []string{"unit", "reference"} {
				if v, ok := met[k]; ok {
					if s := anyToString(v); s != "" {
						met[k] = s
					} else {
						delete(met, k)
						dropped = append(dropped, k)
					}
				}
			}
			if v, ok := met["status"]; ok {
				if s := anyToString(v); s != "" {
					met["status"] = string(entity.NormalizeStatus(s))
				} else {
					delete(met, "status")
					dropped = append(dropped, "status")
				}
			}
			metrics = append(metrics, met)
		}
		if len(metrics) == 0 {
			dropped = append(dropped, "sections[]")
			continue
		}
		sec["metrics"] = metrics
		secs = append(secs, sec)
	}
	m["sections"] = secs

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, dropped, nil
}
