package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildExamJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Used locally to validate what the model returned; only the
// sections array is required since patient/date are best-effort.
func BuildExamJSONSchema() map[string]any {
	metricProps := map[string]any{
		"name":      map[string]any{"type": "string", "minLength": 1},
		"value":     map[string]any{"type": "string", "minLength": 1},
		"unit":      map[string]any{"type": "string"},
		"reference": map[string]any{"type": "string"},
		"status": map[string]any{
			"type": "string",
			"enum": []string{"normal", "elevated", "low", "critical"},
		},
	}
	sectionProps := map[string]any{
		"title": map[string]any{"type": "string"},
		"icon":  map[string]any{"type": "string"},
		"metrics": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":       "object",
				"properties": metricProps,
				"required":   []string{"name", "value"},
			},
		},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"patient_name": map[string]any{"type": "string"},
			"exam_date":    map[string]any{"type": "string"},
			"laboratory":   map[string]any{"type": "string"},
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":       "object",
					"properties": sectionProps,
					"required":   []string{"metrics"},
				},
			},
		},
		"required": []string{"sections"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
