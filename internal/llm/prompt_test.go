package llm

import (
	"strings"
	"testing"
)

func TestBuildExtractionPrompt(t *testing.T) {
	p := BuildExtractionPrompt("")
	if !strings.Contains(p, "SOMENTE um objeto JSON") {
		t.Error("prompt must demand JSON-only output")
	}
	if !strings.Contains(p, `"sections"`) {
		t.Error("prompt must document the output shape")
	}
	if strings.Contains(p, "Dica:") {
		t.Error("no hint line without a hint")
	}

	withHint := BuildExtractionPrompt("hemograma")
	if !strings.Contains(withHint, "hemograma") {
		t.Error("hint must be forwarded to the model")
	}
}

func TestBuildDirectivePrompt(t *testing.T) {
	p := BuildDirectivePrompt()
	if !strings.Contains(p, "TRANSCRIÇÃO") {
		t.Error("directive retry must frame the task as transcription")
	}
	if !strings.Contains(p, `"sections"`) {
		t.Error("directive retry must still document the output shape")
	}
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	schema := BuildExamJSONSchema()

	good := []byte(`{"sections": [{"metrics": [{"name": "Glicose", "value": "92", "status": "normal"}]}]}`)
	if err := ValidateJSONAgainstSchema(schema, good); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	bad := [][]byte{
		[]byte(`{}`),               // sections missing
		[]byte(`{"sections": []}`), // empty sections
		[]byte(`{"sections": [{}]}`),
	}
	for _, b := range bad {
		if err := ValidateJSONAgainstSchema(schema, b); err == nil {
			t.Errorf("invalid payload %s accepted", b)
		}
	}
}
