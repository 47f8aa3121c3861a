package llm

import (
	"strings"
	"testing"
)

func TestExtractHeuristic_StructuredLines(t *testing.T) {
	raw := strings.Join([]string{
		"LABORATÓRIO SÃO LUCAS",
		"Resultados do paciente",
		"",
		"Hemoglobina: 13,5 g/dL (Ref: 12,0 - 16,0)",
		"Glicose = 92 mg/dL",
		"Observação geral sem valores",
	}, "\n")

	res := ExtractHeuristic(raw, nil)
	if res == nil {
		t.Fatal("expected a result, got nil")
	}
	if len(res.Sections) != 1 || res.Sections[0].Title != "" {
		t.Fatalf("want a single untitled section, got %+v", res.Sections)
	}
	metrics := res.Sections[0].Metrics
	if len(metrics) != 2 {
		t.Fatalf("metric count = %d, want 2", len(metrics))
	}

	hb := metrics[0]
	if hb.Name != "Hemoglobina" || hb.Value != "13,5" || hb.Unit != "g/dL" {
		t.Errorf("first metric = %+v", hb)
	}
	if hb.Reference != "12,0 - 16,0" {
		t.Errorf("reference = %q, want %q", hb.Reference, "12,0 - 16,0")
	}
	if metrics[1].Name != "Glicose" || metrics[1].Value != "92" {
		t.Errorf("second metric = %+v", metrics[1])
	}
}

// A bare "name: value" line without unit or reference only counts when the
// name is a known exam; arbitrary numeric lines must not leak in.
func TestExtractHeuristic_KnownExamWithoutUnit(t *testing.T) {
	raw := strings.Join([]string{
		"Creatinina: 0,9",
		"Protocolo: 4812",
	}, "\n")

	res := ExtractHeuristic(raw, nil)
	if res == nil {
		t.Fatal("expected a result, got nil")
	}
	metrics := res.Sections[0].Metrics
	if len(metrics) != 1 {
		t.Fatalf("metric count = %d, want only the known exam", len(metrics))
	}
	if metrics[0].Name != "Creatinina" || metrics[0].Value != "0,9" {
		t.Errorf("metric = %+v", metrics[0])
	}
}

func TestExtractHeuristic_ValuesCopiedVerbatim(t *testing.T) {
	raw := "Colesterol Total: 190 mg/dL\nTriglicerídeos: 148 mg/dL"

	res := ExtractHeuristic(raw, nil)
	if res == nil {
		t.Fatal("expected a result, got nil")
	}
	for _, m := range res.Sections[0].Metrics {
		if !strings.Contains(raw, m.Name) || !strings.Contains(raw, m.Value) {
			t.Errorf("metric %+v not copied verbatim from input", m)
		}
	}
}

func TestExtractHeuristic_NothingUsable(t *testing.T) {
	for _, raw := range []string{
		"",
		"O documento não contém exames laboratoriais.",
		"I'm sorry, I can't assist with that.",
	} {
		if res := ExtractHeuristic(raw, nil); res != nil {
			t.Errorf("ExtractHeuristic(%q) = %+v, want nil", raw, res)
		}
	}
}

func TestExtractHeuristic_ComparatorValues(t *testing.T) {
	res := ExtractHeuristic("PCR: <5 mg/L", nil)
	if res == nil {
		t.Fatal("expected a result, got nil")
	}
	if got := res.Sections[0].Metrics[0].Value; got != "<5" {
		t.Errorf("value = %q, want comparator preserved", got)
	}
}
