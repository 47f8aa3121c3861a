package constants

import "testing"

func TestStageOrdinalsStrictlyIncrease(t *testing.T) {
	path := []Stage{
		StageCreated,
		StageDownloading,
		StageProcessing,
		StageCallingCascade,
		StageParsingResponse,
		StageEnriching,
		StageFinalizing,
		StageReady,
	}
	for i := 1; i < len(path); i++ {
		if path[i].Ordinal() <= path[i-1].Ordinal() {
			t.Errorf("ordinal(%v) = %d not above ordinal(%v) = %d",
				path[i], path[i].Ordinal(), path[i-1], path[i-1].Ordinal())
		}
	}
	for i := 1; i < len(path); i++ {
		if path[i].Floor() < path[i-1].Floor() {
			t.Errorf("floor(%v) = %d below floor(%v) = %d",
				path[i], path[i].Floor(), path[i-1], path[i-1].Floor())
		}
	}
}

func TestStageTerminal(t *testing.T) {
	for _, s := range []Stage{StageReady, StageError} {
		if !s.Terminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
	for _, s := range []Stage{StageCreated, StageDownloading, StageFinalizing} {
		if s.Terminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
}

func TestStageUnknownOrdinal(t *testing.T) {
	if got := Stage("desconhecido").Ordinal(); got != -1 {
		t.Errorf("Ordinal = %d, want -1", got)
	}
}

func TestErrorReachableFromAnyNonTerminalStage(t *testing.T) {
	for _, raw := range AllStages {
		s := Stage(raw)
		if s.Terminal() {
			continue
		}
		if StageError.Ordinal() <= s.Ordinal() {
			t.Errorf("error ordinal must sit above %v", s)
		}
	}
}

func TestCategorizeName(t *testing.T) {
	cases := map[string]Category{
		"colesterol_total": Lipid,
		"colesterol_hdl":   Lipid,
		"creatinina":       Renal,
		"tgp":              Hepatic,
		"hemoglobina":      Hematology,
		"glicose":          Glycemic,
		"tsh":              Thyroid,
		"vitamina_d":       Vitamins,
		"cortisol":         Hormonal,
		"eas":              Urinalysis,
		"desconhecido_xyz": Other,
		"":                 Other,
	}
	for name, want := range cases {
		if got := CategorizeName(name); got != want {
			t.Errorf("CategorizeName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestAsStringSliceCoversEveryCategory(t *testing.T) {
	got := AsStringSlice()
	if len(got) != len(allCategories) {
		t.Fatalf("len = %d, want %d", len(got), len(allCategories))
	}
	for i, cat := range allCategories {
		if got[i] != string(cat) {
			t.Errorf("got[%d] = %q, want %q", i, got[i], cat)
		}
	}
}

func TestMIMEForExt(t *testing.T) {
	cases := map[string]string{
		".png":  "image/png",
		"PNG":   "image/png",
		".webp": "image/webp",
		".pdf":  "application/pdf",
		".jpg":  "image/jpeg",
		"":      "image/jpeg",
	}
	for ext, want := range cases {
		if got := MIMEForExt(ext); got != want {
			t.Errorf("MIMEForExt(%q) = %q, want %q", ext, got, want)
		}
	}
}
