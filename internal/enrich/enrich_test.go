package enrich

import (
	"strings"
	"testing"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

func TestEnrich_AttachesExplanationsAndFiltersInvalid(t *testing.T) {
	res := &entity.ExtractionResult{
		PatientName: "Maria",
		Sections: []entity.Section{{
			Title: "Hemograma",
			Metrics: []entity.Metric{
				{Name: "Hemoglobina", Value: "13,5", Status: entity.StatusNormal},
				{Name: "", Value: "99", Status: entity.StatusNormal},
				{Name: "Sem Valor", Value: "", Status: entity.StatusNormal},
			},
		}},
	}

	out := NewEnricher(nil).Enrich(res)
	if out.PatientName != "Maria" {
		t.Errorf("patient name lost: %q", out.PatientName)
	}
	if len(out.Sections) != 1 || len(out.Sections[0].Metrics) != 1 {
		t.Fatalf("invalid metrics must be dropped, got %+v", out.Sections)
	}
	if out.Sections[0].Metrics[0].Explanation == "" {
		t.Error("known exam should carry an explanation")
	}
}

func TestEnrich_UnknownMetricSurvivesUnenriched(t *testing.T) {
	res := &entity.ExtractionResult{
		Sections: []entity.Section{{
			Title:   "Outros",
			Icon:    "clipboard",
			Metrics: []entity.Metric{{Name: "Marcador Raro QZX", Value: "1", Status: entity.StatusNormal}},
		}},
	}

	out := NewEnricher(nil).Enrich(res)
	if len(out.Sections) != 1 {
		t.Fatal("unknown metric must survive")
	}
	m := out.Sections[0].Metrics[0]
	if m.Explanation != "" {
		t.Errorf("unexpected explanation %q for unknown exam", m.Explanation)
	}
}

func TestEnrich_FillsMissingSectionTitleAndIcon(t *testing.T) {
	res := &entity.ExtractionResult{
		Sections: []entity.Section{{
			Metrics: []entity.Metric{{Name: "Creatinina", Value: "0,9", Status: entity.StatusNormal}},
		}},
	}

	out := NewEnricher(nil).Enrich(res)
	sec := out.Sections[0]
	if sec.Title != "Função Renal" {
		t.Errorf("title = %q, want category display title", sec.Title)
	}
	if sec.Icon != "filter" {
		t.Errorf("icon = %q, want category icon", sec.Icon)
	}
}

func TestRebucket_GroupsByCategoryInFirstSeenOrder(t *testing.T) {
	metrics := []entity.Metric{
		{Name: "Colesterol Total", Value: "190", Status: entity.StatusNormal},
		{Name: "Creatinina", Value: "0,9", Status: entity.StatusNormal},
		{Name: "Colesterol HDL", Value: "55", Status: entity.StatusNormal},
	}

	sections := Rebucket(metrics)
	if len(sections) != 2 {
		t.Fatalf("section count = %d, want 2", len(sections))
	}
	if sections[0].Title != "Perfil Lipídico" || sections[1].Title != "Função Renal" {
		t.Errorf("titles = %q, %q", sections[0].Title, sections[1].Title)
	}
	if len(sections[0].Metrics) != 2 {
		t.Errorf("lipid section has %d metrics, want 2", len(sections[0].Metrics))
	}
	if sections[0].Icon == "" {
		t.Error("rebucketed section missing icon")
	}
}

func TestScore_BucketsAndInvariant(t *testing.T) {
	sections := []entity.Section{{
		Metrics: []entity.Metric{
			{Name: "a", Value: "1", Status: entity.StatusNormal},
			{Name: "b", Value: "2", Status: entity.StatusElevated},
			{Name: "c", Value: "3", Status: entity.StatusLow},
			{Name: "d", Value: "4", Status: entity.StatusCritical},
		},
	}}

	card := Score(sections)
	if card.Total != 4 || card.Normal != 1 || card.Warning != 2 || card.Critical != 1 {
		t.Fatalf("card = %+v", card)
	}
	if card.Normal+card.Warning+card.Critical != card.Total {
		t.Error("status buckets must partition the total")
	}
	if card.PercentNormal != 25 {
		t.Errorf("percent normal = %d, want 25", card.PercentNormal)
	}
}

func TestScore_RoundsPercent(t *testing.T) {
	sections := []entity.Section{{
		Metrics: []entity.Metric{
			{Name: "a", Value: "1", Status: entity.StatusNormal},
			{Name: "b", Value: "2", Status: entity.StatusNormal},
			{Name: "c", Value: "3", Status: entity.StatusElevated},
		},
	}}
	// 2/3 rounds to 67, not truncates to 66
	if card := Score(sections); card.PercentNormal != 67 {
		t.Errorf("percent normal = %d, want 67", card.PercentNormal)
	}
}

func TestSummary_Bands(t *testing.T) {
	cases := []struct {
		card entity.Scorecard
		frag string
	}{
		{entity.Scorecard{Total: 4, Normal: 4, PercentNormal: 100}, "dentro dos valores"},
		{entity.Scorecard{Total: 10, Normal: 8, PercentNormal: 80}, "maior parte"},
		{entity.Scorecard{Total: 10, Normal: 5, PercentNormal: 50}, "fora da referência"},
		{entity.Scorecard{Total: 10, Normal: 2, PercentNormal: 20}, "orientação médica"},
	}
	for _, tc := range cases {
		got := Summary(tc.card)
		if !strings.Contains(got, tc.frag) {
			t.Errorf("Summary(%d%%) = %q, want fragment %q", tc.card.PercentNormal, got, tc.frag)
		}
	}
}

func TestSummary_EmptyScorecard(t *testing.T) {
	if got := Summary(entity.Scorecard{}); got != "" {
		t.Errorf("Summary(zero) = %q, want empty", got)
	}
}
