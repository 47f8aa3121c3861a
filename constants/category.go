package constants

import (
	"strings"
)

// Category buckets lab metrics into display groups.
type Category string

const (
	Lipid      Category = "Lipid"
	Renal      Category = "Renal"
	Hepatic    Category = "Hepatic"
	Hematology Category = "Hematology"
	Glycemic   Category = "Glycemic"
	Thyroid    Category = "Thyroid"
	Vitamins   Category = "Vitamins"
	Hormonal   Category = "Hormonal"
	Urinalysis Category = "Urinalysis"
	Other      Category = "Other"
)

var allCategories = []Category{
	Lipid,
	Renal,
	Hepatic,
	Hematology,
	Glycemic,
	Thyroid,
	Vitamins,
	Hormonal,
	Urinalysis,
	Other,
}

// AsStringSlice returns the category names for enum validation in the
// document schema.
func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// categoryKeywords maps each category to normalized keywords matched
// against normalized metric names (substring, either direction).
var categoryKeywords = map[Category][]string{
	Lipid:      {"colesterol", "hdl", "ldl", "vldl", "triglicerideos", "triglicerides", "lipidograma"},
	Renal:      {"creatinina", "ureia", "acido_urico", "microalbuminuria", "tfg", "filtracao_glomerular"},
	Hepatic:    {"tgo", "tgp", "ast", "alt", "ggt", "gama_gt", "bilirrubina", "fosfatase_alcalina", "albumina"},
	Hematology: {"hemoglobina", "hematocrito", "hemacias", "leucocitos", "plaquetas", "vcm", "hcm", "chcm", "rdw", "neutrofilos", "linfocitos", "monocitos", "eosinofilos", "basofilos"},
	Glycemic:   {"glicose", "glicemia", "hemoglobina_glicada", "hba1c", "insulina", "homa"},
	Thyroid:    {"tsh", "t3", "t4", "tireoide", "tiroxina", "anti_tpo"},
	Vitamins:   {"vitamina", "ferritina", "ferro", "b12", "folato", "acido_folico", "calcio", "magnesio", "zinco", "sodio", "potassio"},
	Hormonal:   {"testosterona", "estradiol", "progesterona", "cortisol", "prolactina", "fsh", "lh", "dhea"},
	Urinalysis: {"urina", "eas", "urocultura", "densidade_urinaria"},
}

// DisplayTitle returns the Portuguese section title used when bucketing
// metrics into display categories.
func (c Category) DisplayTitle() string {
	switch c {
	case Lipid:
		return "Perfil Lipídico"
	case Renal:
		return "Função Renal"
	case Hepatic:
		return "Função Hepática"
	case Hematology:
		return "Hemograma"
	case Glycemic:
		return "Glicemia"
	case Thyroid:
		return "Tireoide"
	case Vitamins:
		return "Vitaminas e Minerais"
	case Hormonal:
		return "Hormônios"
	case Urinalysis:
		return "Exame de Urina"
	default:
		return "Outros Exames"
	}
}

// Icon returns the icon tag handed to the rendering collaborator.
func (c Category) Icon() string {
	switch c {
	case Lipid:
		return "droplet"
	case Renal:
		return "filter"
	case Hepatic:
		return "shield"
	case Hematology:
		return "activity"
	case Glycemic:
		return "zap"
	case Thyroid:
		return "gauge"
	case Vitamins:
		return "sun"
	case Hormonal:
		return "moon"
	case Urinalysis:
		return "beaker"
	default:
		return "clipboard"
	}
}

// CategorizeName buckets a normalized metric name into a category using
// the keyword sets. Substring match runs in both directions so that
// "colesterol_total" matches "colesterol" and "hdl" matches "colesterol_hdl".
func CategorizeName(normalized string) Category {
	if normalized == "" {
		return Other
	}
	for _, cat := range allCategories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(normalized, kw) || strings.Contains(kw, normalized) {
				return cat
			}
		}
	}
	return Other
}
