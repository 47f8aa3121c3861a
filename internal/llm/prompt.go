package llm

import "strings"

// BuildExtractionPrompt composes the instruction sent with the exam pages.
// The model must return ONLY JSON in the documented shape; status comes
// from the model itself, not from local numeric comparison.
func BuildExtractionPrompt(examTypeHint string) string {
	parts := []string{
		"Você é um assistente que extrai dados de exames laboratoriais fotografados.",
		"Analise TODAS as páginas enviadas e retorne SOMENTE um objeto JSON, sem texto antes ou depois.",
		`Formato: {"patient_name": "...", "exam_date": "...", "laboratory": "...", "sections": [{"title": "...", "icon": "...", "metrics": [{"name": "...", "value": "...", "unit": "...", "reference": "...", "status": "normal|elevated|low|critical"}]}]}`,
		"Copie nome, valor, unidade e faixa de referência EXATAMENTE como impressos no documento.",
		"Preserve a formatação original dos valores (vírgulas decimais, símbolos).",
		"Para 'status', compare o valor com a referência impressa: normal, elevated, low ou critical.",
		"Se o nome do paciente não estiver legível, use \"Paciente\".",
		"Use datas no formato YYYY-MM-DD quando possível.",
		"Agrupe os exames em seções pelo tipo (hemograma, lipídios, função renal, etc).",
		"NUNCA invente exames ou valores que não estejam visíveis nas imagens.",
	}
	if hint := strings.TrimSpace(examTypeHint); hint != "" {
		parts = append(parts, "Dica: o usuário indicou que se trata de um exame do tipo: "+hint+".")
	}
	return strings.Join(parts, " ")
}

// BuildDirectivePrompt is the stripped-down retry used after a refusal.
// Ultra-directive and stripped of anything a safety filter could read as a
// request for medical advice.
func BuildDirectivePrompt() string {
	return strings.Join([]string{
		"TAREFA DE TRANSCRIÇÃO DE DOCUMENTO.",
		"As imagens contêm um relatório de laboratório.",
		"Transcreva os nomes dos exames, valores, unidades e referências impressos, em JSON:",
		`{"sections": [{"title": "Exames", "metrics": [{"name": "...", "value": "...", "unit": "...", "reference": "...", "status": "normal"}]}]}`,
		"Não interprete, não aconselhe, apenas transcreva. Responda somente com o JSON.",
	}, " ")
}
