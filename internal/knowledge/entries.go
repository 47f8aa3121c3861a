package knowledge

import "github.com/tvmensal2025/your-wellness-companion-02-sub005/constants"

// entries is keyed by normalized exam name. Loaded once; immutable for the
// lifetime of the process.
var entries = map[string]Entry{
	"hemoglobina": {
		Category:    constants.Hematology,
		Explanation: "Proteína dos glóbulos vermelhos que transporta oxigênio dos pulmões para todo o corpo.",
		Analogy:     "Funciona como o caminhão de entrega de oxigênio do seu sangue.",
		LowMeaning:  "Pode indicar anemia, deficiência de ferro ou perda de sangue.",
		HighMeaning: "Pode indicar desidratação ou produção excessiva de glóbulos vermelhos.",
		Tips:        []string{"Consuma alimentos ricos em ferro como feijão e carnes magras.", "Vitamina C ajuda na absorção do ferro."},
	},
	"hematocrito": {
		Category:    constants.Hematology,
		Explanation: "Percentual do sangue ocupado pelos glóbulos vermelhos.",
		Analogy:     "É como medir quanto do seu sangue é 'parte sólida' transportadora de oxigênio.",
		LowMeaning:  "Acompanha a hemoglobina baixa nos quadros de anemia.",
		HighMeaning: "Comum na desidratação; o sangue fica mais concentrado.",
		Tips:        []string{"Mantenha boa hidratação antes de repetir o exame."},
	},
	"leucocitos": {
		Category:    constants.Hematology,
		Explanation: "Células de defesa do organismo contra infecções.",
		Analogy:     "São os soldados do seu sistema imunológico.",
		LowMeaning:  "Pode indicar queda de imunidade ou efeito de medicamentos.",
		HighMeaning: "Geralmente aponta infecção ou inflamação em atividade.",
		Tips:        []string{"Valores alterados isolados merecem repetição do exame antes de qualquer conclusão."},
	},
	"plaquetas": {
		Category:    constants.Hematology,
		Explanation: "Fragmentos celulares responsáveis pela coagulação do sangue.",
		Analogy:     "Agem como tampões que fecham vazamentos nos vasos.",
		LowMeaning:  "Aumenta o risco de sangramentos e manchas roxas.",
		HighMeaning: "Pode ocorrer em inflamações ou deficiência de ferro.",
		Tips:        []string{"Evite anti-inflamatórios por conta própria se estiverem baixas."},
	},
	"glicose": {
		Category:    constants.Glycemic,
		Explanation: "Açúcar circulante no sangue, principal fonte de energia das células.",
		Analogy:     "É o combustível que abastece o motor do corpo.",
		LowMeaning:  "Hipoglicemia: pode causar tontura, suor frio e desmaio.",
		HighMeaning: "Persistentemente alta sugere pré-diabetes ou diabetes.",
		Tips:        []string{"Prefira carboidratos integrais.", "Atividade física regular melhora o controle glicêmico."},
	},
	"hemoglobina_glicada": {
		Category:    constants.Glycemic,
		Explanation: "Média da glicose dos últimos 2 a 3 meses, medida na hemoglobina.",
		Analogy:     "É a 'média escolar' da sua glicose, não a nota de uma prova só.",
		LowMeaning:  "Raramente baixa; pode refletir episódios de hipoglicemia.",
		HighMeaning: "Acima de 6,5% é critério de diabetes.",
		Tips:        []string{"Não exige jejum; reflete o hábito, não o dia do exame."},
	},
	"insulina": {
		Category:    constants.Glycemic,
		Explanation: "Hormônio do pâncreas que coloca a glicose para dentro das células.",
		Analogy:     "É a chave que abre a porta das células para o açúcar entrar.",
		LowMeaning:  "Produção insuficiente, comum no diabetes tipo 1.",
		HighMeaning: "Pode indicar resistência insulínica.",
		Tips:        []string{"Perda de peso modesta já reduz a resistência à insulina."},
	},
	"colesterol_total": {
		Category:    constants.Lipid,
		Explanation: "Soma de todas as frações de gordura transportadas no sangue.",
		Analogy:     "É o total de carga gordurosa circulando nas suas estradas sanguíneas.",
		LowMeaning:  "Valores muito baixos são raros e geralmente sem significado clínico.",
		HighMeaning: "Aumenta o risco de placas nas artérias e doença cardiovascular.",
		Tips:        []string{"Reduza frituras e ultraprocessados.", "Fibras ajudam a baixar o colesterol."},
	},
	"colesterol_hdl": {
		Category:    constants.Lipid,
		Explanation: "Fração 'boa' do colesterol, que remove gordura das artérias.",
		Analogy:     "É o caminhão de limpeza que recolhe gordura das paredes dos vasos.",
		LowMeaning:  "HDL baixo reduz a proteção cardiovascular.",
		HighMeaning: "Quanto mais alto, maior a proteção.",
		Tips:        []string{"Exercício aeróbico regular eleva o HDL."},
	},
	"colesterol_ldl": {
		Category:    constants.Lipid,
		Explanation: "Fração 'ruim' do colesterol, que deposita gordura nas artérias.",
		Analogy:     "É o caminhão que descarrega gordura onde não deveria.",
		LowMeaning:  "Quanto menor, menor o risco cardiovascular.",
		HighMeaning: "Principal alvo de tratamento para prevenir infarto e AVC.",
		Tips:        []string{"Gordura saturada em excesso eleva o LDL."},
	},
	"triglicerideos": {
		Category:    constants.Lipid,
		Explanation: "Gordura de reserva formada principalmente a partir de açúcares e álcool.",
		Analogy:     "É o estoque de energia que o corpo guarda quando você come além do que gasta.",
		LowMeaning:  "Sem significado clínico na maioria dos casos.",
		HighMeaning: "Elevados aumentam risco cardiovascular e de pancreatite.",
		Tips:        []string{"Reduza açúcar, massas e álcool.", "Jejum inadequado eleva falsamente o resultado."},
	},
	"creatinina": {
		Category:    constants.Renal,
		Explanation: "Resíduo muscular eliminado pelos rins; mede a função renal.",
		Analogy:     "É o termômetro do filtro dos seus rins.",
		LowMeaning:  "Comum em pessoas com pouca massa muscular.",
		HighMeaning: "Pode indicar que os rins estão filtrando menos.",
		Tips:        []string{"Hidratação adequada protege os rins."},
	},
	"ureia": {
		Category:    constants.Renal,
		Explanation: "Resíduo da digestão das proteínas, eliminado pelos rins.",
		Analogy:     "É a cinza que sobra quando o corpo queima proteína.",
		LowMeaning:  "Pode ocorrer em dietas pobres em proteína.",
		HighMeaning: "Sobe na desidratação e na redução da função renal.",
		Tips:        []string{"Avalie junto com a creatinina, nunca isolada."},
	},
	"acido_urico": {
		Category:    constants.Renal,
		Explanation: "Produto da quebra de purinas, presentes em carnes e bebidas alcoólicas.",
		Analogy:     "É a sobra de demolição que pode cristalizar nas articulações.",
		LowMeaning:  "Geralmente sem repercussão clínica.",
		HighMeaning: "Pode causar gota e cálculos renais.",
		Tips:        []string{"Modere carnes vermelhas, frutos do mar e cerveja."},
	},
	"tgo": {
		Category:    constants.Hepatic,
		Explanation: "Enzima presente no fígado e nos músculos; sobe quando há lesão dessas células.",
		Analogy:     "É o alarme que dispara quando células do fígado se rompem.",
		LowMeaning:  "Sem significado clínico.",
		HighMeaning: "Pode indicar sobrecarga hepática por gordura, álcool ou medicamentos.",
		Tips:        []string{"Exercício intenso na véspera pode elevar o resultado."},
	},
	"tgp": {
		Category:    constants.Hepatic,
		Explanation: "Enzima mais específica do fígado; marcador sensível de lesão hepática.",
		Analogy:     "É o alarme exclusivo da casa do fígado.",
		LowMeaning:  "Sem significado clínico.",
		HighMeaning: "Elevação sugere gordura no fígado, hepatites ou efeito de remédios.",
		Tips:        []string{"Reduza álcool e frituras antes de repetir o exame."},
	},
	"ggt": {
		Category:    constants.Hepatic,
		Explanation: "Enzima das vias biliares, sensível ao álcool e a medicamentos.",
		Analogy:     "É o sensor do encanamento que leva a bile.",
		LowMeaning:  "Sem significado clínico.",
		HighMeaning: "Sobe com álcool frequente e obstruções biliares.",
		Tips:        []string{"Suspenda álcool por alguns dias antes de repetir."},
	},
	"bilirrubina": {
		Category:    constants.Hepatic,
		Explanation: "Pigmento amarelo da quebra dos glóbulos vermelhos, processado pelo fígado.",
		Analogy:     "É a tinta amarela que o fígado precisa reciclar.",
		LowMeaning:  "Sem significado clínico.",
		HighMeaning: "Elevada causa icterícia (pele e olhos amarelados).",
		Tips:        []string{"Jejum prolongado eleva discretamente a bilirrubina indireta."},
	},
	"tsh": {
		Category:    constants.Thyroid,
		Explanation: "Hormônio da hipófise que comanda a tireoide.",
		Analogy:     "É o gerente que manda a tireoide trabalhar mais ou menos.",
		LowMeaning:  "Pode indicar tireoide acelerada (hipertireoidismo).",
		HighMeaning: "Pode indicar tireoide preguiçosa (hipotireoidismo).",
		Tips:        []string{"Colete sempre no mesmo horário para comparar resultados."},
	},
	"t4_livre": {
		Category:    constants.Thyroid,
		Explanation: "Hormônio ativo produzido pela tireoide, disponível para uso pelas células.",
		Analogy:     "É o produto final que a fábrica tireoide entrega ao corpo.",
		LowMeaning:  "Reforça o diagnóstico de hipotireoidismo quando o TSH está alto.",
		HighMeaning: "Reforça hipertireoidismo quando o TSH está baixo.",
		Tips:        []string{"Interprete sempre em conjunto com o TSH."},
	},
	"vitamina_d": {
		Category:    constants.Vitamins,
		Explanation: "Vitamina produzida na pele sob o sol, essencial para ossos e imunidade.",
		Analogy:     "É o cimento que ajuda a fixar cálcio nos ossos.",
		LowMeaning:  "Deficiência enfraquece ossos e músculos.",
		HighMeaning: "Excesso geralmente vem de suplementação exagerada.",
		Tips:        []string{"15 minutos de sol por dia ajudam na produção natural."},
	},
	"vitamina_b12": {
		Category:    constants.Vitamins,
		Explanation: "Vitamina essencial para os nervos e para a produção de sangue.",
		Analogy:     "É o lubrificante da fiação elétrica do corpo.",
		LowMeaning:  "Deficiência causa anemia, formigamento e falta de memória.",
		HighMeaning: "Geralmente reflete suplementação, sem toxicidade relevante.",
		Tips:        []string{"Vegetarianos estritos devem monitorar e suplementar."},
	},
	"ferritina": {
		Category:    constants.Vitamins,
		Explanation: "Proteína que estoca ferro no organismo.",
		Analogy:     "É o armazém onde o corpo guarda o ferro de reserva.",
		LowMeaning:  "Estoque baixo de ferro; precede a anemia ferropriva.",
		HighMeaning: "Pode subir em inflamações, não só por excesso de ferro.",
		Tips:        []string{"Avalie junto com hemograma e ferro sérico."},
	},
	"ferro": {
		Category:    constants.Vitamins,
		Explanation: "Mineral usado na fabricação da hemoglobina.",
		Analogy:     "É a matéria-prima dos caminhões de oxigênio.",
		LowMeaning:  "Leva à anemia ferropriva com cansaço e palidez.",
		HighMeaning: "Excesso crônico pode sobrecarregar fígado e coração.",
		Tips:        []string{"Chá e café na refeição atrapalham a absorção do ferro."},
	},
	"testosterona": {
		Category:    constants.Hormonal,
		Explanation: "Principal hormônio sexual masculino, presente também nas mulheres.",
		Analogy:     "É um dos reguladores de energia, massa muscular e libido.",
		LowMeaning:  "Pode causar fadiga, queda de libido e perda muscular.",
		HighMeaning: "Em mulheres pode indicar ovários policísticos.",
		Tips:        []string{"Colete pela manhã, quando o valor é mais alto."},
	},
	"cortisol": {
		Category:    constants.Hormonal,
		Explanation: "Hormônio do estresse, produzido pelas adrenais.",
		Analogy:     "É o despertador químico que prepara o corpo para reagir.",
		LowMeaning:  "Pode indicar insuficiência adrenal.",
		HighMeaning: "Estresse crônico, medicamentos ou síndrome de Cushing.",
		Tips:        []string{"O horário da coleta muda completamente a interpretação."},
	},
	"pcr": {
		Category:    constants.Other,
		Explanation: "Proteína C reativa, marcador de inflamação em atividade.",
		Analogy:     "É a fumaça que denuncia um incêndio em algum lugar do corpo.",
		LowMeaning:  "Ausência de inflamação relevante.",
		HighMeaning: "Indica inflamação ou infecção; não aponta o local.",
		Tips:        []string{"Gripes e resfriados recentes elevam a PCR."},
	},
}

// aliases maps alternative printed names (already normalized) onto
// canonical entry keys.
var aliases = map[string]string{
	"hb":                 "hemoglobina",
	"hgb":                "hemoglobina",
	"ht":                 "hematocrito",
	"hct":                "hematocrito",
	"globulos_brancos":   "leucocitos",
	"wbc":                "leucocitos",
	"plt":                "plaquetas",
	"glicemia":           "glicose",
	"glicemia_de_jejum":  "glicose",
	"glucose":            "glicose",
	"hba1c":              "hemoglobina_glicada",
	"a1c":                "hemoglobina_glicada",
	"colesterol":         "colesterol_total",
	"hdl":                "colesterol_hdl",
	"ldl":                "colesterol_ldl",
	"triglicerides":      "triglicerideos",
	"tg":                 "triglicerideos",
	"ast":                "tgo",
	"alt":                "tgp",
	"gama_gt":            "ggt",
	"gama_glutamil":      "ggt",
	"bilirrubina_total":  "bilirrubina",
	"t4":                 "t4_livre",
	"tiroxina_livre":     "t4_livre",
	"25_oh_vitamina_d":   "vitamina_d",
	"vitamina_d3":        "vitamina_d",
	"b12":                "vitamina_b12",
	"cobalamina":         "vitamina_b12",
	"ferro_serico":       "ferro",
	"testosterona_total": "testosterona",
	"proteina_c_reativa": "pcr",
	"urato":              "acido_urico",
}

// KnownKeys returns the canonical entry keys, for the heuristic extractor's
// keyword matching.
func KnownKeys() []string {
	keys := make([]string, 0, len(entries)+len(aliases))
	for k := range entries {
		keys = append(keys, k)
	}
	for a := range aliases {
		keys = append(keys, a)
	}
	return keys
}
