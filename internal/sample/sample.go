// Package sample provides a fixed batch of economy headlines for demos and tests.
package sample

import "EconomyNewsletter/internal/domain"

// Articles returns five CNN Brasil economy stories from 2025-06-23.
func Articles() []domain.Article {
	return []domain.Article{
		{
			Title:     "Por que o petróleo caiu 7% após o Irã atacar alvos dos EUA?",
			Content:   "O preço do petróleo Brent recuou cerca de 7% nesta segunda-feira, após os ataques do Irã contra alvos americanos no Iraque. A resposta tímida dos EUA reduziu temores de escalada militar maior no Oriente Médio.",
			URL:       "https://cnnbrasil.com.br/economia/petroleo-caiu-ira-atacou-eua",
			Timestamp: "2025-06-23T17:57:00",
			Category:  "internacional",
		},
		{
			Title:     "Focus: mercado reduz projeção para inflação em 2025 e eleva juros",
			Content:   "O relatório Focus do Banco Central mostrou que analistas reduziram a projeção de inflação para 2025 de 3,9% para 3,85%, mas elevaram a expectativa para a taxa Selic para 12,5% ao final do ano.",
			URL:       "https://cnnbrasil.com.br/economia/focus-inflacao-juros",
			Timestamp: "2025-06-23T16:30:00",
			Category:  "politica_economica",
		},
		{
			Title:     "Restituição do INSS fora da meta fiscal mina credibilidade",
			Content:   "Analistas criticam decisão do governo de tirar as restituições do INSS da meta fiscal, afirmando que a medida compromete a credibilidade da política fiscal brasileira.",
			URL:       "https://cnnbrasil.com.br/economia/inss-meta-fiscal",
			Timestamp: "2025-06-23T19:54:00",
			Category:  "politica_economica",
		},
		{
			Title:     "Bolsas em NY sobem com tensão no Oriente Médio e juros no radar",
			Content:   "As bolsas americanas fecharam em alta, com investidores monitorando os desenvolvimentos geopolíticos no Oriente Médio e aguardando sinais sobre a política monetária do Federal Reserve.",
			URL:       "https://cnnbrasil.com.br/economia/bolsas-ny-sobem",
			Timestamp: "2025-06-23T18:29:00",
			Category:  "mercado_financeiro",
		},
		{
			Title:     "Brasil sente peso de custo na logística com alta do frete",
			Content:   "O aumento dos custos de frete marítimo e os desvios de rotas devido ao conflito no Oriente Médio estão impactando a logística brasileira, elevando custos de importação.",
			URL:       "https://cnnbrasil.com.br/economia/logistica-frete",
			Timestamp: "2025-06-23T20:49:00",
			Category:  "comercio",
		},
	}
}
