package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"EconomyNewsletter/internal/agents"
	"EconomyNewsletter/internal/domain"
)

const topicsPerSection = 3

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var page = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Newsletter Econômico Automático</title>
    <meta charset="utf-8">
</head>
<body>
    <h1>📈 Newsletter Econômico Automático</h1>
    <h2>Análise Automática | {{.Date}}</h2>

    <h3>🔥 Principais Destaques</h3>
{{- range .Sections}}
    <h4>{{.Title}}</h4>
    {{- range .Topics}}
    <p><strong>{{.Label}}:</strong> {{.Brief}}</p>
    {{- end}}
{{- end}}

    <h3>🔮 Predições para as Próximas Semanas</h3>
    <h4>Indicadores Econômicos:</h4>
    <ul>
{{- range .Indicators}}
        <li><strong>{{.Label}}:</strong> {{.Value}} (Confiança: {{.Confidence}}%)</li>
{{- end}}
    </ul>

    <h4>Setores em Destaque:</h4>
    <ul>
{{- range .Sectors}}
        <li><strong>{{.Label}}:</strong> {{.Value}} (Confiança: {{.Confidence}}%)</li>
{{- end}}
    </ul>

    <h4>⚠️ Principais Riscos:</h4>
    <ul>
{{- range .Risks}}
        <li><strong>{{.Label}}:</strong> {{.Value}} ({{.Confidence}}% probabilidade)</li>
{{- end}}
    </ul>

    <hr>
    <p><strong>Metodologia:</strong> {{.Methodology}}</p>
    <p><strong>Confiança geral das predições:</strong> {{.Overall}}%</p>
    <p><strong>Disclaimer:</strong> {{.Disclaimer}}</p>

    <footer>
        <p><small>Newsletter gerada automaticamente por sistema multi-agente</small></p>
        <p><small>Próxima edição: {{.NextEdition}}</small></p>
    </footer>
</body>
</html>
`))

type topicView struct {
	Label string
	Brief string
}

type sectionView struct {
	Title  string
	Topics []topicView
}

type outlookView struct {
	Label      string
	Value      string
	Confidence int
}

type pageView struct {
	Date        string
	Sections    []sectionView
	Indicators  []outlookView
	Sectors     []outlookView
	Risks       []outlookView
	Methodology string
	Disclaimer  string
	Overall     int
	NextEdition string
}

// Newsletter renders approved topics and forecasts into an HTML page.
func Newsletter(validation agents.Validation, forecast agents.Forecast, now time.Time) ([]byte, error) {
	view := pageView{
		Date:        LongDate(now),
		Methodology: forecast.Methodology,
		Disclaimer:  forecast.Disclaimer,
		Overall:     percent(forecast.Predictions.Confidence.Overall),
		NextEdition: NextEdition(now).Format("02/01/2006 às 15:04"),
	}

	for _, verdict := range validation.Verdicts {
		if len(verdict.Approved) == 0 {
			continue
		}
		sec := sectionView{Title: domain.DisplayName(verdict.Section)}
		for i, topic := range verdict.Approved {
			if i == topicsPerSection {
				break
			}
			tv := topicView{Label: topicLabel(topic.Title)}
			if len(topic.MainPoints) > 0 {
				tv.Brief = topic.MainPoints[0].Brief
			}
			sec.Topics = append(sec.Topics, tv)
		}
		view.Sections = append(view.Sections, sec)
	}

	for _, ind := range forecast.Predictions.Indicators {
		view.Indicators = append(view.Indicators, outlookView{
			Label:      domain.TitleCase(ind.Name),
			Value:      ind.Prediction,
			Confidence: percent(ind.Confidence),
		})
	}
	for _, sec := range forecast.Predictions.Sectors {
		view.Sectors = append(view.Sectors, outlookView{
			Label:      domain.DisplayName(sec.Name),
			Value:      sec.Outlook,
			Confidence: percent(sec.Confidence),
		})
	}
	for _, risk := range forecast.Predictions.Risks {
		view.Risks = append(view.Risks, outlookView{
			Label:      domain.TitleCase(risk.Name),
			Value:      risk.Description,
			Confidence: percent(risk.Probability),
		})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute newsletter template: %w", err)
	}
	return buf.Bytes(), nil
}

// LongDate formats a date as "23 de junho de 2025".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// NextEdition is 08:00 on the following day.
func NextEdition(now time.Time) time.Time {
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 8, 0, 0, 0, now.Location())
}

func topicLabel(title string) string {
	label, _, _ := strings.Cut(title, " - ")
	return label
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
