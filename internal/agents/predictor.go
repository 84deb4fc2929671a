package agents

import (
	"log/slog"

	"EconomyNewsletter/internal/domain"
)

// Uncertainty labels reported with the confidence levels.
const (
	UncertaintyModerate = "moderada"
	UncertaintyHigh     = "alta"
)

// Fixed texts attached to every forecast.
const (
	PredictionMethodology = "Análise técnica + tendências + fatores geopolíticos"
	PredictionDisclaimer  = "Predições baseadas em análise de tendências. Não constituem recomendação de investimento."
)

const (
	predictionHorizon      = "3_weeks"
	highConfidence         = 0.7
	moderateUncertainty    = 0.6
	predictionWindowInDays = 21
)

// IndicatorOutlook is a static forecast for an economic indicator.
type IndicatorOutlook struct {
	Name         string   `json:"name"`
	CurrentTrend string   `json:"current_trend"`
	Prediction   string   `json:"prediction_3weeks"`
	Factors      []string `json:"factors"`
	Confidence   float64  `json:"confidence"`
}

// SectorOutlook is a static forecast for an economic sector.
type SectorOutlook struct {
	Name       string   `json:"name"`
	Outlook    string   `json:"outlook"`
	KeyDrivers []string `json:"key_drivers"`
	Timeline   string   `json:"timeline"`
	Confidence float64  `json:"confidence"`
}

// RiskFactor describes a tracked downside scenario.
type RiskFactor struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Probability     float64  `json:"probability"`
	ImpactLevel     string   `json:"impact_level"`
	AffectedSectors []string `json:"affected_sectors"`
}

// KeyDate is an upcoming event worth watching.
type KeyDate struct {
	Date       string `json:"date"`
	Event      string `json:"event"`
	Importance string `json:"importance"`
}

// TemporalRecommendations lists what to watch over the forecast window.
type TemporalRecommendations struct {
	ShortTerm  []string  `json:"short_term_1week"`
	MediumTerm []string  `json:"medium_term_3weeks"`
	KeyDates   []KeyDate `json:"key_dates"`
}

// AnalysisPeriod bounds the forecast window.
type AnalysisPeriod struct {
	StartDate string `json:"start_date"`
	Horizon   string `json:"prediction_horizon"`
	EndDate   string `json:"end_date"`
}

// ConfidenceLevels summarizes indicator and sector confidences.
type ConfidenceLevels struct {
	Overall          float64 `json:"overall_confidence"`
	HighConfidence   int     `json:"high_confidence_predictions"`
	UncertaintyLevel string  `json:"uncertainty_level"`
}

// PredictionSet holds every forecast table.
type PredictionSet struct {
	Period          AnalysisPeriod          `json:"analysis_period"`
	Indicators      []IndicatorOutlook      `json:"economic_indicators"`
	Sectors         []SectorOutlook         `json:"sector_predictions"`
	Risks           []RiskFactor            `json:"risk_factors"`
	Confidence      ConfidenceLevels        `json:"confidence_levels"`
	Recommendations TemporalRecommendations `json:"temporal_recommendations"`
}

// Forecast is the output of the temporal predictor.
type Forecast struct {
	Timestamp   string        `json:"timestamp"`
	Predictions PredictionSet `json:"predictions"`
	Methodology string        `json:"methodology"`
	Disclaimer  string        `json:"disclaimer"`
	Processed   int           `json:"processed_count"`
}

// Indicators, sectors and risks published with every edition.
var (
	DefaultIndicators = []IndicatorOutlook{
		{Name: "inflacao", CurrentTrend: "estabilidade", Prediction: "leve_alta", Factors: []string{"tensão geopolítica", "commodities"}, Confidence: 0.72},
		{Name: "juros", CurrentTrend: "alta", Prediction: "manutencao", Factors: []string{"política fiscal", "inflação"}, Confidence: 0.68},
		{Name: "cambio", CurrentTrend: "volatilidade_alta", Prediction: "fortalecimento_real", Factors: []string{"conflito internacional", "commodities"}, Confidence: 0.55},
		{Name: "bolsa", CurrentTrend: "cautela", Prediction: "recuperacao_moderada", Factors: []string{"cenário internacional", "resultados corporativos"}, Confidence: 0.61},
	}

	DefaultSectors = []SectorOutlook{
		{Name: "petroleo_gas", Outlook: "positivo", KeyDrivers: []string{"conflito Oriente Médio", "demanda global"}, Timeline: "2-3 semanas", Confidence: 0.78},
		{Name: "bancos", Outlook: "neutro", KeyDrivers: []string{"spreads bancários", "inadimplência"}, Timeline: "3-4 semanas", Confidence: 0.65},
		{Name: "commodities", Outlook: "volatil_positivo", KeyDrivers: []string{"geopolítica", "demanda China"}, Timeline: "1-3 semanas", Confidence: 0.71},
	}

	DefaultRisks = []RiskFactor{
		{Name: "geopoliticos", Description: "Escalada do conflito no Oriente Médio", Probability: 0.45, ImpactLevel: ImpactHigh, AffectedSectors: []string{"energia", "transportes", "seguros"}},
		{Name: "fiscais", Description: "Pressão sobre meta fiscal brasileira", Probability: 0.67, ImpactLevel: ImpactMedium, AffectedSectors: []string{"governo", "bancos", "construção"}},
		{Name: "monetarios", Description: "Mudança na política do Fed americano", Probability: 0.38, ImpactLevel: ImpactHigh, AffectedSectors: []string{"financeiro", "imobiliário", "consumo"}},
	}

	DefaultTemporalRecommendations = TemporalRecommendations{
		ShortTerm: []string{
			"Monitorar evolução do conflito no Oriente Médio",
			"Acompanhar próximas decisões do Copom",
			"Observar dados de inflação dos EUA",
		},
		MediumTerm: []string{
			"Avaliar impacto da geopolítica nos preços do petróleo",
			"Monitorar sinais de mudança na política fiscal",
			"Observar comportamento do dólar vs commodities",
		},
		KeyDates: []KeyDate{
			{Date: "2025-07-01", Event: "Possível reunião Copom", Importance: PriorityHigh},
			{Date: "2025-07-15", Event: "Dados de inflação IPCA", Importance: PriorityMedium},
			{Date: "2025-07-07", Event: "Relatório Focus", Importance: PriorityMedium},
		},
	}
)

// TemporalPredictor attaches the static outlook tables. The validated
// content is accepted for interface compatibility only; forecasts do not
// depend on it.
type TemporalPredictor struct {
	base
	indicators []IndicatorOutlook
	sectors    []SectorOutlook
	risks      []RiskFactor
}

// NewTemporalPredictor uses the default outlook tables.
func NewTemporalPredictor(logger *slog.Logger) *TemporalPredictor {
	return &TemporalPredictor{
		base:       newBase(StagePredictor, logger),
		indicators: DefaultIndicators,
		sectors:    DefaultSectors,
		risks:      DefaultRisks,
	}
}

// Process builds the forecast for the next three weeks.
func (p *TemporalPredictor) Process(_ Validation) Forecast {
	p.info("generating predictions")
	now := p.now()

	set := PredictionSet{
		Period: AnalysisPeriod{
			StartDate: now.Format("2006-01-02"),
			Horizon:   predictionHorizon,
			EndDate:   now.AddDate(0, 0, predictionWindowInDays).Format("2006-01-02"),
		},
		Indicators:      append([]IndicatorOutlook(nil), p.indicators...),
		Sectors:         append([]SectorOutlook(nil), p.sectors...),
		Risks:           append([]RiskFactor(nil), p.risks...),
		Confidence:      Confidence(p.confidences()),
		Recommendations: DefaultTemporalRecommendations,
	}

	processed := len(p.indicators) + len(p.sectors)
	p.info("predictions generated", "indicators", len(p.indicators), "sectors", len(p.sectors))
	return Forecast{
		Timestamp:   now.Format(domain.TimestampLayout),
		Predictions: set,
		Methodology: PredictionMethodology,
		Disclaimer:  PredictionDisclaimer,
		Processed:   processed,
	}
}

func (p *TemporalPredictor) confidences() []float64 {
	values := make([]float64, 0, len(p.indicators)+len(p.sectors))
	for _, ind := range p.indicators {
		values = append(values, ind.Confidence)
	}
	for _, sec := range p.sectors {
		values = append(values, sec.Confidence)
	}
	return values
}

// Confidence averages the given confidences. An empty input yields zero
// overall confidence and high uncertainty.
func Confidence(values []float64) ConfidenceLevels {
	levels := ConfidenceLevels{UncertaintyLevel: UncertaintyHigh}
	if len(values) == 0 {
		return levels
	}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v >= highConfidence {
			levels.HighConfidence++
		}
	}
	levels.Overall = sum / float64(len(values))
	if levels.Overall >= moderateUncertainty {
		levels.UncertaintyLevel = UncertaintyModerate
	}
	return levels
}
