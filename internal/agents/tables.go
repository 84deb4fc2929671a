package agents

// Priority labels used by categories and key developments.
const (
	PriorityHigh   = "alta"
	PriorityMedium = "média"
	PriorityLow    = "baixa"
)

// Impact labels derived from a category's relevance score.
const (
	ImpactLow    = "baixo"
	ImpactMedium = "médio"
	ImpactHigh   = "alto"
)

// Overall validation outcomes.
const (
	QualityApproved      = "aprovado"
	QualityNeedsRevision = "revisão_necessária"
)

// KeywordRule tags a label with the keywords that select it.
type KeywordRule struct {
	Name     string
	Keywords []string
}

// CategoryRule is a weighted classifier category.
type CategoryRule struct {
	Name     string
	Priority string
	Keywords []string
}

// DefaultTheme catches articles no theme rule matched.
const DefaultTheme = "outros"

// ThemeRules are tested in order; the first rule with a hit wins.
var ThemeRules = []KeywordRule{
	{Name: "mercado_financeiro", Keywords: []string{"bolsa", "ibovespa", "ações", "investimento"}},
	{Name: "politica_economica", Keywords: []string{"governo", "ministério", "política"}},
	{Name: "empresas", Keywords: []string{"empresa", "corporação", "negócios"}},
	{Name: "internacional", Keywords: []string{"internacional", "global", "mundial"}},
	{Name: "commodities", Keywords: []string{"petróleo", "ouro", "commodities"}},
}

// Gazetteers for the entity extractor, lower-cased.
var (
	KnownCompanies = []string{
		"petrobras", "vale", "itau", "bradesco", "banco do brasil",
		"magazine luiza", "ambev", "jbs", "natura", "gerdau", "embraer",
		"localiza", "weg", "b3", "eletrobras", "santander", "nubank",
		"inter", "xp", "btg", "cvc", "sabesp", "marfrig", "carrefour", "cnn",
	}

	KnownPeople = []string{
		"lula", "haddad", "campos neto", "galípolo", "tebet", "tarcísio", "costa",
		"bolsonaro", "meirelles", "guedes", "arminio fraga", "mantega", "levy",
	}

	KnownLocations = []string{
		"brasil", "são paulo", "rio de janeiro", "brasília", "estados unidos",
		"china", "europa", "ásia", "eua", "oriente médio", "irã", "argentina",
	}
)

// CategoryRules drive the news classifier. Keywords within a rule are distinct.
var CategoryRules = []CategoryRule{
	{
		Name:     "tensao_geopolitica",
		Priority: PriorityHigh,
		Keywords: []string{"irã", "israel", "petróleo", "conflito", "ormuz", "guerra", "oriente médio", "ataque"},
	},
	{
		Name:     "politica_fiscal",
		Priority: PriorityHigh,
		Keywords: []string{"fiscal", "meta", "orçamento", "deficit", "superavit", "ldo", "receita", "despesa", "inss"},
	},
	{
		Name:     "mercado_capitais",
		Priority: PriorityMedium,
		Keywords: []string{"bolsa", "ações", "ibovespa", "investimento", "b3", "índice", "pontos"},
	},
	{
		Name:     "inflacao_juros",
		Priority: PriorityHigh,
		Keywords: []string{"inflação", "juros", "selic", "focus", "copom", "ipca", "igpm", "preços"},
	},
	{
		Name:     "commodities",
		Priority: PriorityMedium,
		Keywords: []string{"petróleo", "ouro", "soja", "minério", "commodity", "barril", "café", "agrícola"},
	},
	{
		Name:     "empresas_resultados",
		Priority: PriorityLow,
		Keywords: []string{"lucro", "receita", "resultado", "balanço", "trimestre", "earnings", "prejuízo", "demonstração"},
	},
}

// DefaultSection receives categories missing from SectionByCategory.
const DefaultSection = "principais_destaques"

// Sections are the newsletter sections in display order.
var Sections = []string{
	"principais_destaques",
	"mercado_hoje",
	"politicas_economicas",
	"cenario_internacional",
	"alerta_investidores",
}

// SectionByCategory routes classifier categories into newsletter sections.
var SectionByCategory = map[string]string{
	"tensao_geopolitica":  "cenario_internacional",
	"politica_fiscal":     "politicas_economicas",
	"mercado_capitais":    "mercado_hoje",
	"inflacao_juros":      "principais_destaques",
	"commodities":         "mercado_hoje",
	"empresas_resultados": "mercado_hoje",
}
