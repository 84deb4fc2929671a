package agents

import (
	"log/slog"
	"regexp"
	"strings"

	"EconomyNewsletter/internal/domain"
)

const topEntities = 5

var (
	moneyExpr = regexp.MustCompile(`r\$\s*[\d.,]+(?:\s*(?:milhões?|bilhões?|trilhões?))?`)
	dateExpr  = regexp.MustCompile(`\d{1,2}\s+de\s+(?:janeiro|fevereiro|março|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\s+de\s+\d{4}`)
)

// Entities holds everything the extractor found across all buckets.
type Entities struct {
	Companies []string `json:"companies"`
	People    []string `json:"people"`
	Locations []string `json:"locations"`
	Values    []string `json:"values"`
	Dates     []string `json:"dates"`
}

// EntityCount mirrors Entities with lengths.
type EntityCount struct {
	Companies int `json:"companies"`
	People    int `json:"people"`
	Locations int `json:"locations"`
	Values    int `json:"values"`
	Dates     int `json:"dates"`
}

// Total sums all entity kinds.
func (c EntityCount) Total() int {
	return c.Companies + c.People + c.Locations + c.Values + c.Dates
}

// TopEntities previews the first few names of each gazetteer kind.
type TopEntities struct {
	Companies []string `json:"companies"`
	People    []string `json:"people"`
	Locations []string `json:"locations"`
}

// EntityReport is the output of the entity extractor.
type EntityReport struct {
	Timestamp string      `json:"timestamp"`
	Entities  Entities    `json:"entities"`
	Count     EntityCount `json:"entity_count"`
	Top       TopEntities `json:"top_entities"`
	Processed int         `json:"processed_count"`
}

// orderedSet deduplicates while keeping first-insertion order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

// EntityExtractor scans themed articles against static gazetteers and
// currency/date patterns.
type EntityExtractor struct {
	base
	companies []string
	people    []string
	locations []string
}

// NewEntityExtractor uses the package gazetteers.
func NewEntityExtractor(logger *slog.Logger) *EntityExtractor {
	return &EntityExtractor{
		base:      newBase(StageEntities, logger),
		companies: KnownCompanies,
		people:    KnownPeople,
		locations: KnownLocations,
	}
}

// Process extracts entities from every article of every bucket.
func (e *EntityExtractor) Process(themes ThemeSummary) EntityReport {
	e.info("extracting entities")

	companies, people, locations := newOrderedSet(), newOrderedSet(), newOrderedSet()
	values, dates := []string{}, []string{}
	processed := 0

	for _, bucket := range themes.Buckets {
		for _, art := range bucket.Articles {
			processed++
			text := art.Text(" ")

			collectNames(companies, text, e.companies)
			collectNames(people, text, e.people)
			collectNames(locations, text, e.locations)

			values = append(values, moneyExpr.FindAllString(text, -1)...)
			dates = append(dates, dateExpr.FindAllString(text, -1)...)
		}
	}

	ents := Entities{
		Companies: companies.items,
		People:    people.items,
		Locations: locations.items,
		Values:    values,
		Dates:     dates,
	}
	report := EntityReport{
		Timestamp: e.timestamp(),
		Entities:  ents,
		Count: EntityCount{
			Companies: len(ents.Companies),
			People:    len(ents.People),
			Locations: len(ents.Locations),
			Values:    len(ents.Values),
			Dates:     len(ents.Dates),
		},
		Top: TopEntities{
			Companies: head(ents.Companies, topEntities),
			People:    head(ents.People, topEntities),
			Locations: head(ents.Locations, topEntities),
		},
		Processed: processed,
	}

	e.info("entities extracted", "total", report.Count.Total())
	return report
}

func collectNames(set *orderedSet, text string, names []string) {
	for _, name := range names {
		if strings.Contains(text, name) {
			set.add(domain.TitleCase(name))
		}
	}
}

func head(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}
