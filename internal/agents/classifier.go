package agents

import (
	"log/slog"
	"sort"

	"EconomyNewsletter/internal/domain"
)

const topClassifiedCategories = 3

// MatchedItem is one article's hit on a category.
type MatchedItem struct {
	Article     domain.Article `json:"news"`
	Score       int            `json:"relevance_score"`
	SourceTheme string         `json:"original_theme"`
}

// CategoryRecord collects every article matching a category.
type CategoryRecord struct {
	Name           string        `json:"category"`
	Priority       string        `json:"priority"`
	RelevanceScore int           `json:"relevance_score"`
	Items          []MatchedItem `json:"news"`
}

// CategoryScore pairs a category with its aggregate score.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// Classification is the output of the news classifier.
type Classification struct {
	Timestamp         string           `json:"timestamp"`
	Categories        []CategoryRecord `json:"classified_categories"`
	Distribution      map[string]int   `json:"category_distribution"`
	HighPriorityCount int              `json:"high_priority_count"`
	TopCategories     []CategoryScore  `json:"top_categories"`
	Processed         int              `json:"processed_count"`
}

// Category looks up a record by name.
func (c Classification) Category(name string) (CategoryRecord, bool) {
	for _, rec := range c.Categories {
		if rec.Name == name {
			return rec, true
		}
	}
	return CategoryRecord{}, false
}

// NewsClassifier scores articles against weighted category keyword sets.
// An article may match any number of categories.
type NewsClassifier struct {
	base
	rules []CategoryRule
}

// NewNewsClassifier uses CategoryRules.
func NewNewsClassifier(logger *slog.Logger) *NewsClassifier {
	return &NewsClassifier{base: newBase(StageClassifier, logger), rules: CategoryRules}
}

// Process classifies the themed articles. Every configured category is
// present in the result, matched or not.
func (c *NewsClassifier) Process(themes ThemeSummary) Classification {
	c.info("classifying news")

	records := make([]CategoryRecord, len(c.rules))
	for i, rule := range c.rules {
		records[i] = CategoryRecord{Name: rule.Name, Priority: rule.Priority, Items: []MatchedItem{}}
	}

	for _, bucket := range themes.Buckets {
		for _, art := range bucket.Articles {
			text := art.Text(" ")
			for i, rule := range c.rules {
				hits := countMatches(text, rule.Keywords)
				if hits == 0 {
					continue
				}
				records[i].Items = append(records[i].Items, MatchedItem{
					Article:     art,
					Score:       hits,
					SourceTheme: bucket.Name,
				})
				records[i].RelevanceScore += hits
			}
		}
	}

	distribution := make(map[string]int, len(records))
	highPriority, matched := 0, 0
	var ranked []CategoryScore
	for _, rec := range records {
		distribution[rec.Name] = len(rec.Items)
		matched += len(rec.Items)
		if rec.Priority == PriorityHigh {
			highPriority += len(rec.Items)
		}
		if len(rec.Items) > 0 {
			ranked = append(ranked, CategoryScore{Category: rec.Name, Score: rec.RelevanceScore})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > topClassifiedCategories {
		ranked = ranked[:topClassifiedCategories]
	}
	if ranked == nil {
		ranked = []CategoryScore{}
	}

	c.info("news classified", "categories", len(records), "matches", matched)
	return Classification{
		Timestamp:         c.timestamp(),
		Categories:        records,
		Distribution:      distribution,
		HighPriorityCount: highPriority,
		TopCategories:     ranked,
		Processed:         matched,
	}
}
