package agents

import (
	"log/slog"
	"strings"

	"EconomyNewsletter/internal/domain"
)

// ThemeBucket groups the articles assigned to one theme, in input order.
type ThemeBucket struct {
	Name     string           `json:"name"`
	Articles []domain.Article `json:"articles"`
}

// ThemeSummary is the output of the theme bucketer.
type ThemeSummary struct {
	Timestamp    string         `json:"timestamp"`
	TotalNews    int            `json:"total_news"`
	Distribution map[string]int `json:"themes_distribution"`
	Buckets      []ThemeBucket  `json:"main_themes"`
	Processed    int            `json:"processed_count"`
}

// Bucket returns the named bucket's articles.
func (s ThemeSummary) Bucket(name string) []domain.Article {
	for _, b := range s.Buckets {
		if b.Name == name {
			return b.Articles
		}
	}
	return nil
}

// ThemeBucketer assigns each article to exactly one coarse theme.
type ThemeBucketer struct {
	base
	rules []KeywordRule
}

// NewThemeBucketer uses ThemeRules.
func NewThemeBucketer(logger *slog.Logger) *ThemeBucketer {
	return &ThemeBucketer{base: newBase(StageThemes, logger), rules: ThemeRules}
}

// Process buckets the articles. The first rule with any keyword hit wins;
// articles matching nothing land in DefaultTheme.
func (t *ThemeBucketer) Process(articles []domain.Article) ThemeSummary {
	t.info("bucketing themes", "articles", len(articles))

	buckets := make([]ThemeBucket, 0, len(t.rules)+1)
	index := make(map[string]int, len(t.rules)+1)
	for _, rule := range t.rules {
		index[rule.Name] = len(buckets)
		buckets = append(buckets, ThemeBucket{Name: rule.Name, Articles: []domain.Article{}})
	}
	index[DefaultTheme] = len(buckets)
	buckets = append(buckets, ThemeBucket{Name: DefaultTheme, Articles: []domain.Article{}})

	for _, art := range articles {
		name := t.match(art.Text(""))
		i := index[name]
		buckets[i].Articles = append(buckets[i].Articles, art)
	}

	distribution := make(map[string]int, len(buckets))
	for _, b := range buckets {
		distribution[b.Name] = len(b.Articles)
	}

	t.info("themes bucketed", "articles", len(articles), "themes", len(buckets))
	return ThemeSummary{
		Timestamp:    t.timestamp(),
		TotalNews:    len(articles),
		Distribution: distribution,
		Buckets:      buckets,
		Processed:    len(articles),
	}
}

func (t *ThemeBucketer) match(text string) string {
	for _, rule := range t.rules {
		if containsAny(text, rule.Keywords) {
			return rule.Name
		}
	}
	return DefaultTheme
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
