package domain

import (
	"strings"
	"time"
)

const (
	// DefaultURL replaces a missing article link.
	DefaultURL = "#"
	// TimestampLayout is the ISO-like layout used for article and stage timestamps.
	TimestampLayout = "2006-01-02T15:04:05"
)

// Article is a scraped news item. Stages treat it as read-only.
type Article struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	URL       string  `json:"url"`
	Timestamp string  `json:"timestamp"`
	Category  string  `json:"category,omitempty"`
	Source    string  `json:"source,omitempty"`
	Sentiment float64 `json:"sentiment,omitempty"`
}

// Text returns the lower-cased title and content used by keyword matching.
// The two fields are joined with the given separator.
func (a Article) Text(sep string) string {
	return strings.ToLower(a.Title + sep + a.Content)
}

// WithDefaults fills optional fields that the scraper may have left empty.
func (a Article) WithDefaults(now time.Time) Article {
	if a.URL == "" {
		a.URL = DefaultURL
	}
	if a.Timestamp == "" {
		a.Timestamp = now.Format(TimestampLayout)
	}
	return a
}

// NormalizeArticles applies WithDefaults to a batch, returning a new slice.
func NormalizeArticles(articles []Article, now time.Time) []Article {
	out := make([]Article, len(articles))
	for i, art := range articles {
		out[i] = art.WithDefaults(now)
	}
	return out
}

// StoredArticle is the persisted form of an article in the append-only store.
type StoredArticle struct {
	Article
	CollectedAt time.Time
}
