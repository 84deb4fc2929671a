package agents

import (
	"log/slog"
	"sort"
	"time"

	"EconomyNewsletter/internal/domain"
)

const (
	maxItemsPerCategory = 5
	summaryLength       = 200
	outputVersion       = "1.0"
	missingTitle        = "Título não disponível"
)

// StandardizedItem is the uniform shape of one news entry.
type StandardizedItem struct {
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	RelevanceScore int    `json:"relevance_score"`
	SourceTheme    string `json:"source_theme"`
	URL            string `json:"url"`
	Timestamp      string `json:"timestamp"`
}

// StandardizedCategory is a category record reshaped for display.
type StandardizedCategory struct {
	Key            string             `json:"key"`
	DisplayName    string             `json:"category_name"`
	Priority       string             `json:"priority_level"`
	RelevanceScore int                `json:"relevance_score"`
	NewsCount      int                `json:"news_count"`
	Items          []StandardizedItem `json:"news_items"`
}

// OutputMetadata describes a standardized document.
type OutputMetadata struct {
	Timestamp       string `json:"timestamp"`
	ProcessingDate  string `json:"processing_date"`
	Version         string `json:"version"`
	TotalCategories int    `json:"total_categories"`
}

// OutputStatistics aggregates the standardized categories. TotalNews counts
// an article once per category it matched.
type OutputStatistics struct {
	TotalNews              int     `json:"total_news_processed"`
	HighPriorityCategories int     `json:"high_priority_categories"`
	TopCategory            string  `json:"top_category,omitempty"`
	ProcessingTimeMs       float64 `json:"processing_time_ms"`
}

// StandardizedOutput is the output of the response standardizer.
type StandardizedOutput struct {
	Metadata   OutputMetadata         `json:"metadata"`
	Categories []StandardizedCategory `json:"content"`
	Statistics OutputStatistics       `json:"statistics"`
	Processed  int                    `json:"processed_count"`
}

// Standardizer reshapes classifier output into uniform category records.
type Standardizer struct {
	base
}

// NewStandardizer builds the stage.
func NewStandardizer(logger *slog.Logger) *Standardizer {
	return &Standardizer{base: newBase(StageStandardizer, logger)}
}

// Process keeps the top items of each category by score and truncates summaries.
func (s *Standardizer) Process(classified Classification) StandardizedOutput {
	s.info("standardizing output")
	started := s.now()

	categories := make([]StandardizedCategory, 0, len(classified.Categories))
	for _, rec := range classified.Categories {
		categories = append(categories, s.standardize(rec, started))
	}

	stats := OutputStatistics{}
	topScore := -1
	for _, cat := range categories {
		stats.TotalNews += cat.NewsCount
		if cat.Priority == PriorityHigh {
			stats.HighPriorityCategories++
		}
		if cat.RelevanceScore > topScore {
			topScore = cat.RelevanceScore
			stats.TopCategory = cat.Key
		}
	}
	// Diagnostic only: measured from the start of this call.
	stats.ProcessingTimeMs = float64(s.now().Sub(started).Microseconds()) / 1000

	s.info("output standardized", "news", stats.TotalNews)
	return StandardizedOutput{
		Metadata: OutputMetadata{
			Timestamp:       started.Format(domain.TimestampLayout),
			ProcessingDate:  started.Format("2006-01-02"),
			Version:         outputVersion,
			TotalCategories: len(categories),
		},
		Categories: categories,
		Statistics: stats,
		Processed:  stats.TotalNews,
	}
}

func (s *Standardizer) standardize(rec CategoryRecord, now time.Time) StandardizedCategory {
	priority := rec.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	sorted := make([]MatchedItem, len(rec.Items))
	copy(sorted, rec.Items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > maxItemsPerCategory {
		sorted = sorted[:maxItemsPerCategory]
	}

	items := make([]StandardizedItem, 0, len(sorted))
	for _, m := range sorted {
		title := m.Article.Title
		if title == "" {
			title = missingTitle
		}
		theme := m.SourceTheme
		if theme == "" {
			theme = DefaultTheme
		}
		url := m.Article.URL
		if url == "" {
			url = domain.DefaultURL
		}
		ts := m.Article.Timestamp
		if ts == "" {
			ts = now.Format(domain.TimestampLayout)
		}
		items = append(items, StandardizedItem{
			Title:          title,
			Summary:        domain.Truncate(m.Article.Content, summaryLength),
			RelevanceScore: m.Score,
			SourceTheme:    theme,
			URL:            url,
			Timestamp:      ts,
		})
	}

	return StandardizedCategory{
		Key:            rec.Name,
		DisplayName:    domain.DisplayName(rec.Name),
		Priority:       priority,
		RelevanceScore: rec.RelevanceScore,
		NewsCount:      len(rec.Items),
		Items:          items,
	}
}
