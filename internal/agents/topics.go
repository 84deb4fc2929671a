package agents

import (
	"fmt"
	"log/slog"

	"EconomyNewsletter/internal/domain"
)

const (
	maxMainPoints = 3
	briefLength   = 100
)

// MainPoint is a condensed news entry inside a topic.
type MainPoint struct {
	Headline  string `json:"headline"`
	Brief     string `json:"brief"`
	Relevance int    `json:"relevance"`
	URL       string `json:"url"`
}

// KeyDevelopment highlights the most relevant entry of a topic.
type KeyDevelopment struct {
	Headline   string `json:"headline"`
	Importance string `json:"importance"`
	Summary    string `json:"summary"`
}

// TopicSummary condenses one non-empty category.
type TopicSummary struct {
	Title           string           `json:"topic_title"`
	Category        string           `json:"category"`
	Priority        string           `json:"priority"`
	ImpactLevel     string           `json:"impact_level"`
	MainPoints      []MainPoint      `json:"main_points"`
	KeyDevelopments []KeyDevelopment `json:"key_developments"`
}

// Section is a newsletter section with its topics in creation order.
type Section struct {
	Name   string         `json:"name"`
	Topics []TopicSummary `json:"topics"`
}

// TopicStatistics aggregates the topic summaries.
type TopicStatistics struct {
	TotalTopics        int    `json:"total_topics"`
	HighImpactTopics   int    `json:"high_impact_topics"`
	NewsletterSections int    `json:"newsletter_sections"`
	LargestSection     string `json:"largest_section"`
}

// TopicDigest is the output of the topic summarizer.
type TopicDigest struct {
	Timestamp  string          `json:"timestamp"`
	Sections   []Section       `json:"newsletter_topics"`
	Statistics TopicStatistics `json:"topic_statistics"`
	Ready      bool            `json:"ready_for_newsletter"`
	Processed  int             `json:"processed_count"`
}

// ImpactLevel maps a relevance score onto the three impact tiers.
func ImpactLevel(score int) string {
	switch {
	case score >= 8:
		return ImpactHigh
	case score >= 4:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// TopicSummarizer turns standardized categories into newsletter topics.
type TopicSummarizer struct {
	base
	sections []string
	routes   map[string]string
}

// NewTopicSummarizer uses Sections and SectionByCategory.
func NewTopicSummarizer(logger *slog.Logger) *TopicSummarizer {
	return &TopicSummarizer{
		base:     newBase(StageTopics, logger),
		sections: Sections,
		routes:   SectionByCategory,
	}
}

// Process builds one topic per category with news and routes it to a section.
func (t *TopicSummarizer) Process(standardized StandardizedOutput) TopicDigest {
	t.info("summarizing topics")

	sections := make([]Section, len(t.sections))
	index := make(map[string]int, len(t.sections))
	for i, name := range t.sections {
		sections[i] = Section{Name: name, Topics: []TopicSummary{}}
		index[name] = i
	}

	for _, cat := range standardized.Categories {
		if cat.NewsCount == 0 {
			continue
		}
		target, ok := t.routes[cat.Key]
		if !ok {
			target = DefaultSection
		}
		i, ok := index[target]
		if !ok {
			i = index[DefaultSection]
		}
		sections[i].Topics = append(sections[i].Topics, buildTopic(cat))
	}

	stats := TopicStatistics{}
	largest := -1
	for _, sec := range sections {
		stats.TotalTopics += len(sec.Topics)
		if len(sec.Topics) > 0 {
			stats.NewsletterSections++
		}
		for _, topic := range sec.Topics {
			if topic.ImpactLevel == ImpactHigh {
				stats.HighImpactTopics++
			}
		}
		if len(sec.Topics) > largest {
			largest = len(sec.Topics)
			stats.LargestSection = sec.Name
		}
	}

	t.info("topics summarized", "topics", stats.TotalTopics)
	return TopicDigest{
		Timestamp:  t.timestamp(),
		Sections:   sections,
		Statistics: stats,
		Ready:      true,
		Processed:  stats.TotalTopics,
	}
}

func buildTopic(cat StandardizedCategory) TopicSummary {
	topic := TopicSummary{
		Title:           fmt.Sprintf("%s - %d notícias", cat.DisplayName, cat.NewsCount),
		Category:        cat.Key,
		Priority:        cat.Priority,
		ImpactLevel:     ImpactLevel(cat.RelevanceScore),
		MainPoints:      []MainPoint{},
		KeyDevelopments: []KeyDevelopment{},
	}

	for i, item := range cat.Items {
		if i == maxMainPoints {
			break
		}
		topic.MainPoints = append(topic.MainPoints, MainPoint{
			Headline:  item.Title,
			Brief:     domain.Prefix(item.Summary, briefLength) + domain.Ellipsis,
			Relevance: item.RelevanceScore,
			URL:       item.URL,
		})
	}

	if len(cat.Items) > 0 {
		top := cat.Items[0]
		importance := PriorityMedium
		if cat.Priority == PriorityHigh {
			importance = PriorityHigh
		}
		topic.KeyDevelopments = append(topic.KeyDevelopments, KeyDevelopment{
			Headline:   top.Title,
			Importance: importance,
			Summary:    top.Summary,
		})
	}

	return topic
}
