package agents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EconomyNewsletter/internal/domain"
)

func standardized(key, priority string, score int, summaries ...string) StandardizedCategory {
	items := make([]StandardizedItem, 0, len(summaries))
	for i, s := range summaries {
		items = append(items, StandardizedItem{
			Title:          "Manchete " + string(rune('A'+i)),
			Summary:        s,
			RelevanceScore: score - i,
			URL:            domain.DefaultURL,
		})
	}
	return StandardizedCategory{
		Key:            key,
		DisplayName:    domain.DisplayName(key),
		Priority:       priority,
		RelevanceScore: score,
		NewsCount:      len(items),
		Items:          items,
	}
}

func TestImpactLevelThresholds(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0: ImpactLow, 3: ImpactLow,
		4: ImpactMedium, 7: ImpactMedium,
		8: ImpactHigh, 20: ImpactHigh,
	}
	for score, want := range cases {
		assert.Equal(t, want, ImpactLevel(score), "score %d", score)
	}
}

func TestTopicSummarizerBuildsTopics(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)
	digest := NewTopicSummarizer(nil).Process(StandardizedOutput{Categories: []StandardizedCategory{
		standardized("tensao_geopolitica", PriorityHigh, 9, long, "dois", "três", "quatro"),
		standardized("commodities", PriorityMedium, 2, "soja em alta"),
		{Key: "empresas_resultados", Priority: PriorityLow, Items: []StandardizedItem{}},
	}})

	intl := digest.Sections[3]
	require.Equal(t, "cenario_internacional", intl.Name)
	require.Len(t, intl.Topics, 1)

	topic := intl.Topics[0]
	assert.Equal(t, "Tensao Geopolitica - 4 notícias", topic.Title)
	assert.Equal(t, ImpactHigh, topic.ImpactLevel)
	require.Len(t, topic.MainPoints, maxMainPoints)
	assert.Equal(t, strings.Repeat("x", briefLength)+domain.Ellipsis, topic.MainPoints[0].Brief)
	assert.Equal(t, "dois"+domain.Ellipsis, topic.MainPoints[1].Brief)
	require.Len(t, topic.KeyDevelopments, 1)
	assert.Equal(t, PriorityHigh, topic.KeyDevelopments[0].Importance)
	assert.Equal(t, long, topic.KeyDevelopments[0].Summary)

	market := digest.Sections[1]
	require.Equal(t, "mercado_hoje", market.Name)
	require.Len(t, market.Topics, 1)
	assert.Equal(t, PriorityMedium, market.Topics[0].KeyDevelopments[0].Importance)
	assert.Equal(t, ImpactLow, market.Topics[0].ImpactLevel)

	assert.Equal(t, 2, digest.Statistics.TotalTopics)
	assert.Equal(t, 1, digest.Statistics.HighImpactTopics)
	assert.Equal(t, 2, digest.Statistics.NewsletterSections)
	assert.Equal(t, "mercado_hoje", digest.Statistics.LargestSection)
	assert.True(t, digest.Ready)
	assert.Equal(t, 2, digest.Processed)
}

func TestTopicSummarizerUnmappedCategoryGoesToDefaultSection(t *testing.T) {
	t.Parallel()

	digest := NewTopicSummarizer(nil).Process(StandardizedOutput{Categories: []StandardizedCategory{
		standardized("criptomoedas", PriorityLow, 1, "bitcoin sobe"),
	}})

	require.Equal(t, DefaultSection, digest.Sections[0].Name)
	require.Len(t, digest.Sections[0].Topics, 1)
	assert.Equal(t, "criptomoedas", digest.Sections[0].Topics[0].Category)
}

func TestTopicSummarizerEmptyInput(t *testing.T) {
	t.Parallel()

	digest := NewTopicSummarizer(nil).Process(StandardizedOutput{})

	require.Len(t, digest.Sections, len(Sections))
	for _, sec := range digest.Sections {
		assert.NotNil(t, sec.Topics)
		assert.Empty(t, sec.Topics)
	}
	assert.Zero(t, digest.Statistics.TotalTopics)
	assert.Equal(t, Sections[0], digest.Statistics.LargestSection)
}
