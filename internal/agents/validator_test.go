package agents

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodTopic(n int) TopicSummary {
	return TopicSummary{
		Title:      fmt.Sprintf("Tópico aprovado %d", n),
		MainPoints: []MainPoint{{Headline: "h", Brief: "um resumo longo o bastante..."}},
	}
}

func badTopic() TopicSummary {
	return TopicSummary{Title: "Curto", MainPoints: []MainPoint{}}
}

func digestOf(approved, rejected int) TopicDigest {
	topics := make([]TopicSummary, 0, approved+rejected)
	for i := 0; i < approved; i++ {
		topics = append(topics, goodTopic(i))
	}
	for i := 0; i < rejected; i++ {
		topics = append(topics, badTopic())
	}
	return TopicDigest{Sections: []Section{{Name: "mercado_hoje", Topics: topics}}}
}

func TestValidateTopicRules(t *testing.T) {
	t.Parallel()

	check := ValidateTopic(TopicSummary{
		Title: "Título válido",
		MainPoints: []MainPoint{
			{Brief: "resumo curto..."},
			{Brief: "um resumo com tamanho suficiente"},
		},
	})
	assert.True(t, check.Approved)
	assert.Equal(t, titleScore+2*pointScore-shallowPenalty, check.QualityScore)
	assert.Equal(t, []string{IssueShallowBrief}, check.Issues)

	check = ValidateTopic(badTopic())
	assert.False(t, check.Approved)
	assert.Equal(t, []string{IssueShortTitle, IssueNoMainPoints}, check.Issues)
	assert.Zero(t, check.QualityScore)
}

func TestValidateTopicScoreCapped(t *testing.T) {
	t.Parallel()

	points := make([]MainPoint, 7)
	for i := range points {
		points[i] = MainPoint{Brief: "um resumo com tamanho suficiente"}
	}
	check := ValidateTopic(TopicSummary{Title: "Título válido", MainPoints: points})

	assert.Equal(t, maxQualityScore, check.QualityScore)
}

func TestNeedsRevisionBoundary(t *testing.T) {
	t.Parallel()

	assert.False(t, NeedsRevision(7, 10))
	assert.True(t, NeedsRevision(6, 10))
	assert.False(t, NeedsRevision(0, 0))
	assert.True(t, NeedsRevision(0, 1))
	assert.False(t, NeedsRevision(3, 3))
}

func TestContentValidatorGate(t *testing.T) {
	t.Parallel()

	v := NewContentValidator(nil)

	passing := v.Process(digestOf(7, 3))
	assert.Equal(t, QualityApproved, passing.OverallQuality)
	assert.NotContains(t, passing.Recommendations, RecommendationLowApproval)
	assert.Equal(t, 10, passing.TotalTopics)
	assert.Equal(t, 7, passing.TotalApproved)

	failing := v.Process(digestOf(6, 4))
	assert.Equal(t, QualityNeedsRevision, failing.OverallQuality)
	require.NotEmpty(t, failing.Recommendations)
	assert.Equal(t, RecommendationLowApproval, failing.Recommendations[0])
}

func TestContentValidatorSectionChecks(t *testing.T) {
	t.Parallel()

	result := NewContentValidator(nil).Process(TopicDigest{Sections: []Section{
		{Name: "principais_destaques", Topics: []TopicSummary{goodTopic(1), badTopic()}},
		{Name: "alerta_investidores", Topics: []TopicSummary{badTopic()}},
		{Name: "cenario_internacional", Topics: []TopicSummary{}},
	}})

	require.Len(t, result.Checks, 3)
	first := result.Checks[0]
	assert.Equal(t, 2, first.TopicsCount)
	assert.Equal(t, 1, first.ApprovedCount)
	assert.InDelta(t, float64(titleScore+pointScore), first.QualityScore, 1e-9)
	assert.Equal(t, []string{IssueShortTitle, IssueNoMainPoints}, first.Issues)

	assert.Zero(t, result.Checks[1].QualityScore)
	assert.Zero(t, result.Checks[2].QualityScore)

	assert.Len(t, result.ApprovedTopics("principais_destaques"), 1)
	require.Len(t, result.Verdicts[1].Rejected, 1)
	assert.Equal(t, []string{IssueShortTitle, IssueNoMainPoints}, result.Verdicts[1].Rejected[0].Reasons)

	assert.Equal(t, []string{
		RecommendationLowApproval,
		`Seção "principais_destaques" precisa de mais conteúdo de qualidade`,
		`Seção "alerta_investidores" precisa de mais conteúdo de qualidade`,
		`Seção "alerta_investidores" não tem tópicos aprovados - considerar remover`,
	}, result.Recommendations)
}

func TestContentValidatorEmptyDigest(t *testing.T) {
	t.Parallel()

	result := NewContentValidator(nil).Process(TopicDigest{})

	assert.Equal(t, QualityApproved, result.OverallQuality)
	assert.Empty(t, result.Recommendations)
	assert.NotNil(t, result.Recommendations)
}
