package agents

import (
	"fmt"
	"log/slog"
)

const (
	minTitleLength  = 10
	minBriefLength  = 20
	titleScore      = 20
	pointScore      = 15
	shallowPenalty  = 10
	maxQualityScore = 100
	lowQualityScore = 50

	// approvalNumerator/approvalDenominator is the minimum approval rate (70%).
	approvalNumerator   = 7
	approvalDenominator = 10
)

// Issue texts attached to topics and sections.
const (
	IssueShortTitle   = "Título muito curto"
	IssueNoMainPoints = "Nenhum ponto principal encontrado"
	IssueShallowBrief = "Resumo muito superficial"

	RecommendationLowApproval = "Menos de 70% dos tópicos foram aprovados - revisar critérios"
)

// TopicCheck is the verdict for a single topic.
type TopicCheck struct {
	Approved     bool     `json:"approved"`
	QualityScore int      `json:"quality_score"`
	Issues       []string `json:"issues"`
}

// SectionCheck aggregates the verdicts of one section.
// QualityScore averages approved topics only and is 0 when none were approved.
type SectionCheck struct {
	Section       string   `json:"section"`
	TopicsCount   int      `json:"topics_count"`
	ApprovedCount int      `json:"approved_count"`
	QualityScore  float64  `json:"quality_score"`
	Issues        []string `json:"issues_found"`
}

// RejectedTopic keeps a topic with the reasons it failed.
type RejectedTopic struct {
	Topic   TopicSummary `json:"topic"`
	Reasons []string     `json:"rejection_reasons"`
}

// SectionVerdict splits a section's topics by outcome.
type SectionVerdict struct {
	Section  string          `json:"section"`
	Approved []TopicSummary  `json:"approved"`
	Rejected []RejectedTopic `json:"rejected"`
}

// Validation is the output of the content validator.
type Validation struct {
	OverallQuality  string           `json:"overall_quality"`
	Checks          []SectionCheck   `json:"validation_checks"`
	Verdicts        []SectionVerdict `json:"topics"`
	Recommendations []string         `json:"recommendations"`
	TotalTopics     int              `json:"total_topics"`
	TotalApproved   int              `json:"total_approved"`
	Processed       int              `json:"processed_count"`
}

// ApprovedTopics returns the approved topics of a section.
func (v Validation) ApprovedTopics(section string) []TopicSummary {
	for _, verdict := range v.Verdicts {
		if verdict.Section == section {
			return verdict.Approved
		}
	}
	return nil
}

// ContentValidator approves or rejects topics and gates overall quality.
type ContentValidator struct {
	base
}

// NewContentValidator builds the stage.
func NewContentValidator(logger *slog.Logger) *ContentValidator {
	return &ContentValidator{base: newBase(StageValidator, logger)}
}

// Process validates every topic of every section.
func (c *ContentValidator) Process(digest TopicDigest) Validation {
	c.info("validating content")

	result := Validation{
		OverallQuality:  QualityApproved,
		Checks:          make([]SectionCheck, 0, len(digest.Sections)),
		Verdicts:        make([]SectionVerdict, 0, len(digest.Sections)),
		Recommendations: []string{},
	}

	for _, sec := range digest.Sections {
		check := SectionCheck{Section: sec.Name, TopicsCount: len(sec.Topics), Issues: []string{}}
		verdict := SectionVerdict{Section: sec.Name, Approved: []TopicSummary{}, Rejected: []RejectedTopic{}}

		scoreSum := 0
		for _, topic := range sec.Topics {
			tc := ValidateTopic(topic)
			if tc.Approved {
				verdict.Approved = append(verdict.Approved, topic)
				check.ApprovedCount++
				scoreSum += tc.QualityScore
				continue
			}
			verdict.Rejected = append(verdict.Rejected, RejectedTopic{Topic: topic, Reasons: tc.Issues})
			check.Issues = append(check.Issues, tc.Issues...)
		}
		if check.ApprovedCount > 0 {
			check.QualityScore = float64(scoreSum) / float64(check.ApprovedCount)
		}

		result.TotalTopics += check.TopicsCount
		result.TotalApproved += check.ApprovedCount
		result.Checks = append(result.Checks, check)
		result.Verdicts = append(result.Verdicts, verdict)
	}

	if NeedsRevision(result.TotalApproved, result.TotalTopics) {
		result.OverallQuality = QualityNeedsRevision
		result.Recommendations = append(result.Recommendations, RecommendationLowApproval)
	}
	result.Recommendations = append(result.Recommendations, recommendations(result.Checks)...)
	result.Processed = result.TotalTopics

	c.info("content validated", "topics", result.TotalTopics, "approved", result.TotalApproved,
		"quality", result.OverallQuality)
	return result
}

// NeedsRevision reports whether fewer than 70% of the topics were approved.
// An empty topic set never needs revision.
func NeedsRevision(approved, total int) bool {
	if total <= 0 {
		return false
	}
	return approved*approvalDenominator < total*approvalNumerator
}

// ValidateTopic scores a single topic. Short briefs lower the score but do
// not reject the topic.
func ValidateTopic(topic TopicSummary) TopicCheck {
	check := TopicCheck{Approved: true, Issues: []string{}}

	if len([]rune(topic.Title)) < minTitleLength {
		check.Issues = append(check.Issues, IssueShortTitle)
		check.Approved = false
	} else {
		check.QualityScore += titleScore
	}

	if len(topic.MainPoints) == 0 {
		check.Issues = append(check.Issues, IssueNoMainPoints)
		check.Approved = false
	} else {
		check.QualityScore += len(topic.MainPoints) * pointScore
	}

	for _, point := range topic.MainPoints {
		if len([]rune(point.Brief)) < minBriefLength {
			check.Issues = append(check.Issues, IssueShallowBrief)
			check.QualityScore -= shallowPenalty
		}
	}

	if check.QualityScore > maxQualityScore {
		check.QualityScore = maxQualityScore
	}
	return check
}

func recommendations(checks []SectionCheck) []string {
	var out []string
	for _, check := range checks {
		if check.TopicsCount == 0 {
			continue
		}
		if check.QualityScore < lowQualityScore {
			out = append(out, fmt.Sprintf("Seção %q precisa de mais conteúdo de qualidade", check.Section))
		}
		if check.ApprovedCount == 0 {
			out = append(out, fmt.Sprintf("Seção %q não tem tópicos aprovados - considerar remover", check.Section))
		}
	}
	return out
}
