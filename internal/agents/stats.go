// Package agents holds the seven newsletter stages. Each stage is a pure
// transform over the previous stage's output plus its own static tables and
// reports how many items it handled through the Processed field of its result.
package agents

import (
	"log/slog"
	"time"

	"EconomyNewsletter/internal/domain"
)

// Stage identifies a pipeline step.
type Stage string

const (
	StageThemes       Stage = "theme_summarizer"
	StageEntities     Stage = "entity_extractor"
	StageClassifier   Stage = "news_classifier"
	StageStandardizer Stage = "response_standardizer"
	StageTopics       Stage = "topic_summarizer"
	StageValidator    Stage = "content_validator"
	StagePredictor    Stage = "temporal_predictor"
)

// Stages lists every step in execution order.
var Stages = []Stage{
	StageThemes,
	StageEntities,
	StageClassifier,
	StageStandardizer,
	StageTopics,
	StageValidator,
	StagePredictor,
}

// Counters accumulates processed-item counts for a single run.
// A fresh value must be used per run; it is not safe for concurrent use.
type Counters struct {
	counts map[Stage]int
}

// NewCounters returns a zeroed counter set covering every stage.
func NewCounters() *Counters {
	counts := make(map[Stage]int, len(Stages))
	for _, s := range Stages {
		counts[s] = 0
	}
	return &Counters{counts: counts}
}

// Add increases the counter for stage. Negative deltas are ignored so the
// counters never decrease.
func (c *Counters) Add(stage Stage, n int) {
	if n <= 0 {
		return
	}
	if c.counts == nil {
		c.counts = map[Stage]int{}
	}
	c.counts[stage] += n
}

// Get returns the current count for stage.
func (c *Counters) Get(stage Stage) int {
	return c.counts[stage]
}

// Total sums every stage counter.
func (c *Counters) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Snapshot copies the counters into a JSON-friendly map.
func (c *Counters) Snapshot() map[string]int {
	out := make(map[string]int, len(c.counts))
	for stage, n := range c.counts {
		out[string(stage)] = n
	}
	return out
}

type base struct {
	stage  Stage
	logger *slog.Logger
	now    func() time.Time
}

func newBase(stage Stage, logger *slog.Logger) base {
	return base{stage: stage, logger: logger, now: time.Now}
}

func (b base) timestamp() string {
	return b.now().Format(domain.TimestampLayout)
}

func (b base) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, append([]any{"stage", string(b.stage)}, args...)...)
	}
}
