package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"EconomyNewsletter/internal/agents"
	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/ports"
	"EconomyNewsletter/internal/render"
)

// Run outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ErrNoArticles is reported when the source yields nothing to process.
var ErrNoArticles = errors.New("Nenhuma notícia encontrada")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Repository ports.ArticleRepository
	Publisher  ports.NewsletterPublisher
	Notifier   ports.Notifier
	Logger     *slog.Logger
	Clock      func() time.Time
}

// PipelineData carries every intermediate stage output of a successful run.
type PipelineData struct {
	Themes          agents.ThemeSummary       `json:"themes"`
	Entities        agents.EntityReport       `json:"entities"`
	Classifications agents.Classification     `json:"classifications"`
	Standardized    agents.StandardizedOutput `json:"standardized"`
	Topics          agents.TopicDigest        `json:"topics"`
	Validation      agents.Validation         `json:"validation"`
	Predictions     agents.Forecast           `json:"predictions"`
}

// Stats summarizes a successful run.
type Stats struct {
	Timestamp             string         `json:"timestamp"`
	NewsProcessed         int            `json:"news_processed"`
	TotalEntities         int            `json:"total_entities"`
	TopicsCreated         int            `json:"topics_created"`
	TopicsApproved        int            `json:"topics_approved"`
	PredictionsConfidence float64        `json:"predictions_confidence"`
	StageCounts           map[string]int `json:"stage_counts"`
}

// Result is what a run hands back to callers. Failed results carry only
// the status, run id and error message.
type Result struct {
	Status     string        `json:"status"`
	RunID      string        `json:"run_id"`
	Error      string        `json:"error,omitempty"`
	Stats      *Stats        `json:"stats,omitempty"`
	Newsletter string        `json:"newsletter,omitempty"`
	Data       *PipelineData `json:"pipeline_data,omitempty"`
}

// Pipeline implements the seven-stage newsletter workflow.
type Pipeline struct {
	source     ports.ArticleSource
	repository ports.ArticleRepository
	publisher  ports.NewsletterPublisher
	notifier   ports.Notifier
	logger     *slog.Logger
	clock      func() time.Time

	themes       *agents.ThemeBucketer
	entities     *agents.EntityExtractor
	classifier   *agents.NewsClassifier
	standardizer *agents.Standardizer
	topics       *agents.TopicSummarizer
	validator    *agents.ContentValidator
	predictor    *agents.TemporalPredictor
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		publisher:  deps.Publisher,
		notifier:   deps.Notifier,
		logger:     logger,
		clock:      clock,

		themes:       agents.NewThemeBucketer(logger),
		entities:     agents.NewEntityExtractor(logger),
		classifier:   agents.NewNewsClassifier(logger),
		standardizer: agents.NewStandardizer(logger),
		topics:       agents.NewTopicSummarizer(logger),
		validator:    agents.NewContentValidator(logger),
		predictor:    agents.NewTemporalPredictor(logger),
	}
}

// ProcessDay fetches the day's articles, stores them and runs the pipeline.
// A panic while fetching or storing is reported as a failed Result.
func (p *Pipeline) ProcessDay(ctx context.Context, day time.Time) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("daily run panicked", "panic", r)
			result = failed(uuid.NewString(), fmt.Errorf("panic: %v", r))
		}
	}()

	if p.source == nil {
		return failed(uuid.NewString(), errors.New("article source is not configured"))
	}

	articles, err := p.source.FetchDaily(ctx, day)
	if err != nil {
		p.logger.Error("fetch daily failed", "error", err)
		return failed(uuid.NewString(), fmt.Errorf("fetch daily: %w", err))
	}
	if len(articles) == 0 {
		p.logger.Error("no articles fetched, pipeline interrupted")
		return failed(uuid.NewString(), ErrNoArticles)
	}

	p.persist(ctx, articles)
	return p.Run(ctx, articles)
}

// Run pushes a batch of articles through every stage. Errors and panics are
// converted into a failed Result; no partial stage data is exposed.
func (p *Pipeline) Run(ctx context.Context, articles []domain.Article) (result Result) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.Info("starting newsletter pipeline", "articles", len(articles))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panicked", "panic", r)
			result = failed(runID, fmt.Errorf("panic: %v", r))
		}
	}()

	now := p.clock()
	data, counters, err := p.process(ctx, domain.NormalizeArticles(articles, now))
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		return failed(runID, err)
	}

	html, err := render.Newsletter(data.Validation, data.Predictions, now)
	if err != nil {
		logger.Error("render newsletter failed", "error", err)
		return failed(runID, err)
	}

	var location string
	if p.publisher != nil {
		location, err = p.publisher.Publish(ctx, html, now)
		if err != nil {
			logger.Error("publish newsletter failed", "error", err)
		} else {
			logger.Info("newsletter saved", "path", location)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, buildDigestMessage(data)); err != nil {
			logger.Error("notify digest failed", "error", err)
		}
	}

	stats := &Stats{
		Timestamp:             now.Format(domain.TimestampLayout),
		NewsProcessed:         len(articles),
		TotalEntities:         data.Entities.Count.Total(),
		TopicsCreated:         data.Topics.Statistics.TotalTopics,
		TopicsApproved:        data.Validation.TotalApproved,
		PredictionsConfidence: data.Predictions.Predictions.Confidence.Overall,
		StageCounts:           counters.Snapshot(),
	}

	logger.Info("pipeline finished", "news_processed", stats.NewsProcessed,
		"topics_approved", stats.TopicsApproved, "processed_total", counters.Total())
	return Result{
		Status:     StatusSuccess,
		RunID:      runID,
		Stats:      stats,
		Newsletter: location,
		Data:       data,
	}
}

func (p *Pipeline) process(ctx context.Context, articles []domain.Article) (*PipelineData, *agents.Counters, error) {
	counters := agents.NewCounters()
	data := &PipelineData{}

	data.Themes = p.themes.Process(articles)
	counters.Add(agents.StageThemes, data.Themes.Processed)

	// Entity extraction and classification both read the themes only.
	var g errgroup.Group
	g.Go(func() error {
		return guard(func() { data.Entities = p.entities.Process(data.Themes) })
	})
	g.Go(func() error {
		return guard(func() { data.Classifications = p.classifier.Process(data.Themes) })
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	counters.Add(agents.StageEntities, data.Entities.Processed)
	counters.Add(agents.StageClassifier, data.Classifications.Processed)

	data.Standardized = p.standardizer.Process(data.Classifications)
	counters.Add(agents.StageStandardizer, data.Standardized.Processed)

	data.Topics = p.topics.Process(data.Standardized)
	counters.Add(agents.StageTopics, data.Topics.Processed)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data.Validation = p.validator.Process(data.Topics)
	counters.Add(agents.StageValidator, data.Validation.Processed)

	data.Predictions = p.predictor.Process(data.Validation)
	counters.Add(agents.StagePredictor, data.Predictions.Processed)

	return data, counters, nil
}

func (p *Pipeline) persist(ctx context.Context, articles []domain.Article) {
	if p.repository == nil {
		return
	}
	collected := p.clock()
	inserted := 0
	for _, art := range articles {
		ok, err := p.repository.Save(ctx, domain.StoredArticle{Article: art, CollectedAt: collected})
		if err != nil {
			p.logger.Error("persist article failed", "url", art.URL, "error", err)
			continue
		}
		if ok {
			inserted++
		}
	}
	stored, err := p.repository.Count(ctx)
	if err != nil {
		p.logger.Error("count stored articles failed", "error", err)
		stored = -1
	}
	p.logger.Info("articles persisted", "fetched", len(articles), "inserted", inserted, "stored", stored)
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

func failed(runID string, err error) Result {
	return Result{Status: StatusFailed, RunID: runID, Error: err.Error()}
}

func buildDigestMessage(data *PipelineData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Newsletter Econômico (%s)\n\n", strings.ToUpper(data.Validation.OverallQuality))
	for _, verdict := range data.Validation.Verdicts {
		for _, topic := range verdict.Approved {
			fmt.Fprintf(&b, "- %s [%s]\n", topic.Title, topic.ImpactLevel)
		}
	}
	fmt.Fprintf(&b, "\nConfiança geral: %.1f%%\n", data.Predictions.Predictions.Confidence.Overall*100)
	return b.String()
}
