package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"EconomyNewsletter/internal/config"
	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/infrastructure/filesource"
	"EconomyNewsletter/internal/infrastructure/parser"
	"EconomyNewsletter/internal/infrastructure/scheduler"
	"EconomyNewsletter/internal/infrastructure/sentiment"
	"EconomyNewsletter/internal/infrastructure/storage"
	"EconomyNewsletter/internal/infrastructure/telegram"
	"EconomyNewsletter/internal/logging"
	"EconomyNewsletter/internal/ports"
	"EconomyNewsletter/internal/render"
	"EconomyNewsletter/internal/scanner"
	"EconomyNewsletter/internal/usecase"
)

// Options tweak how the application sources its articles.
type Options struct {
	// InputPath replaces the site scanners with a JSON file of articles.
	InputPath string
	// SkipStorage disables the sqlite article store.
	SkipStorage bool
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	repository *storage.SQLiteRepository
	pipeline   *usecase.Pipeline
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	var analyzer ports.SentimentAnalyzer
	if cfg.Sentiment.InferenceURL != "" {
		analyzer = sentiment.NewClient(cfg.Sentiment.InferenceURL, cfg.Sentiment.APIKey)
	}

	var source ports.ArticleSource
	if opts.InputPath != "" {
		fileSource, err := filesource.New(opts.InputPath)
		if err != nil {
			return nil, err
		}
		source = fileSource
	} else {
		registry := scanner.NewRegistry()
		registry.Register(parser.NewCNNBrasilScanner(nil, analyzer, baseLogger.With("component", "scanner.cnnbrasil")))
		source = parser.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))
	}

	var repository *storage.SQLiteRepository
	if !opts.SkipStorage && cfg.Database.Path != "" {
		repo, err := storage.Open(ctx, cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open article store: %w", err)
		}
		repository = repo
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID, "")
	}

	deps := usecase.PipelineDeps{
		Source:    source,
		Publisher: render.NewFileWriter(cfg.Output.Dir),
		Notifier:  notifier,
		Logger:    baseLogger.With("component", "pipeline"),
		Clock: func() time.Time {
			return time.Now().In(cfg.Scheduler.Location())
		},
	}
	if repository != nil {
		deps.Repository = repository
	}

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		repository: repository,
		pipeline:   usecase.NewPipeline(deps),
	}, nil
}

// RunOnce fetches today's articles and produces one edition.
func (a *Application) RunOnce(ctx context.Context) usecase.Result {
	now := time.Now().In(a.cfg.Scheduler.Location())
	return a.pipeline.ProcessDay(ctx, now)
}

// RunArticles produces an edition from an in-memory batch.
func (a *Application) RunArticles(ctx context.Context, articles []domain.Article) usecase.Result {
	return a.pipeline.Run(ctx, articles)
}

// Schedule runs an edition every day at the configured time until ctx is done.
func (a *Application) Schedule(ctx context.Context) error {
	driver := scheduler.NewDailyScheduler(a.cfg.Scheduler.Hour, a.cfg.Scheduler.Minute, a.cfg.Scheduler.Location())
	sched := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"), nil)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "next_run", driver.Next(time.Now()).Format(time.RFC3339))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Close releases the article store.
func (a *Application) Close() error {
	if a.repository == nil {
		return nil
	}
	return a.repository.Close()
}
