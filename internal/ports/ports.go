package ports

import (
	"context"
	"time"

	"EconomyNewsletter/internal/domain"
)

// ArticleSource pulls fresh articles from upstream news sites.
type ArticleSource interface {
	FetchDaily(ctx context.Context, day time.Time) ([]domain.Article, error)
}

// ArticleRepository is the append-only article store keyed by URL.
type ArticleRepository interface {
	// Save inserts the article unless its URL is already stored and reports
	// whether a row was written.
	Save(ctx context.Context, article domain.StoredArticle) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SentimentAnalyzer scores the polarity of an article body.
type SentimentAnalyzer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// NewsletterPublisher stores a rendered newsletter and returns its location.
type NewsletterPublisher interface {
	Publish(ctx context.Context, html []byte, at time.Time) (string, error)
}

// Notifier streams short digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
