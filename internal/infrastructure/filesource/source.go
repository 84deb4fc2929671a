package filesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/ports"
)

// Source serves articles from a JSON file holding an array of articles.
type Source struct {
	path string
}

var _ ports.ArticleSource = (*Source)(nil)

// New returns a Source reading path.
func New(path string) (*Source, error) {
	if path == "" {
		return nil, errors.New("file source requires a path")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	return &Source{path: path}, nil
}

// FetchDaily returns every article in the file; day is ignored.
func (s *Source) FetchDaily(ctx context.Context, _ time.Time) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return articles, nil
}
