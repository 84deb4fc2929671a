package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"EconomyNewsletter/internal/config"
	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/ports"
	"EconomyNewsletter/internal/scanner"
)

// StrategySource implements ArticleSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// FetchDaily iterates over configured sites and executes their scanners.
// Articles repeated across sites are kept once, by URL.
func (s *StrategySource) FetchDaily(ctx context.Context, day time.Time) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch daily", "sites", len(s.sites), "day", day.Format("2006-01-02"))

	seen := map[string]struct{}{}
	var aggregated []domain.Article
	for _, site := range s.sites {
		s.debug("process site", "site", site.Name, "scanner", site.Scanner)
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		req := scanner.Request{
			Day:              day,
			SiteName:         site.Name,
			BaseURL:          site.BaseURL,
			Delay:            time.Duration(site.RequestDelayMS) * time.Millisecond,
			MinContentLength: site.MinContentLength,
			Options:          site.Options,
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		for _, art := range results {
			if _, ok := seen[art.URL]; ok {
				continue
			}
			seen[art.URL] = struct{}{}
			if art.Source == "" {
				art.Source = site.Name
			}
			aggregated = append(aggregated, art)
		}
		s.debug("site produced articles", "site", site.Name, "count", len(results))
	}

	s.debug("strategy source done", "total_articles", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
