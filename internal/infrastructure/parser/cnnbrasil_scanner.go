package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"EconomyNewsletter/internal/domain"
	"EconomyNewsletter/internal/ports"
	"EconomyNewsletter/internal/scanner"
)

const (
	cnnBrasilBaseURL        = "https://www.cnnbrasil.com.br/economia/"
	cnnBrasilSource         = "CNN Brasil"
	defaultMinContentLength = 100
	minListCandidates       = 5
	minHeadingLength        = 20
	otherCategory           = "outras"
	userAgent               = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
)

type scraperCategory struct {
	name     string
	keywords []string
}

// Coarse categories stored with each scraped article. First match wins.
var scraperCategories = []scraperCategory{
	{"mercado", []string{"bolsa", "ibovespa", "dólar", "ações", "mercado financeiro", "b3"}},
	{"política", []string{"governo", "ministro", "presidente", "congresso", "reforma"}},
	{"empresas", []string{"empresa", "companhia", "empresarial", "lucro", "balanço"}},
	{"internacional", []string{"global", "exterior", "china", "eua", "europa", "exportação"}},
	{"commodities", []string{"petróleo", "soja", "milho", "boi gordo", "commodity", "minério"}},
	{"juros", []string{"juros", "selic", "bc", "copom", "taxa"}},
	{"inflação", []string{"inflação", "ipca", "preços"}},
	{"energia", []string{"energia", "eletricidade", "petróleo", "gasolina", "combustível"}},
	{"tecnologia", []string{"tecnologia", "inovação", "digital", "startup", "aplicativo"}},
	{"emprego", []string{"emprego", "desemprego", "desempregado", "trabalho", "caged"}},
}

type listItem struct {
	title string
	url   string
}

type pageContent struct {
	content string
	date    string
}

// CNNBrasilScanner collects economy news from the CNN Brasil section page.
type CNNBrasilScanner struct {
	client    *http.Client
	sentiment ports.SentimentAnalyzer
	logger    *slog.Logger
}

// NewCNNBrasilScanner wires an HTTP client and an optional sentiment analyzer.
func NewCNNBrasilScanner(client *http.Client, analyzer ports.SentimentAnalyzer, logger *slog.Logger) *CNNBrasilScanner {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &CNNBrasilScanner{client: client, sentiment: analyzer, logger: logger}
}

// Name identifies the strategy inside the registry.
func (c *CNNBrasilScanner) Name() string {
	return "cnnbrasil"
}

// Scan reads the section page, then every linked article page.
func (c *CNNBrasilScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	base := req.BaseURL
	if base == "" {
		base = cnnBrasilBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", base, err)
	}
	minContent := req.MinContentLength
	if minContent <= 0 {
		minContent = defaultMinContentLength
	}

	raw, err := c.fetch(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("list page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse list page: %w", err)
	}

	items := extractListItems(doc, baseURL)
	c.debug("list page parsed", "site", req.SiteName, "candidates", len(items))

	articles := make([]domain.Article, 0, len(items))
	for i, item := range items {
		if i > 0 && req.Delay > 0 {
			if err := sleep(ctx, req.Delay); err != nil {
				return articles, err
			}
		}

		page, err := c.readArticle(ctx, item.url)
		if err != nil {
			c.warn("article skipped", "url", item.url, "error", err)
			continue
		}
		if domain.Length(page.content) <= minContent {
			continue
		}

		articles = append(articles, domain.Article{
			Title:     item.title,
			Content:   page.content,
			URL:       item.url,
			Timestamp: page.date,
			Category:  classifyCategory(page.content),
			Source:    cnnBrasilSource,
			Sentiment: c.polarity(ctx, page.content),
		})
	}

	return articles, nil
}

func (c *CNNBrasilScanner) readArticle(ctx context.Context, pageURL string) (pageContent, error) {
	raw, err := c.fetch(ctx, pageURL)
	if err != nil {
		return pageContent{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return pageContent{}, fmt.Errorf("parse article: %w", err)
	}

	page := parseArticlePage(doc)
	if page.content == "" {
		page.content = readableText(raw, pageURL)
	}
	return page, nil
}

func (c *CNNBrasilScanner) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", pageURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return body, nil
}

func (c *CNNBrasilScanner) polarity(ctx context.Context, text string) float64 {
	if c.sentiment == nil {
		return 0
	}
	score, err := c.sentiment.Polarity(ctx, text)
	if err != nil {
		c.warn("sentiment failed", "error", err)
		return 0
	}
	return score
}

func (c *CNNBrasilScanner) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *CNNBrasilScanner) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// extractListItems collects (title, url) pairs from <article> cards and,
// when those are scarce, from long headings wrapped in links.
// Results are deduplicated by URL in first-seen order.
func extractListItems(doc *goquery.Document, base *url.URL) []listItem {
	var raw []listItem

	doc.Find("article").Each(func(_ int, art *goquery.Selection) {
		href, ok := art.Find("a[href]").First().Attr("href")
		if !ok || href == "" {
			return
		}
		heading := art.Find("h2, h3, h4").First()
		if heading.Length() == 0 {
			return
		}
		raw = append(raw, listItem{title: strings.TrimSpace(heading.Text()), url: href})
	})

	if len(raw) < minListCandidates {
		doc.Find("h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
			text := strings.TrimSpace(heading.Text())
			if domain.Length(text) <= minHeadingLength {
				return
			}
			href, ok := heading.ParentsFiltered("a[href]").First().Attr("href")
			if !ok || href == "" {
				return
			}
			raw = append(raw, listItem{title: text, url: href})
		})
	}

	seen := map[string]int{}
	var items []listItem
	for _, item := range raw {
		if item.title == "" || item.url == "" {
			continue
		}
		item.url = absoluteURL(base, item.url)
		if i, ok := seen[item.url]; ok {
			items[i] = item
			continue
		}
		seen[item.url] = len(items)
		items = append(items, item)
	}
	return items
}

func parseArticlePage(doc *goquery.Document) pageContent {
	var page pageContent

	container := doc.Find("div.post__content").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() > 0 {
		var paragraphs []string
		container.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		page.content = strings.Join(paragraphs, " ")
	}

	if datetime, ok := doc.Find("time").First().Attr("datetime"); ok {
		page.date = datetime
	}
	return page
}

func readableText(raw []byte, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(raw), parsed)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(article.TextContent), " ")
}

func absoluteURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	root := base.Scheme + "://" + base.Host
	if strings.HasPrefix(href, "/") {
		return root + href
	}
	return root + "/" + href
}

func classifyCategory(text string) string {
	text = strings.ToLower(text)
	for _, cat := range scraperCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				return cat.name
			}
		}
	}
	return otherCategory
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
