package research

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultArxivBaseURL is the public arXiv Atom query endpoint.
const DefaultArxivBaseURL = "http://export.arxiv.org/api/query"

const (
	// maxResponseBytes caps the Atom payload read from arXiv.
	maxResponseBytes = 4 * 1024 * 1024

	// summaryLimit truncates abstracts for response payloads.
	summaryLimit = 150
)

// ArxivConfig configures the arXiv client.
type ArxivConfig struct {
	// BaseURL overrides the query endpoint, mainly for tests.
	BaseURL string

	// Timeout bounds a single search request. Default 10s.
	Timeout time.Duration
}

// ArxivClient fetches papers from the arXiv Atom API. It maintains a pooled
// HTTP client; create one per process and share it.
type ArxivClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewArxivClient creates an arXiv client.
func NewArxivClient(cfg ArxivConfig, logger *slog.Logger) *ArxivClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultArxivBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &ArxivClient{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger.With("provider", "arxiv"),
	}
}

// Name implements Provider.
func (c *ArxivClient) Name() string {
	return "arxiv"
}

// atom feed shapes for the arXiv API response.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// Search implements Provider. It queries all fields, sorted by relevance.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) ([]Paper, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build arxiv request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read arxiv response: %w", err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse arxiv feed: %w", err)
	}

	papers := make([]Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		papers = append(papers, entryToPaper(entry))
	}

	c.logger.DebugContext(ctx, "arxiv search complete",
		"query", query,
		"results", len(papers),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return papers, nil
}

// entryToPaper normalises one Atom entry into the response shape.
func entryToPaper(entry atomEntry) Paper {
	title := collapseWhitespace(entry.Title)
	summary := collapseWhitespace(entry.Summary)
	if len(summary) > summaryLimit {
		// Abstracts carry non-ASCII text; back up to a rune boundary so the
		// cut never splits a multi-byte character.
		cut := summaryLimit
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut] + "..."
	}

	author := "unknown"
	if len(entry.Authors) > 0 && entry.Authors[0].Name != "" {
		author = entry.Authors[0].Name + " et al."
	}

	year := ""
	if len(entry.Published) >= 4 {
		year = entry.Published[:4]
	}

	return Paper{
		Title:   title,
		Author:  author,
		Journal: fmt.Sprintf("ArXiv (%s)", year),
		// Display-only relevance derived from the title; arXiv does not
		// expose a score.
		Relevance: fmt.Sprintf("%d%%", 90+len(title)%10),
		Summary:   summary,
	}
}

// collapseWhitespace trims and joins the multi-line text arXiv returns.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HealthCheck implements Provider with a single-result check query.
func (c *ArxivClient) HealthCheck(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.Search(checkCtx, "climate", 1); err != nil {
		return fmt.Errorf("arxiv health check failed: %w", err)
	}
	return nil
}
