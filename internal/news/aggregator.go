// internal/news/aggregator.go
package news

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tara/internal/common/config"
	"tara/internal/common/errors"
	commonhttp "tara/internal/common/http"
	"tara/internal/common/logger"
	"tara/internal/common/metrics"
	"tara/internal/models"
)

// immigrationKeywords gates which feed entries are relevant. An item
// survives the filter when its title or excerpt contains any of them.
var immigrationKeywords = []string{
	"visa", "work permit", "citizenship", "asylum", "policy", "residency",
	"migrant", "border", "refugee", "expat", "nomad", "passport",
	"immigration", "schengen",
}

const (
	excerptStorageLimit = 300
	excerptDisplayLimit = 200
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Aggregator fetches the configured feeds, normalizes their entries and
// runs the relevance pipeline.
type Aggregator struct {
	cfg        config.NewsConfig
	httpClient *commonhttp.Client
	logger     logger.Logger
}

func NewAggregator(cfg config.NewsConfig, log logger.Logger) *Aggregator {
	return &Aggregator{
		cfg:        cfg,
		httpClient: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		logger:     log,
	}
}

// Fetch pulls every source concurrently and returns the deduplicated,
// filtered, newest-first item list. A failing source contributes nothing;
// it never fails the aggregate.
func (a *Aggregator) Fetch(ctx context.Context) []models.NewsItem {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		fetched []models.NewsItem
	)

	for _, src := range a.cfg.Sources {
		wg.Add(1)
		go func(src config.NewsSource) {
			defer wg.Done()

			items, err := a.fetchSource(ctx, src)
			if err != nil {
				metrics.FeedFetches.WithLabelValues(src.Name, "error").Inc()
				ferr := errors.NewFeedFetchError(src.Name, err)
				a.logger.Warn(ferr.Message, map[string]interface{}{
					"code":    string(ferr.Code),
					"details": ferr.Details,
				})
				return
			}
			metrics.FeedFetches.WithLabelValues(src.Name, "success").Inc()

			mu.Lock()
			fetched = append(fetched, items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	result := a.pipeline(fetched)
	metrics.NewsItemsAggregated.Set(float64(len(result)))
	return result
}

func (a *Aggregator) fetchSource(ctx context.Context, src config.NewsSource) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL(src.URL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	entries, err := parseFeed(body)
	if err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(entries))
	for _, e := range entries {
		if e.Title == "" && e.Link == "" {
			continue
		}
		items = append(items, a.toItem(src, e))
	}
	return items, nil
}

// feedURL routes the fetch through the CORS-stripping proxy when one is
// configured.
func (a *Aggregator) feedURL(feed string) string {
	if a.cfg.ProxyPrefix == "" {
		return feed
	}
	return a.cfg.ProxyPrefix + url.QueryEscape(feed)
}

func (a *Aggregator) toItem(src config.NewsSource, e feedEntry) models.NewsItem {
	published := parseDate(e.DateRaw)
	excerpt := clip(stripHTML(e.Excerpt()), excerptStorageLimit)

	// the feed's own identifier keeps items stable across refreshes;
	// a generated id is the last resort
	id := e.GUID
	if id == "" {
		id = e.Link
	}
	if id == "" {
		id = uuid.New().String()
	}

	return models.NewsItem{
		ID:       id,
		Title:    stripHTML(e.Title),
		Excerpt:  displayExcerpt(excerpt),
		URL:      e.Link,
		Date:     published.Format("2006-01-02"),
		RawDate:  published.UnixMilli(),
		Category: categorize(src.Name, e.Title, excerpt),
		Source:   src.Name,
	}
}

// pipeline applies dedupe, keyword filter, newest-first sort and the item
// cap, in that order.
func (a *Aggregator) pipeline(items []models.NewsItem) []models.NewsItem {
	items = dedupeByURL(items)
	items = filterRelevant(items)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RawDate > items[j].RawDate
	})

	max := a.cfg.MaxItems
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items
}

// dedupeByURL keeps the last occurrence of each URL. Items without a URL
// are kept as-is.
func dedupeByURL(items []models.NewsItem) []models.NewsItem {
	lastIdx := make(map[string]int, len(items))
	for i, it := range items {
		if it.URL != "" {
			lastIdx[it.URL] = i
		}
	}

	out := make([]models.NewsItem, 0, len(items))
	for i, it := range items {
		if it.URL != "" && lastIdx[it.URL] != i {
			continue
		}
		out = append(out, it)
	}
	return out
}

func filterRelevant(items []models.NewsItem) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		haystack := strings.ToLower(it.Title + " " + it.Excerpt)
		for _, kw := range immigrationKeywords {
			if strings.Contains(haystack, kw) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// categorize assigns the first matching category; source name beats
// content keywords within each rule.
func categorize(source, title, excerpt string) models.NewsCategory {
	text := strings.ToLower(title + " " + excerpt)

	switch {
	case strings.Contains(source, "Schengen Visa Info"),
		strings.Contains(text, "visa"),
		strings.Contains(text, "schengen"),
		strings.Contains(text, "permit"):
		return models.CategoryVisaUpdate
	case strings.Contains(source, "UNHCR"),
		strings.Contains(text, "refugee"),
		strings.Contains(text, "asylum"),
		strings.Contains(text, "safety"),
		strings.Contains(text, "conflict"):
		return models.CategorySafety
	case strings.Contains(text, "citizenship"),
		strings.Contains(text, "passport"),
		strings.Contains(text, "naturalization"):
		return models.CategoryCitizenship
	default:
		return models.CategoryPolicy
	}
}

// parseDate tries the date layouts feeds use in the wild. Unparseable
// values resolve to now so the item still sorts near the top rather than
// disappearing.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now()
	}

	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}

func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func displayExcerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptDisplayLimit {
		return s
	}
	return string(runes[:excerptDisplayLimit]) + "..."
}
