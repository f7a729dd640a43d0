package discovery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kadresources/sheetsync/internal/sheets"
)

// DefaultFeedBaseURL hosts the legacy worksheet feed
const DefaultFeedBaseURL = "https://spreadsheets.google.com"

// Fallback patterns for tab names embedded in the editor's bootstrap data
var sheetNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"name":"([^"]+)","index":\d+,"sheetType":"GRID"`),
	regexp.MustCompile(`"sheets":\[[^\]]*"name":"([^"]+)"[^\]]*\]`),
	regexp.MustCompile(`data-params="[^"]*sheet=([^"&]+)`),
}

// FeedStrategy reads tab titles from the public worksheet feed
type FeedStrategy struct {
	client  *sheets.Client
	baseURL string
}

// NewFeedStrategy creates a FeedStrategy; an empty baseURL uses DefaultFeedBaseURL
func NewFeedStrategy(client *sheets.Client, baseURL string) *FeedStrategy {
	if baseURL == "" {
		baseURL = DefaultFeedBaseURL
	}
	return &FeedStrategy{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Name implements Strategy
func (s *FeedStrategy) Name() string { return "feed" }

// Discover implements Strategy. The first title in the feed names the document
// itself and is skipped.
func (s *FeedStrategy) Discover(ctx context.Context) ([]string, error) {
	feedURL := fmt.Sprintf("%s/feeds/worksheets/%s/public/basic", s.baseURL, s.client.SheetID())
	body, err := s.client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	var titles []string
	doc.Find("title").Each(func(i int, sel *goquery.Selection) {
		titles = append(titles, sel.Text())
	})
	if len(titles) < 2 {
		return nil, nil
	}

	return cleanNames(titles[1:], false), nil
}

// HTMLStrategy reads tab names from the published HTML view, then the editor page
type HTMLStrategy struct {
	client *sheets.Client
}

// NewHTMLStrategy creates an HTMLStrategy
func NewHTMLStrategy(client *sheets.Client) *HTMLStrategy {
	return &HTMLStrategy{client: client}
}

// Name implements Strategy
func (s *HTMLStrategy) Name() string { return "html" }

// Discover implements Strategy
func (s *HTMLStrategy) Discover(ctx context.Context) ([]string, error) {
	var lastErr error
	for _, page := range []string{"htmlview", "edit"} {
		pageURL := fmt.Sprintf("%s/spreadsheets/d/%s/%s", s.client.BaseURL(), s.client.SheetID(), page)
		body, err := s.client.Get(ctx, pageURL)
		if err != nil {
			lastErr = err
			continue
		}

		names, err := parseSheetNames(body)
		if err != nil {
			lastErr = err
			continue
		}
		if len(names) > 0 {
			return names, nil
		}
	}

	return nil, lastErr
}

// parseSheetNames extracts tab names from a spreadsheet page: the tab menu of the
// HTML view first, then the patterns in sheetNamePatterns in order.
func parseSheetNames(body string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tabs []string
	doc.Find("#sheet-menu li").Each(func(i int, sel *goquery.Selection) {
		tabs = append(tabs, sel.Text())
	})
	if names := cleanNames(tabs, false); len(names) > 0 {
		return names, nil
	}

	for _, pattern := range sheetNamePatterns {
		matches := pattern.FindAllStringSubmatch(body, -1)
		if len(matches) == 0 {
			continue
		}

		raw := make([]string, 0, len(matches))
		for _, m := range matches {
			raw = append(raw, m[1])
		}
		if names := cleanNames(raw, true); len(names) > 0 {
			return names, nil
		}
	}

	return nil, nil
}

// ProbeStrategy checks candidate names against the CSV export
type ProbeStrategy struct {
	client     *sheets.Client
	candidates []string
}

// NewProbeStrategy creates a ProbeStrategy for the given candidates
func NewProbeStrategy(client *sheets.Client, candidates []string) *ProbeStrategy {
	return &ProbeStrategy{client: client, candidates: candidates}
}

// Name implements Strategy
func (s *ProbeStrategy) Name() string { return "probe" }

// Discover implements Strategy. A candidate counts when the export returns a
// non-empty body that is not an error page and looks like CSV.
func (s *ProbeStrategy) Discover(ctx context.Context) ([]string, error) {
	var found []string
	for _, name := range cleanNames(s.candidates, false) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := s.client.Fetch(ctx, name)
		if err != nil {
			continue
		}
		body = strings.TrimSpace(body)
		if body == "" || strings.HasPrefix(body, "Error") || !strings.Contains(body, ",") {
			continue
		}
		found = append(found, name)
	}
	return found, nil
}

// ListerStrategy asks a source that can enumerate its own tabs, such as a workbook
type ListerStrategy struct {
	lister sheets.Lister
}

// NewListerStrategy creates a ListerStrategy
func NewListerStrategy(lister sheets.Lister) *ListerStrategy {
	return &ListerStrategy{lister: lister}
}

// Name implements Strategy
func (s *ListerStrategy) Name() string { return "workbook" }

// Discover implements Strategy
func (s *ListerStrategy) Discover(ctx context.Context) ([]string, error) {
	names, err := s.lister.SheetNames(ctx)
	if err != nil {
		return nil, err
	}
	return cleanNames(names, false), nil
}
