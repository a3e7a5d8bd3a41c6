// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover queries the arXiv API for papers submitted within a
// trailing window in a set of categories.
package discover

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivPDFBase derives a PDF URL when the feed entry carries no pdf link.
var arxivPDFBase = "https://arxiv.org/pdf/"

const (
	// DefaultWindow is the trailing submission window: two days
	// inclusive, ending at call time.
	DefaultWindow = 48 * time.Hour

	defaultMaxResults = 50
)

// Recent queries arXiv for papers in cfg.Categories submitted within the
// window ending now, sorted by submission date descending and truncated
// to cfg.MaxResults. An empty result is not an error. The window is
// computed from wall-clock time; callers cannot supply their own range.
func Recent(ctx context.Context, client *http.Client, cfg types.DiscoveryConfig) ([]types.Paper, error) {
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("no categories configured")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	window := cfg.Window
	if window <= 0 {
		window = DefaultWindow
	}

	// The arXiv date filter has day granularity; the boundaries pad the
	// window start to midnight and the end to the last second of today.
	now := time.Now()
	start := dayStart(now.Add(-window))
	end := dayEnd(now)

	query := buildQuery(cfg.Categories, start, end)
	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, query, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		id := extractArxivID(entry.ID)
		if id == "" {
			continue
		}

		published, parseErr := time.Parse(time.RFC3339, entry.Published)
		if parseErr != nil {
			continue
		}
		// The service applies the date filter too; enforcing it here
		// keeps the contract independent of upstream quirks.
		if published.Before(start) || published.After(end) {
			continue
		}

		p := types.Paper{
			ID:        id,
			Title:     strings.TrimSpace(entry.Title),
			Published: published,
			EntryURL:  entry.ID,
			PDFURL:    pdfURL(entry, id),
		}
		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		for _, c := range entry.Categories {
			p.Categories = append(p.Categories, c.Term)
		}

		papers = append(papers, p)
	}

	sort.Slice(papers, func(i, j int) bool {
		return papers[i].Published.After(papers[j].Published)
	})
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}

	return papers, nil
}

// buildQuery constructs the search_query parameter: OR'd category terms
// AND a submittedDate range.
func buildQuery(categories []string, start, end time.Time) string {
	terms := make([]string, 0, len(categories))
	for _, cat := range categories {
		terms = append(terms, "cat:"+cat)
	}
	catQuery := "(" + strings.Join(terms, "+OR+") + ")"
	dateRange := fmt.Sprintf("submittedDate:[%s+TO+%s]",
		start.Format("20060102150405"), end.Format("20060102150405"))
	return catQuery + "+AND+" + dateRange
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
	Links      []arxivLink     `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
}

// pdfURL prefers the entry's pdf link and falls back to deriving one
// from the identifier.
func pdfURL(entry arxivEntry, id string) string {
	for _, l := range entry.Links {
		if l.Title == "pdf" && l.Href != "" {
			return l.Href
		}
	}
	return arxivPDFBase + id
}

// extractArxivID pulls the short ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1"). The
// version suffix is kept so the download name stays unambiguous.
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return idURL[idx+len(prefix):]
}
