package scholar

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Google Scholar host.
	DefaultBaseURL = "https://scholar.google.com"

	// DefaultTimeout bounds one navigation plus extraction.
	DefaultTimeout = 30 * time.Second

	// RequestsPerSecond is deliberately conservative; Scholar blocks
	// aggressive clients.
	RequestsPerSecond = 0.5
)

// extractResultsJS pulls structured results out of a Scholar results page.
const extractResultsJS = `
Array.from(document.querySelectorAll('div.gs_r[data-cid]')).map(function(el) {
	var title = el.querySelector('h3.gs_rt');
	var venue = el.querySelector('.gs_a');
	var snippet = el.querySelector('.gs_rs');
	var versions = Array.from(el.querySelectorAll('.gs_fl a')).find(function(a) {
		return a.textContent.toLowerCase().indexOf('version') !== -1 &&
			a.href.indexOf('cluster=') !== -1;
	});
	return {
		title: title ? title.textContent.trim() : '',
		venue: venue ? venue.textContent.trim() : '',
		snippet: snippet ? snippet.textContent.trim() : '',
		clusterId: el.getAttribute('data-cid') || '',
		versionsUrl: versions ? versions.href : ''
	};
})`

// blockedJS detects Scholar's robot check page.
const blockedJS = `
document.querySelector('#gs_captcha_ccl') !== null ||
	document.title.toLowerCase().indexOf('sorry') !== -1`

// bibtexLinkJS finds the BibTeX export link on the cite dialog page.
const bibtexLinkJS = `
(function() {
	var link = Array.from(document.querySelectorAll('a.gs_citi, #gs_citi a, a')).find(function(a) {
		return a.textContent.trim() === 'BibTeX';
	});
	return link ? link.href : '';
})()`

// rawResult mirrors the object shape produced by extractResultsJS.
type rawResult struct {
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	Snippet     string `json:"snippet"`
	ClusterID   string `json:"clusterId"`
	VersionsURL string `json:"versionsUrl"`
}

// Scraper drives a headless Chrome session against Google Scholar.
//
// One Scraper owns one browser and is reused across entries; it is not safe
// for concurrent use, which matches the pipeline's sequential model.
type Scraper struct {
	browserCtx  context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	limiter     *rate.Limiter
	baseURL     string
	timeout     time.Duration
	cache       *Cache
}

// ScraperOption configures a Scraper.
type ScraperOption func(*scraperConfig)

type scraperConfig struct {
	baseURL  string
	timeout  time.Duration
	headless bool
	cache    *Cache
}

// WithScraperBaseURL sets a custom Scholar base URL (for testing).
func WithScraperBaseURL(u string) ScraperOption {
	return func(c *scraperConfig) { c.baseURL = u }
}

// WithScraperTimeout sets the per-operation timeout.
func WithScraperTimeout(d time.Duration) ScraperOption {
	return func(c *scraperConfig) { c.timeout = d }
}

// WithVisible runs the browser with a visible window.
func WithVisible() ScraperOption {
	return func(c *scraperConfig) { c.headless = false }
}

// WithCache attaches a citation cache so repeated runs skip fetches.
func WithCache(cache *Cache) ScraperOption {
	return func(c *scraperConfig) { c.cache = cache }
}

// NewScraper starts a Chrome instance and returns a ready Scraper.
// Call Close when done.
func NewScraper(opts ...ScraperOption) (*Scraper, error) {
	cfg := scraperConfig{
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		headless: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("headless", cfg.headless),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser up front so the first search doesn't pay for it.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Scraper{
		browserCtx:  browserCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		limiter:     rate.NewLimiter(rate.Limit(RequestsPerSecond), 1),
		baseURL:     cfg.baseURL,
		timeout:     cfg.timeout,
		cache:       cfg.cache,
	}, nil
}

// Close shuts the browser down and closes the attached cache, if any.
func (s *Scraper) Close() error {
	s.cancelTab()
	s.cancelAlloc()
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// Search navigates to the results page for query and extracts candidates.
func (s *Scraper) Search(ctx context.Context, query string) ([]Candidate, error) {
	target := s.baseURL + "/scholar?hl=en&q=" + url.QueryEscape(query)
	return s.extractFrom(ctx, target)
}

// ExpandVersions loads a candidate's versions page and extracts candidates.
func (s *Scraper) ExpandVersions(ctx context.Context, c Candidate) ([]Candidate, error) {
	if c.VersionsURL == "" {
		return nil, ErrNoVersions
	}
	return s.extractFrom(ctx, c.VersionsURL)
}

// FetchCitation retrieves the raw BibTeX text for a candidate via the cite
// dialog's export link.
func (s *Scraper) FetchCitation(ctx context.Context, c Candidate) (string, error) {
	if c.ClusterID == "" {
		return "", ErrNoCitation
	}

	if s.cache != nil {
		if text, ok, err := s.cache.Get(c.ClusterID); err != nil {
			log.Printf("scholar cache_read_error cluster=%s err=%v", c.ClusterID, err)
		} else if ok {
			return text, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	opCtx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	citeURL := fmt.Sprintf("%s/scholar?q=info:%s:scholar.google.com/&output=cite&scirp=0&hl=en",
		s.baseURL, url.PathEscape(c.ClusterID))

	var bibLink string
	err := chromedp.Run(opCtx,
		chromedp.Navigate(citeURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(bibtexLinkJS, &bibLink),
	)
	if err != nil {
		return "", fmt.Errorf("loading cite dialog: %w", err)
	}
	if bibLink == "" {
		return "", ErrNoCitation
	}

	var text string
	err = chromedp.Run(opCtx,
		chromedp.Navigate(bibLink),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("loading bibtex export: %w", err)
	}

	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "@") {
		return "", fmt.Errorf("%w: export did not return bibtex", ErrNoCitation)
	}

	if s.cache != nil {
		if err := s.cache.Put(c.ClusterID, text); err != nil {
			log.Printf("scholar cache_write_error cluster=%s err=%v", c.ClusterID, err)
		}
	}
	return text, nil
}

// extractFrom navigates to a results URL and maps the page into candidates.
func (s *Scraper) extractFrom(ctx context.Context, target string) ([]Candidate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	opCtx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	var blocked bool
	var raw []rawResult
	err := chromedp.Run(opCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(blockedJS, &blocked),
		chromedp.Evaluate(extractResultsJS, &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("loading results page: %w", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	candidates := mapResults(raw)
	if len(candidates) == 0 {
		return nil, ErrNoResults
	}
	return candidates, nil
}

// mapResults converts raw page results into candidates, dropping results
// with no title and assigning result-set positions.
func mapResults(raw []rawResult) []Candidate {
	var candidates []Candidate
	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		// Scholar prefixes titles with markers like "[PDF]" or "[HTML]".
		// The tag is kept on the candidate so scoring still sees it.
		tag, title := splitTypeTag(title)

		candidates = append(candidates, Candidate{
			Index:       len(candidates),
			Title:       title,
			TypeTag:     tag,
			VenueInfo:   strings.TrimSpace(r.Venue),
			Snippet:     strings.TrimSpace(r.Snippet),
			ClusterID:   strings.TrimSpace(r.ClusterID),
			VersionsURL: strings.TrimSpace(r.VersionsURL),
		})
	}
	return candidates
}

// splitTypeTag separates a leading "[PDF]"-style marker from a result title.
// Titles without a marker come back unchanged with an empty tag.
func splitTypeTag(title string) (tag, rest string) {
	if !strings.HasPrefix(title, "[") {
		return "", title
	}
	end := strings.Index(title, "]")
	if end < 0 {
		return "", title
	}
	return title[:end+1], strings.TrimSpace(title[end+1:])
}
