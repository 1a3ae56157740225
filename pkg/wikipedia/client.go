// Package wikipedia provides a client for the MediaWiki action API.
package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/startup-research/internal/resilience"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Client performs Wikipedia lookups.
type Client interface {
	// Search returns pages matching the query, best match first.
	Search(ctx context.Context, query string) ([]SearchResult, error)
	// Extract returns the plaintext intro of a page.
	Extract(ctx context.Context, pageID int) (string, error)
	// Wikitext returns the raw wikitext of a page, infobox included.
	Wikitext(ctx context.Context, pageID int) (string, error)
}

// SearchResult is a single search hit.
type SearchResult struct {
	PageID int    `json:"pageid"`
	Title  string `json:"title"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request. The
// MediaWiki API expects callers to identify themselves.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithRateLimit caps requests per second against the API.
func WithRateLimit(perSecond float64) Option {
	return func(c *httpClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
}

// NewClient creates a Wikipedia API client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: "startup-research/1.0",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(5, 1),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("wikipedia", "get")
	for _, o := range opts {
		o(c)
	}
	return c
}

type searchEnvelope struct {
	Query struct {
		Search []SearchResult `json:"search"`
	} `json:"query"`
}

func (c *httpClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("format", "json")

	var env searchEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return nil, eris.Wrap(err, "wikipedia: search")
	}
	return env.Query.Search, nil
}

type extractEnvelope struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *httpClient) Extract(ctx context.Context, pageID int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("pageids", strconv.Itoa(pageID))
	params.Set("format", "json")

	var env extractEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return "", eris.Wrapf(err, "wikipedia: extract page %d", pageID)
	}
	page, ok := env.Query.Pages[strconv.Itoa(pageID)]
	if !ok {
		return "", eris.Errorf("wikipedia: page %d missing from extract response", pageID)
	}
	return page.Extract, nil
}

type wikitextEnvelope struct {
	Parse struct {
		Wikitext struct {
			Content string `json:"*"`
		} `json:"wikitext"`
	} `json:"parse"`
}

func (c *httpClient) Wikitext(ctx context.Context, pageID int) (string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("pageid", strconv.Itoa(pageID))
	params.Set("prop", "wikitext")
	params.Set("format", "json")

	var env wikitextEnvelope
	if err := c.get(ctx, params, &env); err != nil {
		return "", eris.Wrapf(err, "wikipedia: wikitext page %d", pageID)
	}
	return env.Parse.Wikitext.Content, nil
}

// get issues a rate-limited GET with retry and decodes the JSON response.
func (c *httpClient) get(ctx context.Context, params url.Values, out any) error {
	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "rate limit wait")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, eris.Wrap(err, "create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "send request")
		}
		defer resp.Body.Close() //nolint:errcheck

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "read response")
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, resilience.NewTransientError(
				eris.Errorf("unexpected status %d", resp.StatusCode),
				resp.StatusCode,
			)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, eris.Errorf("unexpected status %d: %s", resp.StatusCode, string(raw))
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
