// Package source performs the per-source external lookups that feed the
// research pipeline: website discovery, website scraping, structured
// encyclopedia lookup, and news lookup. Each capability is best-effort; a
// failed lookup degrades to the capability's default shape and never
// surfaces an error to the orchestrator.
package source

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/sells-group/startup-research/pkg/serp"
	"github.com/sells-group/startup-research/pkg/wikipedia"
)

// Config holds the source client settings.
type Config struct {
	SERPKey                string
	SERPBaseURL            string
	WikipediaBaseURL       string
	WikipediaUserAgent     string
	WikipediaRatePerSecond float64

	// Timeout bounds every individual source call.
	Timeout time.Duration

	// Suffixes maps entity names to encyclopedia disambiguation suffixes.
	Suffixes map[string]string

	// Vocabulary is the industry term list scanned against summaries.
	Vocabulary []string

	// News provides news lookups; nil disables the capability.
	News NewsProvider
}

type vocabTerm struct {
	term string
	re   *regexp.Regexp
}

// Factory creates per-research-run sessions. It owns the state shared across
// runs: the compiled vocabulary and the search circuit breaker.
type Factory struct {
	cfg     Config
	vocab   []vocabTerm
	breaker *gobreaker.CircuitBreaker
}

// NewFactory creates a session factory.
func NewFactory(cfg Config) *Factory {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	vocab := make([]vocabTerm, 0, len(cfg.Vocabulary))
	for _, term := range cfg.Vocabulary {
		vocab = append(vocab, vocabTerm{
			term: term,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}

	return &Factory{
		cfg:     cfg,
		vocab:   vocab,
		breaker: serp.NewBreaker(),
	}
}

// Session bundles the source capabilities for one research run around a
// dedicated network session. Callers must Close it when the run ends.
type Session struct {
	f    *Factory
	http *http.Client
	serp serp.Client
	wiki wikipedia.Client
	log  *zap.Logger
}

// NewSession acquires a network session scoped to one research run.
func (f *Factory) NewSession(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hc := &http.Client{
		Timeout: f.cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	var serpOpts []serp.Option
	if f.cfg.SERPBaseURL != "" {
		serpOpts = append(serpOpts, serp.WithBaseURL(f.cfg.SERPBaseURL))
	}
	serpOpts = append(serpOpts, serp.WithHTTPClient(hc), serp.WithBreaker(f.breaker))

	var wikiOpts []wikipedia.Option
	if f.cfg.WikipediaBaseURL != "" {
		wikiOpts = append(wikiOpts, wikipedia.WithBaseURL(f.cfg.WikipediaBaseURL))
	}
	if f.cfg.WikipediaUserAgent != "" {
		wikiOpts = append(wikiOpts, wikipedia.WithUserAgent(f.cfg.WikipediaUserAgent))
	}
	wikiOpts = append(wikiOpts,
		wikipedia.WithHTTPClient(hc),
		wikipedia.WithRateLimit(f.cfg.WikipediaRatePerSecond),
	)

	return &Session{
		f:    f,
		http: hc,
		serp: serp.NewClient(f.cfg.SERPKey, serpOpts...),
		wiki: wikipedia.NewClient(wikiOpts...),
		log:  zap.L(),
	}, nil
}

// Close releases the session's network resources. Safe to call after the
// run's in-flight requests have completed.
func (s *Session) Close() {
	s.http.CloseIdleConnections()
}

// callCtx bounds a single source call.
func (s *Session) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.f.cfg.Timeout)
}

// suffix returns the disambiguation suffix for a name, empty when none applies.
func (f *Factory) suffix(name string) string {
	return f.cfg.Suffixes[name]
}
