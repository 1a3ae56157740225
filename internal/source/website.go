package source

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DiscoverWebsite finds the most likely official website for an entity. It
// searches for "<name> official website" and takes the first organic result
// whose title mentions the name. When search fails or finds no confident
// match, it falls back to a constructed encyclopedia URL, so the returned
// URL is never empty.
func (s *Session) DiscoverWebsite(ctx context.Context, name string) string {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	resp, err := s.serp.Search(cctx, name+" official website")
	if err != nil {
		s.log.Warn("source: website search failed, using fallback",
			zap.String("entity", name),
			zap.Error(err),
		)
		return s.fallbackURL(name)
	}

	lower := strings.ToLower(name)
	for _, r := range resp.Organic {
		if r.Link != "" && strings.Contains(strings.ToLower(r.Title), lower) {
			s.log.Debug("source: website found via search",
				zap.String("entity", name),
				zap.String("url", r.Link),
			)
			return r.Link
		}
	}

	s.log.Debug("source: no confident search match, using fallback", zap.String("entity", name))
	return s.fallbackURL(name)
}

// fallbackURL constructs an encyclopedia reference URL from the name plus a
// disambiguating suffix: the configured suffix when the name is a known
// multi-meaning one, a generic " company" suffix for unknown single-word
// names, otherwise none.
func (s *Session) fallbackURL(name string) string {
	suffix := s.f.suffix(name)
	if suffix == "" && len(strings.Fields(name)) == 1 {
		suffix = " company"
	}

	page := strings.ReplaceAll(name+suffix, " ", "_")
	return "https://en.wikipedia.org/wiki/" + page
}
