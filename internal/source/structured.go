package source

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/startup-research/internal/model"
)

var (
	foundedRe   = regexp.MustCompile(`(?i)founded in (\d{4})`)
	hqRe        = regexp.MustCompile(`(?i)headquartered in ([^.]+)`)
	foundersRe  = regexp.MustCompile(`(?i)founded by ([^.]+)`)
	founderSep  = regexp.MustCompile(`,|\sand\s`)
	revenueRe   = regexp.MustCompile(`\|revenue\s*=\s*\{\{.+?\|(.+?)\}\}`)
	employeesRe = regexp.MustCompile(`\|num_employees\s*=\s*(\d+)`)
)

// Name heuristics applied when no industry was found any other way.
var (
	techHints    = []string{"ai", "intelligence", "tech", "data"}
	fintechHints = []string{"pay", "bank", "fin"}
)

// FetchStructuredProfile looks the entity up in the encyclopedia and extracts
// structured facts from the top hit: founding year, headquarters, industries,
// founders from the summary text, plus revenue and employee count from the
// page infobox. Every sub-step is independently best-effort; a total failure
// yields the all-defaults shape with heuristic industries.
func (s *Session) FetchStructuredProfile(ctx context.Context, name string) model.StructuredProfile {
	profile := model.StructuredProfile{
		Industries: []string{},
		Funding:    map[string]any{},
		Founders:   []string{},
	}
	defer func() {
		if len(profile.Industries) == 0 {
			profile.Industries = industriesFromName(name)
		}
	}()

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	hits, err := s.wiki.Search(cctx, name+s.f.suffix(name))
	if err != nil {
		s.log.Warn("source: structured lookup search failed", zap.String("entity", name), zap.Error(err))
		return profile
	}
	if len(hits) == 0 {
		s.log.Debug("source: structured lookup found no pages", zap.String("entity", name))
		return profile
	}
	pageID := hits[0].PageID

	summary, err := s.wiki.Extract(cctx, pageID)
	if err != nil {
		s.log.Warn("source: structured lookup extract failed",
			zap.String("entity", name),
			zap.Int("page_id", pageID),
			zap.Error(err),
		)
	} else {
		s.parseSummary(summary, &profile)
	}

	wikitext, err := s.wiki.Wikitext(cctx, pageID)
	if err != nil {
		s.log.Warn("source: structured lookup wikitext failed",
			zap.String("entity", name),
			zap.Int("page_id", pageID),
			zap.Error(err),
		)
	} else {
		parseInfobox(wikitext, &profile)
	}

	return profile
}

// parseSummary extracts facts from the page's plaintext intro.
func (s *Session) parseSummary(summary string, profile *model.StructuredProfile) {
	if m := foundedRe.FindStringSubmatch(summary); m != nil {
		profile.FoundedYear = m[1]
	}
	if m := hqRe.FindStringSubmatch(summary); m != nil {
		profile.Headquarters = strings.TrimSpace(m[1])
	}
	for _, v := range s.f.vocab {
		if v.re.MatchString(summary) {
			profile.Industries = append(profile.Industries, capitalize(v.term))
		}
	}
	if m := foundersRe.FindStringSubmatch(summary); m != nil {
		for _, founder := range founderSep.Split(m[1], -1) {
			if founder = strings.TrimSpace(founder); founder != "" {
				profile.Founders = append(profile.Founders, founder)
			}
		}
	}
}

// parseInfobox extracts revenue and employee count from raw wikitext.
func parseInfobox(wikitext string, profile *model.StructuredProfile) {
	if m := revenueRe.FindStringSubmatch(wikitext); m != nil {
		profile.Funding["Revenue"] = strings.TrimSpace(m[1])
	}
	if m := employeesRe.FindStringSubmatch(wikitext); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			profile.EmployeeCount = &n
		}
	}
}

// industriesFromName guesses industry tags from the entity name alone.
func industriesFromName(name string) []string {
	lower := strings.ToLower(name)
	for _, hint := range techHints {
		if strings.Contains(lower, hint) {
			return []string{"Technology", "Artificial Intelligence"}
		}
	}
	for _, hint := range fintechHints {
		if strings.Contains(lower, hint) {
			return []string{"Fintech", "Financial Services"}
		}
	}
	return []string{"Technology"}
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// how vocabulary terms are rendered as industry tags.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
