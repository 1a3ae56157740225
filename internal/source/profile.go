package source

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/sells-group/startup-research/internal/model"
)

// maxProductNameLen excludes headings that are sentences rather than names.
const maxProductNameLen = 50

// socialPlatforms maps platform names to URL patterns, in match priority order.
var socialPlatforms = []struct {
	name string
	re   *regexp.Regexp
}{
	{"twitter", regexp.MustCompile(`twitter\.com|x\.com`)},
	{"linkedin", regexp.MustCompile(`linkedin\.com`)},
	{"facebook", regexp.MustCompile(`facebook\.com`)},
	{"instagram", regexp.MustCompile(`instagram\.com`)},
}

var productClassRe = regexp.MustCompile(`(?i)product|solutions|offering`)

// FetchWebsiteProfile fetches a page and extracts its meta description,
// social links, and product names. Any failure yields the all-defaults
// profile with only Website set.
func (s *Session) FetchWebsiteProfile(ctx context.Context, pageURL string) model.WebsiteProfile {
	profile := model.WebsiteProfile{
		Website:     pageURL,
		Products:    []string{},
		SocialLinks: map[string]string{},
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, pageURL, nil)
	if err != nil {
		s.log.Warn("source: website profile request", zap.String("url", pageURL), zap.Error(err))
		return profile
	}

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn("source: website profile fetch failed", zap.String("url", pageURL), zap.Error(err))
		return profile
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("source: website profile fetch status",
			zap.String("url", pageURL),
			zap.Int("status", resp.StatusCode),
		)
		return profile
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		s.log.Warn("source: website profile parse failed", zap.String("url", pageURL), zap.Error(err))
		return profile
	}

	extractProfile(doc, &profile)
	return profile
}

// extractProfile walks the document and fills the profile in place.
func extractProfile(doc *html.Node, profile *model.WebsiteProfile) {
	seen := map[string]bool{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				if attr(n, "name") == "description" && profile.Description == "" {
					profile.Description = attr(n, "content")
				}
			case "a":
				if href := attr(n, "href"); href != "" {
					for _, p := range socialPlatforms {
						if p.re.MatchString(href) {
							// First match per platform wins.
							if _, ok := profile.SocialLinks[p.name]; !ok {
								profile.SocialLinks[p.name] = href
							}
							break
						}
					}
				}
			case "section", "div":
				if productClassRe.MatchString(attr(n, "class")) {
					for _, h := range headings(n) {
						if h != "" && utf8.RuneCountInString(h) < maxProductNameLen && !seen[h] {
							seen[h] = true
							profile.Products = append(profile.Products, h)
						}
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// headings collects trimmed h2/h3/h4 text within a subtree.
func headings(n *html.Node) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h2", "h3", "h4":
				out = append(out, strings.TrimSpace(text(n)))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// text concatenates all text nodes under n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
