package source

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/startup-research/internal/model"
)

// NewsProvider returns recent news items referencing an entity. Providers
// must always succeed with a non-empty list; the Session converts provider
// errors to an empty list.
type NewsProvider interface {
	FetchNews(ctx context.Context, name string) ([]model.NewsItem, error)
}

// FetchNews returns news items for the entity, or an empty list when the
// capability is disabled or the provider fails.
func (s *Session) FetchNews(ctx context.Context, name string) []model.NewsItem {
	if s.f.cfg.News == nil {
		return []model.NewsItem{}
	}

	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	items, err := s.f.cfg.News.FetchNews(cctx, name)
	if err != nil {
		s.log.Warn("source: news lookup failed", zap.String("entity", name), zap.Error(err))
		return []model.NewsItem{}
	}
	if items == nil {
		items = []model.NewsItem{}
	}
	return items
}

// StaticNewsProvider is a placeholder news source that fabricates plausible
// items from the entity name. It stands in until a real news API is wired
// behind the NewsProvider interface.
type StaticNewsProvider struct{}

// FetchNews returns three canned items referencing the entity.
func (StaticNewsProvider) FetchNews(_ context.Context, name string) ([]model.NewsItem, error) {
	slug := model.Slugify(name)
	today := time.Now().UTC().Format("2006-01-02")

	return []model.NewsItem{
		{
			Title:  name + " Announces New Investment Round",
			URL:    "https://techcrunch.com/" + slug + "-funding",
			Source: "TechCrunch",
			Date:   today,
		},
		{
			Title:  name + " Releases Major Product Update",
			URL:    "https://venturebeat.com/" + slug + "-update",
			Source: "VentureBeat",
			Date:   today,
		},
		{
			Title:  name + " Partners with Industry Leader",
			URL:    "https://www.wired.com/story/" + slug + "-partnership",
			Source: "Wired",
			Date:   today,
		},
	}, nil
}
