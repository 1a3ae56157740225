// Package research orchestrates per-entity source lookups into persisted
// entity records.
package research

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/startup-research/internal/config"
	"github.com/sells-group/startup-research/internal/model"
	"github.com/sells-group/startup-research/internal/store"
)

// Session performs the per-run source lookups. *source.Session satisfies it.
type Session interface {
	DiscoverWebsite(ctx context.Context, name string) string
	FetchWebsiteProfile(ctx context.Context, url string) model.WebsiteProfile
	FetchStructuredProfile(ctx context.Context, name string) model.StructuredProfile
	FetchNews(ctx context.Context, name string) []model.NewsItem
	Close()
}

// SessionFactory acquires a network session scoped to one research run.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}

// FactoryFunc adapts a function to the SessionFactory interface.
type FactoryFunc func(ctx context.Context) (Session, error)

func (f FactoryFunc) NewSession(ctx context.Context) (Session, error) { return f(ctx) }

// Service runs the research pipeline and persists its results.
type Service struct {
	factory       SessionFactory
	store         store.Store
	maxConcurrent int
}

// New creates a research Service.
func New(factory SessionFactory, st store.Store, cfg config.ResearchConfig) *Service {
	maxConcurrent := cfg.MaxConcurrentEntities
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Service{
		factory:       factory,
		store:         st,
		maxConcurrent: maxConcurrent,
	}
}

// Research runs the full pipeline for one entity. Total function: source
// failures degrade to field defaults and even a whole-pipeline failure still
// yields a minimal record, so the caller always receives exactly one record.
func (s *Service) Research(ctx context.Context, name string) model.EntityRecord {
	log := zap.L().With(
		zap.String("entity", name),
		zap.String("run_id", uuid.NewString()),
	)
	log.Info("research: starting")

	rec, err := s.runPipeline(ctx, name, log)
	if err != nil {
		log.Error("research: pipeline failed, emitting minimal record", zap.Error(err))
		rec = minimalRecord(name)
	}

	// Same single save call on both paths.
	if err := s.store.Put(ctx, &rec); err != nil {
		log.Error("research: save failed", zap.Error(err))
	}

	log.Info("research: complete",
		zap.String("id", rec.ID),
		zap.String("website", rec.Website),
	)
	return rec
}

// runPipeline drives one entity through discovery, the dependent and
// independent source lookups, and the merge.
func (s *Service) runPipeline(ctx context.Context, name string, log *zap.Logger) (model.EntityRecord, error) {
	sess, err := s.factory.NewSession(ctx)
	if err != nil {
		return model.EntityRecord{}, eris.Wrap(err, "research: acquire session")
	}
	defer sess.Close()

	// The website profile fetch depends on discovery; the structured and
	// news lookups do not, so the three run concurrently after it.
	website := sess.DiscoverWebsite(ctx, name)
	log.Debug("research: website discovered", zap.String("url", website))

	var (
		wp   model.WebsiteProfile
		sp   model.StructuredProfile
		news []model.NewsItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if website != "" {
			wp = sess.FetchWebsiteProfile(gctx, website)
		}
		return nil
	})
	g.Go(func() error {
		sp = sess.FetchStructuredProfile(gctx, name)
		return nil
	})
	g.Go(func() error {
		news = sess.FetchNews(gctx, name)
		return nil
	})
	_ = g.Wait() // lookups never return errors

	return Merge(name, website, wp, sp, news), nil
}
