package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/startup-research/internal/query"
	"github.com/sells-group/startup-research/internal/research"
	"github.com/sells-group/startup-research/internal/source"
	"github.com/sells-group/startup-research/internal/store"
)

// serviceEnv holds the initialized store and services shared by the
// research/records/query/serve commands.
type serviceEnv struct {
	Store   store.Store
	Service *research.Service
	Engine  *query.Engine
}

// Close releases resources held by the environment.
func (e *serviceEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initEnv sets up the store, the source factory, and the research and query
// services. Callers should defer env.Close().
func initEnv(ctx context.Context) (*serviceEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	srcCfg := source.Config{
		SERPKey:                cfg.SERP.Key,
		SERPBaseURL:            cfg.SERP.BaseURL,
		WikipediaBaseURL:       cfg.Wikipedia.BaseURL,
		WikipediaUserAgent:     cfg.Wikipedia.UserAgent,
		WikipediaRatePerSecond: cfg.Wikipedia.RatePerSecond,
		Timeout:                time.Duration(cfg.Source.TimeoutSecs) * time.Second,
		Suffixes:               cfg.Source.Suffixes,
		Vocabulary:             cfg.Source.Vocabulary,
	}
	if cfg.Source.NewsEnabled {
		srcCfg.News = source.StaticNewsProvider{}
	}
	factory := source.NewFactory(srcCfg)

	sessions := research.FactoryFunc(func(ctx context.Context) (research.Session, error) {
		return factory.NewSession(ctx)
	})

	return &serviceEnv{
		Store:   st,
		Service: research.New(sessions, st, cfg.Research),
		Engine:  query.NewEngine(st),
	}, nil
}
