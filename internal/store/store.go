// Package store persists entity records as one JSON row per entity.
package store

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/startup-research/internal/config"
	"github.com/sells-group/startup-research/internal/model"
)

// Store defines the persistence interface for entity records. A record is
// keyed by its slug id; Put fully replaces any prior record with the same id
// and stamps LastUpdated.
type Store interface {
	Put(ctx context.Context, rec *model.EntityRecord) error
	// Get looks a record up by id or exact name. Returns nil when absent.
	Get(ctx context.Context, idOrName string) (*model.EntityRecord, error)
	ListAll(ctx context.Context) ([]model.EntityRecord, error)
	// Search returns records whose text fields contain term, case-insensitive.
	Search(ctx context.Context, term string) ([]model.EntityRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// matches reports whether the record's searchable text contains term.
// Shared by both backends so search semantics never drift between them.
func matches(rec *model.EntityRecord, term string) bool {
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(rec.Name), term) ||
		strings.Contains(strings.ToLower(rec.Description), term) ||
		strings.Contains(strings.ToLower(rec.Headquarters), term) {
		return true
	}
	for _, list := range [][]string{rec.Industries, rec.Products, rec.Founders} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
	}
	return false
}

// filterRecords applies the search predicate to a record list.
func filterRecords(recs []model.EntityRecord, term string) []model.EntityRecord {
	out := []model.EntityRecord{}
	for i := range recs {
		if matches(&recs[i], term) {
			out = append(out, recs[i])
		}
	}
	return out
}
