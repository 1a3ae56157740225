package research

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/startup-research/internal/model"
)

// ResearchMany researches entities concurrently. The result has the same
// length and order as names; a failure inside one entity's pipeline is
// absorbed there and never cancels or affects the others.
func (s *Service) ResearchMany(ctx context.Context, names []string) []model.EntityRecord {
	zap.L().Info("research: starting batch",
		zap.Int("entities", len(names)),
		zap.Int("concurrency", s.maxConcurrent),
	)

	records := make([]model.EntityRecord, len(names))

	// Plain group, not WithContext: no task returns an error, and one
	// entity must never cancel its siblings.
	var g errgroup.Group
	g.SetLimit(s.maxConcurrent)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			records[i] = s.Research(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("research: batch complete", zap.Int("entities", len(records)))
	return records
}
