package source

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/startup-research/internal/model"
)

func TestStaticNewsProvider_Shape(t *testing.T) {
	t.Parallel()

	items, err := StaticNewsProvider{}.FetchNews(context.Background(), "Acme Robotics")
	require.NoError(t, err)
	require.NotEmpty(t, items)

	for _, item := range items {
		assert.Contains(t, item.Title, "Acme Robotics")
		assert.Contains(t, item.URL, "acme-robotics")
		assert.NotEmpty(t, item.Source)
		assert.NotEmpty(t, item.Date)
	}
}

func TestFetchNews_DisabledReturnsEmpty(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "", "")
	cfg.News = nil
	sess := newTestSession(t, cfg)

	got := sess.FetchNews(context.Background(), "Acme")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

type failingNews struct{}

func (failingNews) FetchNews(context.Context, string) ([]model.NewsItem, error) {
	return nil, eris.New("news backend down")
}

func TestFetchNews_ProviderFailureReturnsEmpty(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "", "")
	cfg.News = failingNews{}
	sess := newTestSession(t, cfg)

	got := sess.FetchNews(context.Background(), "Acme")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchNews_Enabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "", "")
	cfg.News = StaticNewsProvider{}
	sess := newTestSession(t, cfg)

	got := sess.FetchNews(context.Background(), "Acme")
	assert.Len(t, got, 3)
}
