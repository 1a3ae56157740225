package research

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/startup-research/internal/config"
	"github.com/sells-group/startup-research/internal/model"
)

// stubSession returns canned results and records whether Close ran.
type stubSession struct {
	website string
	wp      model.WebsiteProfile
	sp      model.StructuredProfile
	news    []model.NewsItem

	mu     sync.Mutex
	closed bool
}

func (s *stubSession) DiscoverWebsite(context.Context, string) string { return s.website }

func (s *stubSession) FetchWebsiteProfile(context.Context, string) model.WebsiteProfile {
	return s.wp
}

func (s *stubSession) FetchStructuredProfile(context.Context, string) model.StructuredProfile {
	return s.sp
}

func (s *stubSession) FetchNews(context.Context, string) []model.NewsItem { return s.news }

func (s *stubSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// memStore is an in-memory store.Store for pipeline tests.
type memStore struct {
	mu      sync.Mutex
	records map[string]model.EntityRecord
	puts    int
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]model.EntityRecord)}
}

func (m *memStore) Put(_ context.Context, rec *model.EntityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	rec.LastUpdated = time.Now().UTC()
	m.records[rec.ID] = *rec
	return nil
}

func (m *memStore) Get(_ context.Context, idOrName string) (*model.EntityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[idOrName]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *memStore) ListAll(context.Context) ([]model.EntityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.EntityRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memStore) Search(context.Context, string) ([]model.EntityRecord, error) { return nil, nil }

func (m *memStore) Migrate(context.Context) error { return nil }

func (m *memStore) Close() error { return nil }

func sessionFactory(sess *stubSession) SessionFactory {
	return FactoryFunc(func(context.Context) (Session, error) { return sess, nil })
}

func TestResearch_HappyPath(t *testing.T) {
	t.Parallel()

	sess := &stubSession{
		website: "https://acme.io",
		wp:      model.WebsiteProfile{Website: "https://acme.io", Description: "We build robots."},
		sp:      model.StructuredProfile{FoundedYear: "2015", Industries: []string{"Robotics"}},
		news:    []model.NewsItem{{Title: "Acme ships", Source: "TechCrunch"}},
	}
	st := newMemStore()
	svc := New(sessionFactory(sess), st, config.ResearchConfig{})

	rec := svc.Research(context.Background(), "Acme Robotics")

	assert.Equal(t, "acme-robotics", rec.ID)
	assert.Equal(t, "https://acme.io", rec.Website)
	assert.Equal(t, "We build robots.", rec.Description)
	assert.Equal(t, []string{"Robotics"}, rec.Industries)
	assert.Len(t, rec.News, 1)
	assert.True(t, sess.closed)

	saved, err := st.Get(context.Background(), "acme-robotics")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 1, st.puts)
	assert.False(t, saved.LastUpdated.IsZero())
}

func TestResearch_FactoryFailureYieldsMinimalRecord(t *testing.T) {
	t.Parallel()

	factory := FactoryFunc(func(context.Context) (Session, error) {
		return nil, eris.New("no network")
	})
	st := newMemStore()
	svc := New(factory, st, config.ResearchConfig{})

	rec := svc.Research(context.Background(), "Acme Robotics")

	assert.Equal(t, "acme-robotics", rec.ID)
	assert.Equal(t, "https://acmerobotics.com", rec.Website)
	assert.Equal(t, []string{"Technology"}, rec.Industries)

	// The minimal record is still persisted.
	saved, err := st.Get(context.Background(), "acme-robotics")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 1, st.puts)
}

func TestResearch_SaveFailureStillReturnsRecord(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	st.putErr = eris.New("disk full")
	svc := New(sessionFactory(&stubSession{website: "https://acme.io"}), st, config.ResearchConfig{})

	rec := svc.Research(context.Background(), "Acme")

	assert.Equal(t, "acme", rec.ID)
	assert.Equal(t, 1, st.puts)
}

func TestResearch_RepeatedRunsReplace(t *testing.T) {
	t.Parallel()

	st := newMemStore()
	svc := New(sessionFactory(&stubSession{website: "https://acme.io"}), st, config.ResearchConfig{})

	first := svc.Research(context.Background(), "Acme")
	time.Sleep(2 * time.Millisecond)
	second := svc.Research(context.Background(), "Acme")

	assert.Equal(t, first.ID, second.ID)
	all, err := st.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	saved, err := st.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.False(t, saved.LastUpdated.IsZero())
}

func TestResearchMany_OrderAndIsolation(t *testing.T) {
	t.Parallel()

	sess := &stubSession{website: "https://ok.example"}
	var calls atomicNames
	factory := FactoryFunc(func(context.Context) (Session, error) {
		if calls.next() == 1 {
			// Second entity's session acquisition fails.
			return nil, eris.New("transient outage")
		}
		return sess, nil
	})
	st := newMemStore()
	svc := New(factory, st, config.ResearchConfig{MaxConcurrentEntities: 1})

	records := svc.ResearchMany(context.Background(), []string{"Alpha", "Beta", "Gamma"})

	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].ID)
	assert.Equal(t, "beta", records[1].ID)
	assert.Equal(t, "gamma", records[2].ID)

	// Beta degraded to the synthesized default, the others did not.
	assert.Equal(t, "https://beta.com", records[1].Website)
	assert.Equal(t, "https://ok.example", records[0].Website)
	assert.Equal(t, "https://ok.example", records[2].Website)
	assert.Equal(t, 3, st.puts)
}

func TestResearchMany_Empty(t *testing.T) {
	t.Parallel()

	svc := New(sessionFactory(&stubSession{}), newMemStore(), config.ResearchConfig{})
	records := svc.ResearchMany(context.Background(), nil)
	assert.Empty(t, records)
}

// atomicNames counts factory invocations across goroutines.
type atomicNames struct {
	mu sync.Mutex
	n  int
}

func (a *atomicNames) next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.n
	a.n++
	return n
}
