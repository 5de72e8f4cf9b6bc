// AngelaMos | 2026
// service_test.go

package company

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/internhub/internal/core"
)

type memRepo struct {
	mu    sync.Mutex
	rows  map[string]*Company
	order []string
	clock time.Time
	lists int
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]*Company{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) Create(_ context.Context, c *Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Minute)
	c.CreatedAt = m.clock
	cp := *c
	m.rows[c.ID] = &cp
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get company: %w", core.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) ListActive(context.Context) ([]Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	out := []Company{}
	for _, id := range slices.Backward(m.order) {
		if c, ok := m.rows[id]; ok && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete company: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) DeleteAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.rows))
	m.rows = map[string]*Company{}
	m.order = nil
	return n, nil
}

func (m *memRepo) ToggleActive(_ context.Context, id string) (*Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("toggle company: %w", core.ErrNotFound)
	}
	c.IsActive = !c.IsActive
	cp := *c
	return &cp, nil
}

func (m *memRepo) Count(context.Context) (Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var counts Counts
	for _, c := range m.rows {
		counts.Total++
		if c.IsActive {
			counts.Active++
		}
	}
	return counts, nil
}

type memCache struct {
	list          []Company
	found         bool
	readErr       error
	invalidations int
}

func (c *memCache) GetActive(context.Context) ([]Company, bool, error) {
	return c.list, c.found, c.readErr
}

func (c *memCache) SetActive(_ context.Context, list []Company) error {
	c.list, c.found = list, true
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.list, c.found = nil, false
	c.invalidations++
	return nil
}

func validRequest(name string) CreateCompanyRequest {
	return CreateCompanyRequest{
		Name:           name,
		LogoURL:        "https://logo.example/" + name + ".svg",
		Role:           "SWE Intern",
		Location:       "Remote",
		InternshipType: TypeRemote,
		Stipend:        "$5,000/month",
		CareerURL:      "https://careers.example/" + name,
		Deadline:       "2026-12-31",
	}
}

func TestService_CreateDefaultsActive(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	c, err := svc.Create(context.Background(), validRequest("Stripe"))
	require.NoError(t, err)

	_, err = uuid.Parse(c.ID)
	assert.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), c.Deadline)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestService_CreateRejectsBadInput(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	req := validRequest("Stripe")
	req.InternshipType = "Vacation"
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.ErrorIs(t, err, ErrInvalidInternshipType)

	req = validRequest("Stripe")
	req.Deadline = "next tuesday"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.ErrorIs(t, err, ErrInvalidDeadline)
}

func TestService_CreateKeepsFieldsVerbatim(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()

	req := validRequest("Stripe")
	req.Name = "  Stripe  "
	req.LogoURL = "/logos/stripe.png"
	c, err := svc.Create(ctx, req)
	require.NoError(t, err)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "  Stripe  ", got.Name)
	assert.Equal(t, "/logos/stripe.png", got.LogoURL)
}

func TestService_ListNewestFirstActiveOnly(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest("First"))
	require.NoError(t, err)
	inactive := validRequest("Hidden")
	off := false
	inactive.IsActive = &off
	_, err = svc.Create(ctx, inactive)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest("Second"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
}

func TestService_GetHidesInactiveAndMalformed(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, validRequest("Meta"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meta", got.Name)

	_, err = svc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_ToggleTwiceRestores(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, validRequest("Apple"))
	require.NoError(t, err)

	once, err := svc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, once.IsActive)

	twice, err := svc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, twice.IsActive)
}

func TestService_DeleteNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.NewString()), core.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "bogus"), core.ErrNotFound)
}

func TestService_CacheReadThroughAndInvalidation(t *testing.T) {
	repo := newMemRepo()
	cache := &memCache{}
	svc := NewService(repo, cache)
	ctx := context.Background()

	c, err := svc.Create(ctx, validRequest("Nvidia"))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists, "second list is served from cache")

	_, err = svc.ToggleActive(ctx, c.ID)
	require.NoError(t, err)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 2, repo.lists)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Equal(t, 3, cache.invalidations)
}

func TestService_CacheErrorFallsBackToDatabase(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &memCache{readErr: errors.New("redis down")})

	_, err := svc.Create(context.Background(), validRequest("GitHub"))
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Seed(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	res, err := svc.Seed(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, len(SampleListings()), res.Inserted)
	assert.False(t, res.Skipped)

	res, err = svc.Seed(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Skipped)

	res, err = svc.Seed(ctx, true)
	require.NoError(t, err)
	assert.EqualValues(t, len(SampleListings()), res.Deleted)
	assert.Equal(t, len(SampleListings()), res.Inserted)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(SampleListings()), counts.Total)
}

func TestSampleListings_AreValid(t *testing.T) {
	v := core.NewValidator()
	for _, req := range SampleListings() {
		assert.NoError(t, v.Struct(req), req.Name)
	}
}

func TestParseDeadline(t *testing.T) {
	got, err := ParseDeadline("2026-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDeadline("2026-06-30T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC), got)

	_, err = ParseDeadline("30/06/2026")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
