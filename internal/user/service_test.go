// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/middleware"
)

type memUsers struct {
	byID map[string]*User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*User{}} }

func (m *memUsers) Create(_ context.Context, u *User) error {
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) Count(context.Context) (int, error) { return len(m.byID), nil }

func TestService_CreateNormalizesAndDefaultsRole(t *testing.T) {
	svc := NewService(newMemUsers())
	ctx := context.Background()

	info, err := svc.Create(ctx, "  Ada@Example.COM ", "hash", "")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", info.Email)
	assert.Equal(t, RoleUser, info.Role)

	got, err := svc.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, info.ID, got.ID)

	exists, err := svc.EmailExists(ctx, "ada@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestService_CreateRejectsUnknownRole(t *testing.T) {
	_, err := NewService(newMemUsers()).Create(context.Background(), "a@b.io", "hash", "ROOT")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestService_GetMeRequiresCaller(t *testing.T) {
	_, err := NewService(newMemUsers()).GetMe(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestHandler_GetMe(t *testing.T) {
	svc := NewService(newMemUsers())
	info, err := svc.Create(context.Background(), "ada@b.io", "hash", RoleAdmin)
	require.NoError(t, err)

	r := chi.NewRouter()
	withCaller := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: r.Header.Get("X-Caller"),
				Role:   RoleUser,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	NewHandler(svc).RegisterRoutes(r, withCaller)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("X-Caller", info.ID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ada@b.io", body["email"])
	assert.Equal(t, RoleAdmin, body["role"])
	assert.NotContains(t, body, "passwordHash")

	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("X-Caller", "deleted-user")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
