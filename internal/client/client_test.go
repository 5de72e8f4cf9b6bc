// AngelaMos | 2026
// client_test.go

package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/internhub/internal/application"
	"github.com/carterperez-dev/internhub/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body) //nolint:errcheck
}

func newTestClient(t *testing.T, r http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresAbsoluteURL(t *testing.T) {
	_, err := New("localhost:5000/api")
	assert.Error(t, err)

	_, err = New("/api")
	assert.Error(t, err)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth []string
	r := chi.NewRouter()
	r.Get("/companies", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `[]`)
	})

	token := ""
	c := newTestClient(t, r, WithTokenSource(func(context.Context) (string, error) {
		return token, nil
	}))

	_, err := c.ListCompanies(context.Background())
	require.NoError(t, err)

	token = "abc"
	_, err = c.ListCompanies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, gotAuth)
}

func TestClient_TokenSourceError(t *testing.T) {
	called := false
	r := chi.NewRouter()
	r.Get("/companies", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	c := newTestClient(t, r, WithTokenSource(func(context.Context) (string, error) {
		return "", errors.New("disk gone")
	}))

	_, err := c.ListCompanies(context.Background())
	assert.ErrorContains(t, err, "disk gone")
	assert.False(t, called)
}

func TestClient_ApplyAndStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/applications/apply", func(w http.ResponseWriter, r *http.Request) {
		var req application.ApplyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusCreated, `{"id":"a-1","userId":"u-1","companyId":"`+req.CompanyID+`","status":"PENDING"}`)
	})
	r.Get("/applications/my", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"a-1","userId":"u-1","companyId":{"id":"c-1","name":"Stripe"},"status":"PENDING"}]`)
	})
	r.Patch("/applications/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var req application.UpdateStatusRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, `{"id":"`+chi.URLParam(r, "id")+`","companyId":"c-1","status":"`+req.Status+`"}`)
	})

	c := newTestClient(t, r)
	ctx := context.Background()

	app, err := c.Apply(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, app.Status)
	assert.Equal(t, "c-1", app.Company.ID())
	assert.False(t, app.Company.IsResolved())

	mine, err := c.MyApplications(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	listing, ok := mine[0].Company.Listing()
	require.True(t, ok)
	assert.Equal(t, "Stripe", listing.Name)

	updated, err := c.UpdateStatus(ctx, "a-1", application.StatusApplied)
	require.NoError(t, err)
	assert.Equal(t, "a-1", updated.ID)
	assert.Equal(t, application.StatusApplied, updated.Status)
}

func TestClient_DecodesAPIErrors(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/applications/apply", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message":"Application already exists","code":"CONFLICT"}`)
	})
	r.Get("/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Company not found","code":"NOT_FOUND"}`)
	})
	r.Get("/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := newTestClient(t, r)
	ctx := context.Background()

	_, err := c.Apply(ctx, "c-1")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "Application already exists", Message(err, "fallback"))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, core.CodeConflict, apiErr.Code)

	_, err = c.GetCompany(ctx, "missing")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))

	_, err = c.Me(ctx)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusText(http.StatusUnauthorized), Message(err, "fallback"))
}

func TestMessage_FallbackForTransportErrors(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, "try again", Message(err, "try again"))
	assert.False(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_PathEscapesIDs(t *testing.T) {
	var gotPath string
	r := chi.NewRouter()
	r.Delete("/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, `{"message":"Company deleted successfully"}`)
	})

	c := newTestClient(t, r)
	require.NoError(t, c.DeleteCompany(context.Background(), "a b"))
	assert.Equal(t, "/companies/a%20b", gotPath)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api 400 CONFLICT: dup", (&APIError{Status: 400, Code: "CONFLICT", Message: "dup"}).Error())
	assert.Equal(t, "api 502: Bad Gateway", (&APIError{Status: 502, Message: "Bad Gateway"}).Error())
}
