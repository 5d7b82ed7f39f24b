package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "tok-123"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var authHeaders []string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false, "message": "Invalid email or password", "error": "unauthenticated",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"access_token": testToken,
				"user": map[string]any{
					"id":    "6f1c1c56-8d0e-4b1e-9d5a-3f0c2e9b7a11",
					"name":  "Morgan",
					"email": body["email"],
					"view":  "manager",
				},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/functions/operational-metrics", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false, "message": "Authentication required", "error": "unauthenticated",
			})
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []map[string]any{{"metric": body["type"], "total_reviews": 12}},
		})
	})
	mux.HandleFunc("POST /api/v1/functions/marketing-metrics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false, "message": "You do not have permission to access this data", "error": "permission-denied",
		})
	})
	mux.HandleFunc("GET /investor-metrics", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"kpis":       map[string]any{"total_businesses": 150},
			"trends":     []map[string]any{{"period": "2024-01-01"}},
			"byCategory": nil,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &authHeaders
}

func TestClient_SignInThenOperational(t *testing.T) {
	srv, headers := newBackend(t)
	c := New(srv.URL, 5*time.Second, zap.NewNop())
	ctx := context.Background()

	ident, err := c.SignIn(ctx, "manager@demo.com", "secret")
	require.NoError(t, err)
	assert.True(t, ident.IsAuthenticated())
	assert.Equal(t, "manager@demo.com", ident.Email)
	assert.Equal(t, testToken, c.Token())

	rows, err := c.OperationalMetrics(ctx, enum.MetricTypeTimeSeries)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "timeSeries", rows[0]["metric"])
	assert.Equal(t, float64(12), rows[0]["total_reviews"])
	assert.Equal(t, []string{"Bearer " + testToken}, *headers)
}

func TestClient_SignInRejected(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, 5*time.Second, nil)

	_, err := c.SignIn(context.Background(), "manager@demo.com", "wrong")

	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
	assert.Empty(t, c.Token())
}

func TestClient_ErrorKindsSurface(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, 5*time.Second, nil)
	ctx := context.Background()

	_, err := c.OperationalMetrics(ctx, enum.MetricTypeKPIs)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = c.MarketingMetrics(ctx)
	assert.Equal(t, apperror.KindPermissionDenied, apperror.KindOf(err))
	assert.EqualError(t, err, "You do not have permission to access this data")
}

func TestClient_InvestorMetricsSendsNoToken(t *testing.T) {
	srv, headers := newBackend(t)
	c := New(srv.URL, 5*time.Second, nil)
	ctx := context.Background()

	_, err := c.SignIn(ctx, "investor@demo.com", "secret")
	require.NoError(t, err)

	out, err := c.InvestorMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(150), out.KPIs["total_businesses"])
	assert.Len(t, out.Trends, 1)
	assert.NotNil(t, out.ByCategory)
	assert.Equal(t, []string{""}, *headers)
}

func TestClient_InvestorMetricsPlainTextFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := New(srv.URL, 5*time.Second, nil)

	_, err := c.InvestorMetrics(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.EqualError(t, err, "Internal Server Error")
}

func TestClient_SignOutClearsToken(t *testing.T) {
	srv, _ := newBackend(t)
	c := New(srv.URL, 5*time.Second, nil)
	ctx := context.Background()

	_, err := c.SignIn(ctx, "manager@demo.com", "secret")
	require.NoError(t, err)

	require.NoError(t, c.SignOut(ctx))
	assert.Empty(t, c.Token())
}
