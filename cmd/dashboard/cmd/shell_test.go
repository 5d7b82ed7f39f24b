package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sangkips/insights/internal/client/view"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		reply(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"access_token": "t",
			"user":         map[string]any{"email": body["email"], "name": "Demo"},
		}})
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true})
	})
	mux.HandleFunc("POST /api/v1/functions/operational-metrics", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"num_businesses": 4}}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestShell_LoginTabLogout(t *testing.T) {
	srv := fakeBackend(t)
	settings.Set("api-url", srv.URL)
	settings.Set("log-level", "error")
	settings.Set("email", "")
	t.Cleanup(func() { settings.Set("api-url", "http://localhost:8080") })

	c, err := newClient()
	require.NoError(t, err)
	defer c.close()

	in := strings.NewReader("open /dashboard\nlogin manager@demo.com pw\ntab trends\nshow\nbogus\nlogout\nquit\n")
	var out bytes.Buffer
	require.NoError(t, runShell(context.Background(), c, in, &out))

	got := out.String()
	assert.Contains(t, got, "at /login")
	assert.Contains(t, got, "signed in, at /dashboard")
	assert.Contains(t, got, "manager dashboard [Performance Trends]")
	assert.Contains(t, got, "timeSeries           ready    1 rows")
	assert.Contains(t, got, `unknown command "bogus"`)
	assert.Contains(t, got, "signed out, at /login")
}

func TestDescribe(t *testing.T) {
	var out bytes.Buffer
	describe(&out, view.Snapshot{
		Kind: enum.ViewMarketing,
		Datasets: []view.Dataset{
			{Key: enum.DatasetTopCities, Status: view.StatusReady, Rows: []entity.Row{{}, {}}},
			{Key: enum.DatasetUserSegments, Status: view.StatusLoading},
		},
		Banner: "a\nb",
	})

	assert.Equal(t,
		"marketing dashboard\n"+
			"  topCities            ready    2 rows\n"+
			"  userSegments         loading\n"+
			"  errors:\n    a\n    b\n",
		out.String())
}

func TestParseTabs(t *testing.T) {
	all, err := parseTabs([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, view.Tabs(), all)

	some, err := parseTabs([]string{"overview", "by-day"})
	require.NoError(t, err)
	assert.Equal(t, []view.Tab{view.TabOverview, view.TabByDay}, some)

	_, err = parseTabs([]string{"revenue"})
	assert.Error(t, err)
}
