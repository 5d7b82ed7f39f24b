package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/insights/internal/application/service"
	"github.com/sangkips/insights/internal/config"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/internal/presentation/http/handler"
	"github.com/sangkips/insights/pkg/oauth"
	"github.com/sangkips/insights/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubAnalytics struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (s *stubAnalytics) hit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.fail
}

func (s *stubAnalytics) OperationalMetrics(_ context.Context, m enum.MetricType) ([]entity.Row, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	if m == enum.MetricTypeKPIs {
		return []entity.Row{{
			"num_businesses": int64(12),
			"total_reviews":  int64(3400),
			"avg_rating":     3.87,
			"total_checkins": int64(9100),
			"avg_sentiment":  0.412,
		}}, nil
	}
	return []entity.Row{}, nil
}

func (s *stubAnalytics) MarketingDataset(context.Context, enum.DatasetKey) ([]entity.Row, error) {
	return []entity.Row{{"n": int64(1)}}, s.hit()
}

func (s *stubAnalytics) InvestorKPIs(context.Context) (entity.Row, error) {
	return entity.Row{"total_businesses": int64(5)}, s.hit()
}

func (s *stubAnalytics) InvestorTrends(context.Context) ([]entity.Row, error) {
	return []entity.Row{}, s.hit()
}

func (s *stubAnalytics) InvestorByCategory(context.Context) ([]entity.Row, error) {
	return []entity.Row{}, s.hit()
}

type stubUsers struct{ users []*entity.User }

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	u.ID = uuid.New()
	s.users = append(s.users, u)
	return nil
}

func (s *stubUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range s.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (s *stubUsers) GetByProviderID(context.Context, string, string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUsers) Update(context.Context, *entity.User) error { return nil }

type testServer struct {
	router    *gin.Engine
	jwt       *utils.JWTManager
	analytics *stubAnalytics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.Config{
		App:       config.AppConfig{Name: "insights-api"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	analytics := &stubAnalytics{}

	hash, err := utils.HashPassword("demo1234")
	require.NoError(t, err)
	users := &stubUsers{users: []*entity.User{{ID: uuid.New(), Name: "Morgan", Email: "manager@demo.com", Password: hash}}}

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	router := Setup(&Handlers{
		Auth: handler.NewAuthHandler(service.NewAuthService(users, jwt, log), oauth.NewGoogleProvider(oauth.GoogleConfig{}), log),
		Metrics: handler.NewMetricsHandler(
			service.NewOperationalMetricsService(analytics, log),
			service.NewMarketingMetricsService(analytics, log),
		),
		Investor: handler.NewInvestorHandler(service.NewInvestorMetricsService(analytics, log)),
	}, &Deps{JWTManager: jwt, Cfg: cfg, Log: log, Done: done})

	return &testServer{router: router, jwt: jwt, analytics: analytics}
}

func (s *testServer) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(uuid.New(), email, "")
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, token, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestOperationalMetrics_KPIs(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/functions/operational-metrics", s.token(t, "manager@demo.com"), `{"type":"kpis"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rows))
	require.Len(t, rows, 1)
	for _, k := range []string{"num_businesses", "total_reviews", "avg_rating", "total_checkins", "avg_sentiment"} {
		assert.Contains(t, rows[0], k)
	}
}

func TestOperationalMetrics_BogusTypeRunsNoQuery(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/functions/operational-metrics", s.token(t, "manager@demo.com"), `{"type":"bogus"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid-argument", decode(t, w).Error)
	assert.Zero(t, s.analytics.calls)
}

func TestOperationalMetrics_Anonymous(t *testing.T) {
	s := newTestServer(t)

	for _, tok := range []string{"", "not-a-jwt"} {
		w := s.do(http.MethodPost, "/api/v1/functions/operational-metrics", tok, `{"type":"kpis"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthenticated", decode(t, w).Error)
	}
	assert.Zero(t, s.analytics.calls)
}

func TestOperationalMetrics_QueryErrorDoesNotLeak(t *testing.T) {
	s := newTestServer(t)
	s.analytics.fail = errors.New(`syntax error at or near "SELEC" in SELECT * FROM managers.dim_business`)

	w := s.do(http.MethodPost, "/api/v1/functions/operational-metrics", s.token(t, "manager@demo.com"), `{"type":"kpis"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", decode(t, w).Error)
	assert.NotContains(t, w.Body.String(), "dim_business")
	assert.NotContains(t, w.Body.String(), "SELEC")
}

func TestMarketingMetrics_AllowList(t *testing.T) {
	s := newTestServer(t)

	denied := s.do(http.MethodPost, "/api/v1/functions/marketing-metrics", s.token(t, "manager@demo.com"), "")
	assert.Equal(t, http.StatusForbidden, denied.Code)
	assert.Equal(t, "permission-denied", decode(t, denied).Error)
	assert.Zero(t, s.analytics.calls)

	ok := s.do(http.MethodPost, "/api/v1/functions/marketing-metrics", s.token(t, "marketing@demo.com"), "")
	require.Equal(t, http.StatusOK, ok.Code)
	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decode(t, ok).Data, &data))
	for _, k := range enum.MarketingDatasets() {
		assert.Contains(t, data, k.String())
	}
}

func TestInvestorMetrics_LegacyContract(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/investor-metrics", "", "", "Origin", "https://investors.example.com")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "kpis")
	assert.Contains(t, body, "trends")
	assert.Contains(t, body, "byCategory")
}

func TestInvestorMetrics_PlainTextFailure(t *testing.T) {
	s := newTestServer(t)
	s.analytics.fail = errors.New("warehouse unavailable")

	w := s.do(http.MethodGet, "/investor-metrics", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.NotContains(t, w.Body.String(), "warehouse")
}

func TestLoginThenProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"manager@demo.com","password":"demo1234"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
		User        struct {
			View string `json:"view"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &login))
	assert.Equal(t, "manager", login.User.View)

	profile := s.do(http.MethodGet, "/api/v1/profile", login.AccessToken, "")
	assert.Equal(t, http.StatusOK, profile.Code)
	assert.True(t, bytes.Contains(profile.Body.Bytes(), []byte("manager@demo.com")))

	bad := s.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"manager@demo.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/profile", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "insights-api")
}
