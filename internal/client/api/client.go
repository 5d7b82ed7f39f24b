// Package api calls the insights backend on behalf of the dashboard client.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sangkips/insights/internal/domain/entity"
	"github.com/sangkips/insights/internal/domain/enum"
	"github.com/sangkips/insights/pkg/apperror"
	"go.uber.org/zap"
)

const (
	loginPath       = "/api/v1/auth/login"
	logoutPath      = "/api/v1/auth/logout"
	profilePath     = "/api/v1/profile"
	operationalPath = "/api/v1/functions/operational-metrics"
	marketingPath   = "/api/v1/functions/marketing-metrics"
	investorPath    = "/investor-metrics"
)

// User is the account returned by the login and profile endpoints.
type User struct {
	ID       uuid.UUID     `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Provider string        `json:"provider"`
	View     enum.ViewKind `json:"view"`
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    T      `json:"data"`
}

type loginData struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type profileData struct {
	User User `json:"user"`
}

// Client holds the bearer token of the signed-in user. It is safe for
// concurrent use.
type Client struct {
	http *resty.Client
	log  *zap.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: hc, log: log}
}

// SignIn exchanges credentials for a token and returns the caller identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	var out envelope[loginData]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&out).
		Post(loginPath)
	if err := check(resp, err, out.Error, out.Message); err != nil {
		return nil, err
	}
	if out.Data.AccessToken == "" {
		return nil, apperror.NewInternalError("login response carried no token")
	}

	c.mu.Lock()
	c.token = out.Data.AccessToken
	c.mu.Unlock()

	c.log.Debug("signed in", zap.String("email", out.Data.User.Email))
	return identityOf(out.Data.User), nil
}

// SignOut drops the token. The backend is told on a best-effort basis since
// tokens are stateless.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	if token == "" {
		return nil
	}
	resp, err := c.http.R().SetContext(ctx).SetAuthToken(token).Post(logoutPath)
	if err != nil {
		c.log.Warn("logout request failed", zap.Error(err))
		return nil
	}
	if resp.IsError() {
		c.log.Warn("logout rejected", zap.Int("status", resp.StatusCode()))
	}
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Profile returns the signed-in account.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out envelope[profileData]
	resp, err := c.authed(ctx).SetResult(&out).SetError(&out).Get(profilePath)
	if err := check(resp, err, out.Error, out.Message); err != nil {
		return nil, err
	}
	return &out.Data.User, nil
}

// OperationalMetrics runs one owner/manager metric query.
func (c *Client) OperationalMetrics(ctx context.Context, metric enum.MetricType) ([]entity.Row, error) {
	var out envelope[[]entity.Row]
	resp, err := c.authed(ctx).
		SetBody(map[string]string{"type": metric.String()}).
		SetResult(&out).
		SetError(&out).
		Post(operationalPath)
	if err := check(resp, err, out.Error, out.Message); err != nil {
		return nil, err
	}
	return nonNil(out.Data), nil
}

// MarketingMetrics returns the five marketing datasets.
func (c *Client) MarketingMetrics(ctx context.Context) (*entity.MarketingMetrics, error) {
	var out envelope[entity.MarketingMetrics]
	resp, err := c.authed(ctx).
		SetBody(map[string]any{}).
		SetResult(&out).
		SetError(&out).
		Post(marketingPath)
	if err := check(resp, err, out.Error, out.Message); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// InvestorMetrics calls the legacy investor endpoint. It sends no token.
func (c *Client) InvestorMetrics(ctx context.Context) (*entity.InvestorMetrics, error) {
	var out entity.InvestorMetrics
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(investorPath)
	if err != nil {
		return nil, fmt.Errorf("investor metrics: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apperror.NewAppError(resp.StatusCode(), apperror.KindInternal, bodyText(resp))
	}
	if out.KPIs == nil {
		out.KPIs = entity.Row{}
	}
	out.Trends = nonNil(out.Trends)
	out.ByCategory = nonNil(out.ByCategory)
	return &out, nil
}

func (c *Client) authed(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// check turns transport failures and error envelopes into errors. Envelope
// errors come back as *apperror.AppError carrying the backend kind.
func check(resp *resty.Response, err error, kind, message string) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	if message == "" {
		message = bodyText(resp)
	}
	if kind == "" {
		kind = string(kindForStatus(resp.StatusCode()))
	}
	return apperror.NewAppError(resp.StatusCode(), apperror.Kind(kind), message)
}

func kindForStatus(status int) apperror.Kind {
	switch status {
	case http.StatusUnauthorized:
		return apperror.KindUnauthenticated
	case http.StatusForbidden:
		return apperror.KindPermissionDenied
	case http.StatusBadRequest:
		return apperror.KindInvalidArgument
	case http.StatusNotFound:
		return apperror.KindNotFound
	default:
		return apperror.KindInternal
	}
}

func bodyText(resp *resty.Response) string {
	if s := strings.TrimSpace(resp.String()); s != "" && len(s) < 200 {
		return s
	}
	return http.StatusText(resp.StatusCode())
}

func identityOf(u User) *entity.Identity {
	return &entity.Identity{
		UserID:        u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Authenticated: true,
	}
}

func nonNil(rows []entity.Row) []entity.Row {
	if rows == nil {
		return []entity.Row{}
	}
	return rows
}
