// Package httpclient is the single choke point for calls to the rating
// backend. It attaches the bearer token, normalizes every failure into an
// *apierr.Error and ends the session when the backend rejects it.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/config"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/session"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const LoginRoute = "/login"

// Navigator moves the UI to another screen. The client only uses it to send
// the user back to the login screen after the backend rejects the session.
type Navigator interface {
	Location() string
	Navigate(route string)
}

// Request is one logical call. Tag names the caller in failure logs.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Tag    string
}

type Client struct {
	baseURL     string
	http        *http.Client
	store       session.Store
	nav         Navigator
	publicPaths []string
	userAgent   string
	limiter     *rate.Limiter
	log         *logger.Logger
	now         func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

func WithPublicPaths(paths ...string) Option {
	return func(c *Client) { c.publicPaths = paths }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit spaces out requests so bursts of detail lookups stay under
// the backend's limit. Waiting is not retrying: a rejected call still fails.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(c *Client) {
		if requests <= 0 || window <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: 10 * time.Second},
		store:       store,
		publicPaths: []string{apierr.LoginPath, "/auth/register"},
		userAgent:   DefaultUserAgent(),
		log:         logger.New("api-client"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig wires the client from the loaded configuration.
func NewFromConfig(cfg *config.Config, store session.Store, opts ...Option) *Client {
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		WithPublicPaths(cfg.API.PublicPaths...),
		WithUserAgent(cfg.API.UserAgent),
		WithRateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window),
	}
	return New(cfg.API.BaseURL, store, append(base, opts...)...)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) UserAgent() string {
	return c.userAgent
}

// IsPublic reports whether path must be sent without credentials.
func (c *Client) IsPublic(path string) bool {
	for _, p := range c.publicPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) ([]byte, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Query: query, Body: body})
}

// GetJSON performs a GET and decodes the JSON body into dest.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	return c.DoJSON(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, dest)
}

// DoJSON dispatches req and decodes the JSON body into dest. An empty body
// leaves dest untouched.
func (c *Client) DoJSON(ctx context.Context, req Request, dest any) error {
	return c.DoDecode(ctx, req, func(body []byte) error {
		if dest == nil || len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		return json.Unmarshal(body, dest)
	})
}

// DoDecode dispatches req and hands a success body to decode. A body that
// does not decode fails the call like a transport error would: normalized,
// logged and returned as *apierr.Error.
func (c *Client) DoDecode(ctx context.Context, req Request, decode func([]byte) error) error {
	body, env, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if err := decode(body); err != nil {
		env.Cause = fmt.Errorf("decode response: %w", err)
		return c.fail(ctx, req, env)
	}
	return nil
}

// Do dispatches req and returns the raw response body. Every failure comes
// back as *apierr.Error. Nothing is retried.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	body, _, err := c.do(ctx, req)
	return body, err
}

func (c *Client) do(ctx context.Context, req Request) ([]byte, *apierr.Envelope, error) {
	requestID := uuid.NewString()
	env := &apierr.Envelope{Method: req.Method, Path: req.Path, RequestID: requestID}
	start := c.now()

	httpReq, err := c.build(ctx, req, requestID)
	if err != nil {
		env.Cause = err
		return nil, env, c.fail(ctx, req, env)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			env.Cause = fmt.Errorf("throttle: %w", err)
			return nil, env, c.fail(ctx, req, env)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		env.Cause = err
		return nil, env, c.fail(ctx, req, env)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		env.Cause = fmt.Errorf("read response: %w", err)
		return nil, env, c.fail(ctx, req, env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		env.Status = resp.StatusCode
		env.Body = body
		return nil, env, c.fail(ctx, req, env)
	}

	c.log.DebugFields("API response", logger.Fields{
		"context":    req.Tag,
		"method":     httpReq.Method,
		"path":       req.Path,
		"request_id": requestID,
		"status":     resp.StatusCode,
		"elapsed":    c.now().Sub(start).Round(time.Millisecond).String(),
	})
	return body, env, nil
}

func (c *Client) build(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if !c.IsPublic(req.Path) {
		if token := c.token(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

func (c *Client) token(ctx context.Context) string {
	s, err := c.store.Get(ctx)
	if err != nil {
		c.log.Warn("Failed to read session: %v", err)
		return ""
	}
	if s == nil {
		return ""
	}
	return s.Token
}

// fail normalizes, logs and applies the 401 side effects.
func (c *Client) fail(ctx context.Context, req Request, env *apierr.Envelope) *apierr.Error {
	apiErr := apierr.Normalize(env)
	c.logFailure(req, apiErr)

	if apiErr.StatusCode == http.StatusUnauthorized {
		// Stale remnants go even when the 401 came from the login endpoint.
		if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
			c.log.Warn("Failed to clear session after 401: %v", err)
		}
		if !apiErr.IsLoginFailure() {
			c.toLogin()
		}
	}

	return apiErr
}

func (c *Client) toLogin() {
	if c.nav == nil {
		return
	}
	if strings.Contains(c.nav.Location(), LoginRoute) {
		return
	}
	c.nav.Navigate(LoginRoute)
}

func (c *Client) environment() Environment {
	env := Environment{UserAgent: c.userAgent}
	if c.nav != nil {
		env.Location = c.nav.Location()
	}
	env.Client, env.OS = describeAgent(c.userAgent)
	return env
}

func (c *Client) logFailure(req Request, apiErr *apierr.Error) {
	tag := req.Tag
	if tag == "" {
		tag = "response"
	}
	env := c.environment()

	fields := logger.Fields{
		"context":    tag,
		"method":     req.Method,
		"path":       apiErr.Path,
		"request_id": apiErr.RequestID,
		"status":     apiErr.StatusCode,
		"kind":       string(apiErr.Kind),
		"code":       apiErr.Code,
		"message":    apiErr.Message,
		"timestamp":  apiErr.Timestamp,
		"location":   env.Location,
		"user_agent": env.UserAgent,
		"client":     env.Client,
		"os":         env.OS,
	}
	if apiErr.Details != nil {
		fields["details"] = truncate(fmt.Sprintf("%v", apiErr.Details), 200)
	}

	c.log.ErrorFields("API error", fields)
}

// truncate caps s at maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
