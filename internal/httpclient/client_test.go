package httpclient

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/session"
	"github.com/golang-jwt/jwt/v5"
)

type fakeNavigator struct {
	mu       sync.Mutex
	location string
	visits   []string
}

func (f *fakeNavigator) Location() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location
}

func (f *fakeNavigator) Navigate(route string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visits = append(f.visits, route)
	f.location = route
}

func (f *fakeNavigator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visits)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, store session.Store, nav Navigator) (*Client, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	c := New(server.URL, store,
		WithNavigator(nav),
		WithLogger(logger.NewWithWriter("test", &logs, logger.DEBUG)),
	)
	return c, &logs
}

func loggedIn(t *testing.T, token string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore()
	if err := store.Set(context.Background(), &session.Session{Token: token}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestDo_AttachesBearerToProtectedPaths(t *testing.T) {
	var gotAuth, gotUA, gotRequestID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}, loggedIn(t, "tok-123"), &fakeNavigator{location: "/movies"})

	if _, err := c.Get(context.Background(), "/movies/popular", url.Values{"page": {"1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
	if !strings.Contains(gotUA, "cinerate/") {
		t.Errorf("expected client user agent, got %q", gotUA)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestDo_NeverAttachesBearerToPublicPaths(t *testing.T) {
	for _, path := range []string{"/auth/login", "/auth/register"} {
		t.Run(path, func(t *testing.T) {
			var gotAuth string
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`"ok"`))
			}, loggedIn(t, "tok-123"), nil)

			if _, err := c.Post(context.Background(), path, nil, map[string]string{"email": "a@b.c"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotAuth != "" {
				t.Errorf("expected no Authorization header on %s, got %q", path, gotAuth)
			}
		})
	}
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var hadAuth bool
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}, session.NewMemoryStore(), nil)

	if _, err := c.Get(context.Background(), "/rate/movies", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadAuth {
		t.Error("expected request without credentials")
	}
}

func TestDo_ReturnsRawBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "the thing" || r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":1,"title":"The Thing"}]`))
	}, session.NewMemoryStore(), nil)

	body, err := c.Get(context.Background(), "/movies/search", url.Values{"query": {"the thing"}, "page": {"2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `[{"id":1,"title":"The Thing"}]` {
		t.Errorf("expected body unchanged, got %s", body)
	}
}

func TestDo_PostSendsJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %q", r.Header.Get("Content-Type"))
		}
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		if buf.String() != `{"email":"a@b.c"}` {
			t.Errorf("unexpected body %s", buf.String())
		}
	}, session.NewMemoryStore(), nil)

	if _, err := c.Post(context.Background(), "/auth/login", nil, map[string]string{"email": "a@b.c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_401OnProtectedPathClearsSessionAndNavigates(t *testing.T) {
	store := loggedIn(t, "tok")
	nav := &fakeNavigator{location: "/movies"}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, store, nav)

	_, err := c.Get(context.Background(), "/favorite/movies/", nil)

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if apiErr.Message != apierr.MessageUnauthorized {
		t.Errorf("expected unauthorized message, got %q", apiErr.Message)
	}
	if s, _ := store.Get(context.Background()); s != nil {
		t.Error("expected session to be cleared")
	}
	if nav.count() != 1 || nav.Location() != "/login" {
		t.Errorf("expected one navigation to /login, got %v", nav.visits)
	}
}

func TestDo_401WhileOnLoginScreenDoesNotNavigate(t *testing.T) {
	store := loggedIn(t, "tok")
	nav := &fakeNavigator{location: "/login"}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, store, nav)

	c.Get(context.Background(), "/movies/popular", nil)

	if s, _ := store.Get(context.Background()); s != nil {
		t.Error("expected session to be cleared")
	}
	if nav.count() != 0 {
		t.Errorf("expected no navigation from the login screen, got %v", nav.visits)
	}
}

func TestDo_401OnLoginClearsRemnantsWithoutNavigation(t *testing.T) {
	store := loggedIn(t, "stale")
	nav := &fakeNavigator{location: "/register"}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, store, nav)

	_, err := c.Post(context.Background(), "/auth/login", nil, map[string]string{"email": "a@b.c"})

	if !apierr.IsLoginFailure(err) {
		t.Fatalf("expected login failure, got %v", err)
	}
	apiErr, _ := apierr.As(err)
	if apiErr.Message != apierr.MessageBadCredentials {
		t.Errorf("expected bad credentials message, got %q", apiErr.Message)
	}
	if s, _ := store.Get(context.Background()); s != nil {
		t.Error("expected stale session remnants to be cleared")
	}
	if nav.count() != 0 {
		t.Errorf("expected no navigation, got %v", nav.visits)
	}
}

func TestDo_NormalizesHTTPFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apierr.Kind
		wantMsg  string
	}{
		{"message body", 404, `{"message":"movie not found"}`, apierr.KindValidation, "movie not found"},
		{"string body", 409, `"already favorited"`, apierr.KindValidation, "already favorited"},
		{"table fallback", 429, ``, apierr.KindValidation, apierr.MessageRateLimited},
		{"server", 500, ``, apierr.KindServer, apierr.MessageServerError},
		{"unavailable", 503, ``, apierr.KindServer, apierr.MessageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := loggedIn(t, "tok")
			nav := &fakeNavigator{location: "/movies"}
			c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, store, nav)

			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/movies/1", Tag: "details"})

			apiErr, ok := apierr.As(err)
			if !ok {
				t.Fatalf("expected *apierr.Error, got %T", err)
			}
			if apiErr.Kind != tt.wantKind || apiErr.Message != tt.wantMsg || apiErr.StatusCode != tt.status {
				t.Errorf("got %+v", apiErr)
			}
			if s, _ := store.Get(context.Background()); s == nil {
				t.Error("expected non-401 failure to keep the session")
			}
			if nav.count() != 0 {
				t.Error("expected no navigation for non-401 failure")
			}
			if !strings.Contains(logs.String(), "context=details") || !strings.Contains(logs.String(), "location=/movies") {
				t.Errorf("expected structured failure log, got %q", logs.String())
			}
		})
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := New(addr, session.NewMemoryStore(), WithLogger(logger.NewWithWriter("test", &bytes.Buffer{}, logger.ERROR)))
	_, err := c.Get(context.Background(), "/movies/popular", nil)

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if apiErr.Kind != apierr.KindNetwork || apiErr.StatusCode != 0 {
		t.Errorf("expected network failure with status 0, got %+v", apiErr)
	}
}

func TestDo_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	c := New(server.URL, session.NewMemoryStore(),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
		WithLogger(logger.NewWithWriter("test", &bytes.Buffer{}, logger.ERROR)),
	)
	_, err := c.Get(context.Background(), "/movies/popular", nil)

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if apiErr.Kind != apierr.KindNetwork || apiErr.Message != apierr.MessageTimeout {
		t.Errorf("expected network timeout, got %+v", apiErr)
	}
}

func TestGetJSON_DecodeFailureIsNormalized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}, session.NewMemoryStore(), nil)

	var out []int
	err := c.GetJSON(context.Background(), "/rate/movies", nil, &out)

	if apierr.KindOf(err) != apierr.KindUnknown {
		t.Errorf("expected unknown kind for undecodable body, got %v", err)
	}
}

func TestDoJSON_DecodeFailureIsLogged(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}, session.NewMemoryStore(), nil)

	var out map[string]any
	err := c.DoJSON(context.Background(), Request{Path: "/movies/550", Tag: "details"}, &out)

	apiErr, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected *apierr.Error, got %T", err)
	}
	if apiErr.RequestID == "" || apiErr.Path != "/movies/550" {
		t.Errorf("expected request id and path on the error, got %+v", apiErr)
	}
	line := logs.String()
	if !strings.Contains(line, "API error") || !strings.Contains(line, "context=details") {
		t.Errorf("expected a failure log entry, got %q", line)
	}
	if !strings.Contains(line, "request_id="+apiErr.RequestID) {
		t.Errorf("expected the request id in the log, got %q", line)
	}
}

func TestDo_SuccessIsTracedAtDebug(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, session.NewMemoryStore(), nil)

	if _, err := c.Do(context.Background(), Request{Path: "/movies/popular", Tag: "popular"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := logs.String()
	if !strings.Contains(line, "DEBUG") || !strings.Contains(line, "API response") || !strings.Contains(line, "status=200") {
		t.Errorf("expected a debug trace, got %q", line)
	}
}

func TestIsPublic(t *testing.T) {
	c := New("http://example.com", session.NewMemoryStore())

	if !c.IsPublic("/auth/login") || !c.IsPublic("/auth/register") {
		t.Error("expected auth endpoints to be public")
	}
	if c.IsPublic("/movies/popular") {
		t.Error("expected catalog endpoint to be protected")
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "ana@example.com",
		"nickname": "ana",
		"exp":      exp.Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestEstablishAndCurrent(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	c := New("http://example.com", store)

	token := signedToken(t, time.Now().Add(time.Hour))
	s, err := c.Establish(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.User.Handle != "ana" {
		t.Errorf("expected handle from claims, got %q", s.User.Handle)
	}

	current, err := c.Current(ctx)
	if err != nil || current == nil || current.Token != token {
		t.Fatalf("expected current session, got %+v, %v", current, err)
	}
}

func TestCurrent_ExpiredTokenClearedSilently(t *testing.T) {
	ctx := context.Background()
	store := loggedIn(t, signedToken(t, time.Now().Add(-time.Minute)))
	c := New("http://example.com", store, WithLogger(logger.NewWithWriter("test", &bytes.Buffer{}, logger.ERROR)))

	current, err := c.Current(ctx)
	if err != nil || current != nil {
		t.Errorf("expected (nil, nil) for expired token, got %+v, %v", current, err)
	}
	if s, _ := store.Get(ctx); s != nil {
		t.Error("expected expired session to be cleared")
	}
}

func TestCurrent_MalformedTokenClearedSilently(t *testing.T) {
	ctx := context.Background()
	store := loggedIn(t, "garbage")
	c := New("http://example.com", store, WithLogger(logger.NewWithWriter("test", &bytes.Buffer{}, logger.ERROR)))

	current, err := c.Current(ctx)
	if err != nil || current != nil {
		t.Errorf("expected (nil, nil) for malformed token, got %+v, %v", current, err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := loggedIn(t, "tok")
	nav := &fakeNavigator{location: "/dashboard"}
	c := New("http://example.com", store, WithNavigator(nav))

	if err := c.Logout(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := store.Get(ctx); s != nil {
		t.Error("expected session to be cleared")
	}
	if nav.Location() != "/login" {
		t.Errorf("expected navigation to /login, got %q", nav.Location())
	}
}

func TestWithRateLimit_Disabled(t *testing.T) {
	c := New("http://example.com", session.NewMemoryStore(), WithRateLimit(0, time.Second))
	if c.limiter != nil {
		t.Error("expected no limiter for non-positive limit")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"ação é ótima", 8, "açã..."},
		{"日本語テキスト", 10, "日本..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) || len(got) > tt.max {
			t.Errorf("truncate(%q, %d) = %q is not valid or too long", tt.in, tt.max, got)
		}
	}
}
