package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/cache"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/Varun5711/cinerate/internal/models"
	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/Varun5711/cinerate/internal/session"
	"github.com/golang-jwt/jwt/v5"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*API, *session.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	client := httpclient.New(server.URL, store,
		httpclient.WithLogger(logger.NewWithWriter("test", io.Discard, logger.DEBUG)),
	)
	detailCache := cache.NewDetailCache(16, time.Minute, nil, 0)
	return New(client, detailCache, models.Images{}), store
}

func testToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "ana@example.com",
		"name":     "Ana",
		"nickname": "ana",
		"role":     "USER",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestAuth_Login(t *testing.T) {
	token := testToken(t)
	var gotAuth string
	var gotBody user.LoginRequest

	a, store := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(token)
	})

	s, err := a.Auth.Login(context.Background(), " ana@example.com ", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no credential on login, got %q", gotAuth)
	}
	if gotBody.Email != "ana@example.com" || gotBody.Password != "pw" {
		t.Errorf("unexpected login body %+v", gotBody)
	}
	if s.User.Name != "Ana" || s.User.Handle != "ana" {
		t.Errorf("unexpected session user %+v", s.User)
	}

	stored, _ := store.Get(context.Background())
	if stored == nil || stored.Token != token {
		t.Fatal("expected session to be stored")
	}
	if !a.Auth.IsAuthenticated(context.Background()) {
		t.Error("expected authenticated")
	}
	if a.Auth.IsAdmin(context.Background()) {
		t.Error("expected non-admin user")
	}
}

func TestAuth_LoginPlainTextToken(t *testing.T) {
	token := testToken(t)
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(token + "\n"))
	})

	s, err := a.Auth.Login(context.Background(), "ana@example.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Token != token {
		t.Error("expected raw token to be accepted")
	}
}

func TestAuth_LoginMalformedToken(t *testing.T) {
	a, store := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"garbage"`))
	})

	_, err := a.Auth.Login(context.Background(), "ana@example.com", "pw")
	if apierr.KindOf(err) != apierr.KindUnknown {
		t.Errorf("expected unknown error, got %v", err)
	}
	if s, _ := store.Get(context.Background()); s != nil {
		t.Error("expected nothing stored")
	}
}

func TestAuth_LoginBadCredentials(t *testing.T) {
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := a.Auth.Login(context.Background(), "ana@example.com", "wrong")
	if !apierr.IsLoginFailure(err) {
		t.Errorf("expected login failure, got %v", err)
	}
}

func TestAuth_Register(t *testing.T) {
	var got map[string]string
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("User registered successfully"))
	})

	msg, err := a.Auth.Register(context.Background(), user.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Nickname: " ana ", Password: "secret", ConfirmPassword: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "User registered successfully" {
		t.Errorf("unexpected confirmation %q", msg)
	}
	if got["nickname"] != "ana" {
		t.Errorf("expected trimmed nickname, got %q", got["nickname"])
	}
	if len(got) != 4 {
		t.Errorf("expected only name, email, nickname and password in the body, got %v", got)
	}
}

func TestCatalog_ListAndSearch(t *testing.T) {
	var gotPath, gotQuery string
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":550,"title":"Fight Club","release_date":"1999-10-15"}]`))
	})
	ctx := context.Background()

	movies, err := a.Movies.TopRated(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/movies/top-rated" || gotQuery != "page=2" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if len(movies) != 1 || movies[0].Title != "Fight Club" || movies[0].Year() != "1999" {
		t.Errorf("unexpected movies %+v", movies)
	}

	if _, err := a.Series.Search(ctx, "the office", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/series/search" || gotQuery != "page=1&query=the+office" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery)
	}
}

func TestAuth_RegisterRejectsLocally(t *testing.T) {
	var calls int32
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := a.Auth.Register(context.Background(), user.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Nickname: "ana", Password: "secret", ConfirmPassword: "secreT",
	})
	if apierr.KindOf(err) != apierr.KindValidation {
		t.Errorf("expected validation error for mismatched passwords, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestCatalog_LocalRejections(t *testing.T) {
	var calls int32
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	ctx := context.Background()

	if _, err := a.Movies.Search(ctx, "   ", 1); apierr.KindOf(err) != apierr.KindValidation {
		t.Errorf("expected validation error for empty search, got %v", err)
	}
	if _, err := a.Movies.List(ctx, CategoryAiringToday, 1); apierr.KindOf(err) != apierr.KindValidation {
		t.Errorf("expected validation error for series-only category, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestCatalog_DetailsAreCached(t *testing.T) {
	var calls int32
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/series/1399" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":1399,"name":"Game of Thrones","number_of_seasons":8}`))
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		s, err := a.Series.Details(ctx, "1399")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Name != "Game of Thrones" || s.NumberOfSeasons != 8 {
			t.Errorf("unexpected series %+v", s)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected one request, got %d", n)
	}
}

func TestRatings_Rate(t *testing.T) {
	var got map[string]string
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rate/series" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
	})

	err := a.Ratings.Rate(context.Background(), RateRequest{
		Kind: models.KindSeries, SubjectID: "1399", Value: 7.5,
		Title: "Game of Thrones", PosterPath: "/got.jpg", Comment: "  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"serieId": "1399", "rating": "7.5", "title": "Game of Thrones", "poster_path": "/got.jpg"}
	if len(got) != len(want) {
		t.Errorf("expected params %v, got %v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s: expected %q, got %q", k, v, got[k])
		}
	}
}

func TestRatings_Find(t *testing.T) {
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"title":"Heat","movieId":"949","myVote":"8.5","comment":"tense"},
			{"id":2,"title":"Alien","movieId":348,"myVote":"9"}
		]`))
	})
	ctx := context.Background()

	found := a.Ratings.FindMovie(ctx, "348")
	if found == nil || found.Title != "Alien" || found.Vote() != 9 {
		t.Errorf("unexpected match %+v", found)
	}
	if a.Ratings.FindMovie(ctx, "1") != nil {
		t.Error("expected no match")
	}

	existing := a.Ratings.Existing(ctx, models.KindMovie, "949")
	if existing == nil || existing.Vote != 8.5 || existing.Comment != "tense" {
		t.Errorf("unexpected existing rating %+v", existing)
	}
}

func TestRatings_FindFailureReadsAsUnrated(t *testing.T) {
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if a.Ratings.FindSeries(context.Background(), "1") != nil {
		t.Error("expected nil on failure")
	}
}

func TestFavorites(t *testing.T) {
	favorite := false
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/favorite/movies/":
			if r.URL.Query().Get("movieId") != "550" {
				t.Errorf("unexpected toggle query %s", r.URL.RawQuery)
			}
			favorite = !favorite
		case r.URL.Path == "/favorite/movies/status":
			json.NewEncoder(w).Encode(favorite)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	ctx := context.Background()

	if ok, err := a.Favorites.Status(ctx, models.KindMovie, "550"); err != nil || ok {
		t.Fatalf("expected not favorite, got %v, %v", ok, err)
	}
	if err := a.Favorites.Toggle(ctx, models.KindMovie, "550"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := a.Favorites.Status(ctx, models.KindMovie, "550"); err != nil || !ok {
		t.Errorf("expected favorite, got %v, %v", ok, err)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"true", true},
		{"false", false},
		{`"true"`, true},
		{" true\n", true},
		{"", false},
	}
	for _, tt := range tests {
		got, err := parseBool([]byte(tt.body))
		if err != nil || got != tt.want {
			t.Errorf("parseBool(%q) = %v, %v; want %v", tt.body, got, err, tt.want)
		}
	}

	if _, err := parseBool([]byte("maybe")); err == nil {
		t.Error("expected an error for a non-boolean body")
	}
}

func TestFavorites_UndecodableStatusIsAFailure(t *testing.T) {
	a, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("maybe"))
	})

	ok, err := a.Favorites.Status(context.Background(), models.KindSeries, "1399")
	if ok || apierr.KindOf(err) != apierr.KindUnknown {
		t.Errorf("expected unknown failure, got %v, %v", ok, err)
	}
}
