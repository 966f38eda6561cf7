package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		path   string
		want   string
	}{
		{"bad request", 400, "/movies/popular", MessageBadRequest},
		{"login 401", 401, "/auth/login", MessageBadCredentials},
		{"other 401", 401, "/rate/movies", MessageUnauthorized},
		{"register 401", 401, "/auth/register", MessageUnauthorized},
		{"forbidden", 403, "/favorite/movies/", MessageForbidden},
		{"not found", 404, "/movies/1", MessageNotFound},
		{"conflict", 409, "/auth/register", MessageConflict},
		{"unprocessable", 422, "/auth/register", MessageUnprocessable},
		{"rate limited", 429, "/movies/search", MessageRateLimited},
		{"internal", 500, "/movies/popular", MessageServerError},
		{"unavailable", 503, "/movies/popular", MessageUnavailable},
		{"unlisted 4xx", 418, "/movies/popular", MessageClientError},
		{"unlisted 5xx", 502, "/movies/popular", MessageServerError},
		{"not an error", 302, "/movies/popular", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusMessage(tt.status, tt.path); got != tt.want {
				t.Errorf("StatusMessage(%d, %q) = %q, want %q", tt.status, tt.path, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://localhost:1", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}

	tests := []struct {
		name string
		env  Envelope
		want Kind
	}{
		{"no response", Envelope{Cause: refused}, KindNetwork},
		{"timeout", Envelope{Cause: fmt.Errorf("dispatch: %w", context.DeadlineExceeded)}, KindNetwork},
		{"4xx", Envelope{Status: 404}, KindValidation},
		{"429", Envelope{Status: 429}, KindValidation},
		{"5xx", Envelope{Status: 500}, KindServer},
		{"503", Envelope{Status: 503}, KindServer},
		{"local failure", Envelope{Cause: errors.New("marshal body: bad value")}, KindUnknown},
		{"nothing at all", Envelope{}, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&tt.env); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalize_MessageExtractionOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string body", `"email already registered"`, "email already registered"},
		{"plain text body", `movie not rated yet`, "movie not rated yet"},
		{"message field", `{"message":"from message","error":"from error"}`, "from message"},
		{"error field", `{"error":"from error","details":"from details"}`, "from error"},
		{"details field", `{"details":"from details"}`, "from details"},
		{"no known field", `{"status":409}`, MessageConflict},
		{"empty message", `{"message":""}`, MessageConflict},
		{"empty body", ``, MessageConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := Normalize(&Envelope{Status: 409, Path: "/auth/register", Body: []byte(tt.body)})
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

func TestNormalize_Fields(t *testing.T) {
	apiErr := Normalize(&Envelope{
		Method:    "GET",
		Path:      "/movies/42",
		Status:    404,
		Body:      []byte(`{"error":"movie 42 does not exist"}`),
		RequestID: "req-1",
	})

	if apiErr.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Kind != KindValidation {
		t.Errorf("expected validation kind, got %s", apiErr.Kind)
	}
	if apiErr.Code != "HTTP_404" {
		t.Errorf("expected code HTTP_404, got %s", apiErr.Code)
	}
	if apiErr.RequestID != "req-1" {
		t.Errorf("expected request id to be kept, got %s", apiErr.RequestID)
	}
	if apiErr.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	details, ok := apiErr.Details.(map[string]any)
	if !ok || details["error"] != "movie 42 does not exist" {
		t.Errorf("expected decoded details, got %#v", apiErr.Details)
	}
}

func TestNormalize_NetworkMessages(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://localhost:1", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}}

	apiErr := Normalize(&Envelope{Path: "/movies/popular", Cause: refused})
	if apiErr.Message != MessageNetwork {
		t.Errorf("expected network message, got %q", apiErr.Message)
	}
	if apiErr.Code != "ECONNREFUSED" {
		t.Errorf("expected ECONNREFUSED code, got %s", apiErr.Code)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("expected status 0, got %d", apiErr.StatusCode)
	}
	if !errors.Is(apiErr, syscall.ECONNREFUSED) {
		t.Error("expected cause to be reachable through Unwrap")
	}

	timeout := Normalize(&Envelope{Path: "/movies/popular", Cause: &url.Error{Op: "Get", URL: "x", Err: context.DeadlineExceeded}})
	if timeout.Message != MessageTimeout {
		t.Errorf("expected timeout message, got %q", timeout.Message)
	}
	if timeout.Code != "ETIMEDOUT" {
		t.Errorf("expected ETIMEDOUT code, got %s", timeout.Code)
	}
}

func TestNormalize_UnknownUsesCauseText(t *testing.T) {
	apiErr := Normalize(&Envelope{Cause: errors.New("marshal body: unsupported value")})
	if apiErr.Kind != KindUnknown {
		t.Errorf("expected unknown kind, got %s", apiErr.Kind)
	}
	if apiErr.Message != "marshal body: unsupported value" {
		t.Errorf("expected cause text, got %q", apiErr.Message)
	}

	bare := Normalize(&Envelope{})
	if bare.Message != MessageUnexpected {
		t.Errorf("expected generic message, got %q", bare.Message)
	}
}

func TestNormalizeWith_CustomExtractors(t *testing.T) {
	extractors := []Extractor{field("title")}
	apiErr := NormalizeWith(&Envelope{Status: 400, Body: []byte(`{"title":"bad page","message":"ignored"}`)}, extractors)

	if apiErr.Message != "bad page" {
		t.Errorf("expected custom extractor to win, got %q", apiErr.Message)
	}
}
