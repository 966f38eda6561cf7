package apierr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	withStatus := &Error{Kind: KindValidation, StatusCode: 404, Message: "not found"}
	if got := withStatus.Error(); got != "validation (404): not found" {
		t.Errorf("unexpected error text: %q", got)
	}

	noStatus := &Error{Kind: KindNetwork, Message: MessageNetwork}
	if !strings.HasPrefix(noStatus.Error(), "network: ") {
		t.Errorf("unexpected error text: %q", noStatus.Error())
	}
}

func TestIsLoginFailure(t *testing.T) {
	login := &Error{StatusCode: 401, Path: "/auth/login"}
	other := &Error{StatusCode: 401, Path: "/rate/movies"}
	forbidden := &Error{StatusCode: 403, Path: "/auth/login"}

	if !IsLoginFailure(fmt.Errorf("login: %w", login)) {
		t.Error("expected wrapped login 401 to be a login failure")
	}
	if IsLoginFailure(other) {
		t.Error("expected non-login 401 not to be a login failure")
	}
	if IsLoginFailure(forbidden) {
		t.Error("expected 403 not to be a login failure")
	}
	if !IsUnauthorized(other) {
		t.Error("expected 401 to be unauthorized")
	}
	if IsLoginFailure(errors.New("plain")) {
		t.Error("expected plain error not to be a login failure")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(&Error{Kind: KindServer}); got != KindServer {
		t.Errorf("expected server, got %s", got)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("expected unknown for foreign error, got %s", got)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("pick a rating")
	if err.Kind != KindValidation || err.StatusCode != 0 {
		t.Errorf("unexpected local validation error: %+v", err)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantTitle string
		wantDesc  string
	}{
		{"login", &Error{StatusCode: 401, Path: "/auth/login", Message: MessageBadCredentials, Kind: KindValidation}, "Login failed", MessageBadCredentials},
		{"expired", &Error{StatusCode: 401, Path: "/movies/popular", Message: MessageUnauthorized, Kind: KindValidation}, "Session expired", "log in again to continue"},
		{"network", &Error{Kind: KindNetwork, Message: MessageNetwork}, "Connection problem", MessageNetwork},
		{"server", &Error{StatusCode: 500, Kind: KindServer, Message: MessageServerError}, "Server error", MessageServerError},
		{"validation", &Error{StatusCode: 404, Kind: KindValidation, Message: MessageNotFound}, "Request rejected", MessageNotFound},
		{"foreign", errors.New("stack trace here"), "Unexpected error", MessageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, desc := Describe(tt.err)
			if title != tt.wantTitle || desc != tt.wantDesc {
				t.Errorf("Describe() = (%q, %q), want (%q, %q)", title, desc, tt.wantTitle, tt.wantDesc)
			}
		})
	}
}
