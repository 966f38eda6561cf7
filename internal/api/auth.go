package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/httpclient"
	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/Varun5711/cinerate/internal/session"
	"github.com/Varun5711/cinerate/internal/validation"
)

const (
	loginPath    = apierr.LoginPath
	registerPath = "/auth/register"
)

var errEmptyToken = errors.New("login response carried no token")

type Auth struct {
	client *httpclient.Client
}

func NewAuth(client *httpclient.Client) *Auth {
	return &Auth{client: client}
}

// Login exchanges credentials for a token and stores the resulting session.
func (a *Auth) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var token string
	err := a.client.DoDecode(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   user.LoginRequest{Email: strings.TrimSpace(email), Password: password},
		Tag:    "login",
	}, func(body []byte) error {
		token = textBody(body)
		if token == "" {
			return errEmptyToken
		}
		_, err := session.FromToken(token)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a.client.Establish(ctx, token)
}

// Register creates an account and returns the backend's confirmation text.
// Invalid input is rejected locally.
func (a *Auth) Register(ctx context.Context, req user.RegisterRequest) (string, error) {
	if err := validation.ValidateRegistration(req); err != nil {
		return "", err
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Nickname = strings.TrimSpace(req.Nickname)

	body, err := a.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   registerPath,
		Body:   req,
		Tag:    "register",
	})
	if err != nil {
		return "", err
	}
	return textBody(body), nil
}

func (a *Auth) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	s, err := a.client.Current(ctx)
	return err == nil && s != nil
}

// CurrentUser returns the signed-in user, or nil when there is none.
func (a *Auth) CurrentUser(ctx context.Context) *user.User {
	s, err := a.client.Current(ctx)
	if err != nil || s == nil {
		return nil
	}
	u := s.User
	return &u
}

func (a *Auth) IsAdmin(ctx context.Context) bool {
	u := a.CurrentUser(ctx)
	return u != nil && u.IsAdmin()
}

// textBody reads a plain-text response that may or may not be JSON-quoted.
func textBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	var s string
	if len(trimmed) > 0 && trimmed[0] == '"' && json.Unmarshal(trimmed, &s) == nil {
		return strings.TrimSpace(s)
	}
	return string(trimmed)
}

