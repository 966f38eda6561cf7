package client

import (
	"context"
	"time"

	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/Varun5711/cinerate/internal/session"
)

const authTimeout = 10 * time.Second

func (c *Client) Login(email, password string) (*session.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	return c.api.Auth.Login(ctx, email, password)
}

func (c *Client) Register(req user.RegisterRequest) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	return c.api.Auth.Register(ctx, req)
}

// Logout clears the session. The core moves the UI to the login screen.
func (c *Client) Logout() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.api.Auth.Logout(ctx)
}

// Current returns the stored session, or nil when the user must log in.
func (c *Client) Current() *session.Session {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := c.core.Current(ctx)
	if err != nil {
		return nil
	}
	return s
}
