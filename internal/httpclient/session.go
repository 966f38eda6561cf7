package httpclient

import (
	"context"
	"fmt"

	"github.com/Varun5711/cinerate/internal/session"
)

// The client is the only writer of the session store; everything else reads
// through Current.

// Establish stores the session described by a freshly issued token.
func (c *Client) Establish(ctx context.Context, token string) (*session.Session, error) {
	s, err := session.FromToken(token)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Invalidate drops token and user together.
func (c *Client) Invalidate(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Logout ends the session and sends the UI to the login screen unless it is
// already there.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Invalidate(ctx); err != nil {
		return err
	}
	c.toLogin()
	return nil
}

// Current returns the stored session if it is still usable. A malformed or
// expired token is cleared without raising an error: the caller just sees
// "not authenticated".
func (c *Client) Current(ctx context.Context) (*session.Session, error) {
	s, err := c.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}

	if _, err := session.Validate(s.Token, c.now()); err != nil {
		c.log.Debug("Dropping unusable session: %v", err)
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return s, nil
}
