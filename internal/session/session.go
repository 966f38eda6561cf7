// Package session holds the client's authenticated session: the bearer token
// and the user record cached next to it. Both entries are written and cleared
// together, never one without the other.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Varun5711/cinerate/internal/models/user"
)

const (
	TokenKey = "auth_token"
	UserKey  = "user_data"

	DefaultTTL = 7 * 24 * time.Hour
)

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

// Expired reports whether the token's own expiry has passed. A zero expiry
// never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists the session. Get returns (nil, nil) when there is none.
type Store interface {
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// userRecord is the serialized form of the user_data entry. It keeps the
// token expiry so a reloaded session knows when it lapses.
type userRecord struct {
	user.User
	Exp int64 `json:"exp,omitempty"`
}

func encodeUser(s *Session) (string, error) {
	rec := userRecord{User: s.User}
	if !s.ExpiresAt.IsZero() {
		rec.Exp = s.ExpiresAt.Unix()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeUser never fails: an unreadable record yields an empty user, the same
// way a missing one does.
func decodeUser(token, raw string) *Session {
	s := &Session{Token: token}
	if raw == "" {
		return s
	}
	var rec userRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return s
	}
	s.User = rec.User
	if rec.Exp > 0 {
		s.ExpiresAt = time.Unix(rec.Exp, 0)
	}
	return s
}
