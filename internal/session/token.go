package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/cinerate/internal/models/user"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrTokenExpired   = errors.New("session token expired")
)

// FromToken reads the user and expiry out of the bearer token. The signature
// is not checked: the client does not hold the signing key and only uses the
// claims for display and local expiry.
func FromToken(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	s := &Session{Token: token}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp != nil {
		s.ExpiresAt = exp.Time
	}

	sub, _ := claims.GetSubject()
	s.User = user.User{
		ID:     firstString(claims, "id", "userId", "user_id"),
		Name:   firstString(claims, "name"),
		Email:  firstString(claims, "email"),
		Handle: firstString(claims, "nickname"),
		Role:   firstString(claims, "role"),
	}
	if s.User.Email == "" {
		s.User.Email = sub
	}
	if s.User.ID == "" {
		s.User.ID = sub
	}

	return s, nil
}

// Validate parses token and rejects it when its expiry is at or before now.
func Validate(token string, now time.Time) (*Session, error) {
	s, err := FromToken(token)
	if err != nil {
		return nil, err
	}
	if s.Expired(now) {
		return nil, ErrTokenExpired
	}
	return s, nil
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
