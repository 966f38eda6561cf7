// Package validation checks account input before it is sent to the backend.
package validation

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Varun5711/cinerate/internal/apierr"
	"github.com/Varun5711/cinerate/internal/models/user"
)

const (
	MinNickname = 3
	MaxNickname = 30
	MinPassword = 6
)

var (
	ErrNameEmpty            = errors.New("name cannot be empty")
	ErrEmailInvalid         = errors.New("enter a valid email")
	ErrNicknameTooShort     = errors.New("nickname must be at least 3 characters")
	ErrNicknameTooLong      = errors.New("nickname must be at most 30 characters")
	ErrNicknameInvalidChars = errors.New("nickname can only contain letters, numbers, hyphens, and underscores")
	ErrNicknameReserved     = errors.New("nickname is reserved and cannot be used")
	ErrNicknameProfanity    = errors.New("nickname contains inappropriate content")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch     = errors.New("passwords do not match")
)

// Nicknames show up next to every public rating, so the names staff use and
// the obvious abuse are kept out.
var reservedNicknames = map[string]bool{
	"admin":     true,
	"api":       true,
	"anonymous": true,
	"cinerate":  true,
	"moderator": true,
	"root":      true,
	"support":   true,
	"system":    true,
}

var profanity = []string{
	"fuck", "shit", "bitch", "asshole", "bastard", "dick", "porn", "nazi", "retard",
}

var nicknameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateNickname(nickname string) error {
	if len(nickname) < MinNickname {
		return ErrNicknameTooShort
	}
	if len(nickname) > MaxNickname {
		return ErrNicknameTooLong
	}
	if !nicknameRegex.MatchString(nickname) {
		return ErrNicknameInvalidChars
	}

	lower := strings.ToLower(nickname)
	if reservedNicknames[lower] {
		return ErrNicknameReserved
	}
	for _, word := range profanity {
		if strings.Contains(lower, word) {
			return ErrNicknameProfanity
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrEmailInvalid
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPassword {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateRegistration reports the first problem with req as a local
// validation error. Email and nickname are checked trimmed.
func ValidateRegistration(req user.RegisterRequest) error {
	var err error
	switch {
	case strings.TrimSpace(req.Name) == "":
		err = ErrNameEmpty
	default:
		if err = ValidateEmail(strings.TrimSpace(req.Email)); err != nil {
			break
		}
		if err = ValidateNickname(strings.TrimSpace(req.Nickname)); err != nil {
			break
		}
		if err = ValidatePassword(req.Password); err != nil {
			break
		}
		if req.Password != req.ConfirmPassword {
			err = ErrPasswordMismatch
		}
	}
	if err != nil {
		return apierr.Validation(err.Error())
	}
	return nil
}
