package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"
)

const (
	MessageBadRequest     = "invalid data: check the information sent"
	MessageBadCredentials = "invalid credentials: check email and password"
	MessageUnauthorized   = "unauthorized, please log in again"
	MessageForbidden      = "access denied: you are not allowed to do this"
	MessageNotFound       = "not found"
	MessageConflict       = "conflict: the resource already exists"
	MessageUnprocessable  = "invalid required fields: check the form"
	MessageRateLimited    = "rate limited, retry later"
	MessageClientError    = "request rejected by the server"
	MessageServerError    = "server error, try later"
	MessageUnavailable    = "service temporarily unavailable, try later"
	MessageNetwork        = "connection error: check your network and try again"
	MessageTimeout        = "request timed out, try again"
	MessageUnexpected     = "unexpected error, try again"
)

// Envelope is everything known about a failed request before it is
// normalized. Status is 0 when no HTTP response was received.
type Envelope struct {
	Method    string
	Path      string
	Status    int
	Body      []byte
	Cause     error
	RequestID string
}

// Data decodes the body as JSON. Bodies that are not JSON are returned as a
// plain string so a text error page still counts as a string body.
func (e *Envelope) Data() any {
	if len(e.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(e.Body, &v); err != nil {
		return strings.TrimSpace(string(e.Body))
	}
	return v
}

// Extractor pulls a human-readable message out of a failure envelope.
// An empty result means "not applicable, try the next one".
type Extractor func(data any) string

// DefaultExtractors are tried in order against the decoded body; the first
// non-empty result wins.
var DefaultExtractors = []Extractor{
	stringBody,
	field("message"),
	field("error"),
	field("details"),
}

func stringBody(data any) string {
	s, _ := data.(string)
	return strings.TrimSpace(s)
}

func field(name string) Extractor {
	return func(data any) string {
		obj, ok := data.(map[string]any)
		if !ok {
			return ""
		}
		switch v := obj[name].(type) {
		case string:
			return strings.TrimSpace(v)
		case nil:
			return ""
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return ""
			}
			return string(b)
		}
	}
}

// StatusMessage is the fallback table used when the body carries no message.
// Unlisted codes fall into a generic bucket by leading digit.
func StatusMessage(status int, path string) string {
	switch status {
	case 400:
		return MessageBadRequest
	case 401:
		if strings.Contains(path, LoginPath) {
			return MessageBadCredentials
		}
		return MessageUnauthorized
	case 403:
		return MessageForbidden
	case 404:
		return MessageNotFound
	case 409:
		return MessageConflict
	case 422:
		return MessageUnprocessable
	case 429:
		return MessageRateLimited
	case 503:
		return MessageUnavailable
	}

	switch {
	case status >= 500:
		return MessageServerError
	case status >= 400:
		return MessageClientError
	}
	return ""
}

// Classify maps an envelope to its Kind.
func Classify(env *Envelope) Kind {
	if isNetworkCause(env.Cause) {
		return KindNetwork
	}
	switch {
	case env.Status >= 500:
		return KindServer
	case env.Status >= 400:
		return KindValidation
	}
	return KindUnknown
}

// Normalize builds the Error for env using DefaultExtractors.
func Normalize(env *Envelope) *Error {
	return NormalizeWith(env, DefaultExtractors)
}

func NormalizeWith(env *Envelope, extractors []Extractor) *Error {
	data := env.Data()

	return &Error{
		Message:    message(env, data, extractors),
		StatusCode: env.Status,
		Kind:       Classify(env),
		Code:       code(env),
		Details:    data,
		Path:       env.Path,
		RequestID:  env.RequestID,
		Timestamp:  time.Now().UTC(),
		cause:      env.Cause,
	}
}

func message(env *Envelope, data any, extractors []Extractor) string {
	if env.Status != 0 && data != nil {
		for _, extract := range extractors {
			if msg := extract(data); msg != "" {
				return msg
			}
		}
	}

	if env.Status == 0 && env.Cause != nil {
		if isTimeout(env.Cause) {
			return MessageTimeout
		}
		if isNetworkCause(env.Cause) {
			return MessageNetwork
		}
	}

	if msg := StatusMessage(env.Status, env.Path); msg != "" {
		return msg
	}

	if env.Cause != nil {
		return env.Cause.Error()
	}
	return MessageUnexpected
}

func code(env *Envelope) string {
	switch {
	case env.Cause != nil && isTimeout(env.Cause):
		return "ETIMEDOUT"
	case env.Cause != nil && errors.Is(env.Cause, syscall.ECONNREFUSED):
		return "ECONNREFUSED"
	case env.Status == 0 && isNetworkCause(env.Cause):
		return "NETWORK_ERROR"
	case env.Status != 0:
		return fmt.Sprintf("HTTP_%d", env.Status)
	}
	return "UNKNOWN_ERROR"
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isNetworkCause(err error) bool {
	if err == nil {
		return false
	}
	if isTimeout(err) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
