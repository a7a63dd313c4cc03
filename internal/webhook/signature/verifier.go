// Package signature authenticates gateway webhooks. Verification always runs
// on the raw request bytes; re-encoding parsed JSON changes the signed input.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var (
	ErrMissingSecret    = errors.New("webhook secret is not configured")
	ErrMissingSignature = errors.New("webhook signature header is missing")
	ErrMissingTimestamp = errors.New("webhook timestamp header is missing")
	ErrInvalidSignature = errors.New("webhook signature mismatch")
)

type Scheme int

const (
	// SchemeBody signs base64(HMAC_SHA256(body, secret)).
	SchemeBody Scheme = iota + 1
	// SchemeTimestampBody signs base64(HMAC_SHA256(timestamp + body, secret)).
	SchemeTimestampBody
)

func (s Scheme) String() string {
	switch s {
	case SchemeBody:
		return "body"
	case SchemeTimestampBody:
		return "timestamp+body"
	default:
		return "unknown"
	}
}

// Verify returns nil when signature matches rawBody under the given scheme.
func Verify(rawBody []byte, signature, timestamp, secret string, scheme Scheme) error {
	if secret == "" {
		return ErrMissingSecret
	}

	if signature == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))

	switch scheme {
	case SchemeTimestampBody:
		if timestamp == "" {
			return ErrMissingTimestamp
		}
		mac.Write([]byte(timestamp))
		mac.Write(rawBody)
	case SchemeBody:
		mac.Write(rawBody)
	default:
		return ErrInvalidSignature
	}

	provided, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(mac.Sum(nil), provided) {
		return ErrInvalidSignature
	}

	return nil
}

// Sign produces the header value Verify accepts.
func Sign(rawBody []byte, timestamp, secret string, scheme Scheme) string {
	mac := hmac.New(sha256.New, []byte(secret))
	if scheme == SchemeTimestampBody {
		mac.Write([]byte(timestamp))
	}
	mac.Write(rawBody)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
