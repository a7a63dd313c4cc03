package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

const secret = "whsec_test"

func manualSign(input string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(input))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	body := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"gw-123"}}}`)
	ts := "1700000000"

	tCases := []struct {
		name      string
		body      []byte
		signature string
		timestamp string
		secret    string
		scheme    Scheme
		expErr    error
	}{
		{
			name:      "body_scheme_valid",
			body:      body,
			signature: manualSign(string(body)),
			secret:    secret,
			scheme:    SchemeBody,
		},
		{
			name:      "timestamp_scheme_valid",
			body:      body,
			signature: manualSign(ts + string(body)),
			timestamp: ts,
			secret:    secret,
			scheme:    SchemeTimestampBody,
		},
		{
			name:      "missing_secret",
			body:      body,
			signature: manualSign(string(body)),
			scheme:    SchemeBody,
			expErr:    ErrMissingSecret,
		},
		{
			name:   "missing_signature",
			body:   body,
			secret: secret,
			scheme: SchemeBody,
			expErr: ErrMissingSignature,
		},
		{
			name:      "missing_timestamp",
			body:      body,
			signature: manualSign(ts + string(body)),
			secret:    secret,
			scheme:    SchemeTimestampBody,
			expErr:    ErrMissingTimestamp,
		},
		{
			name:      "tampered_body",
			body:      []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"gw-999"}}}`),
			signature: manualSign(string(body)),
			secret:    secret,
			scheme:    SchemeBody,
			expErr:    ErrInvalidSignature,
		},
		{
			name:      "timestamp_not_signed",
			body:      body,
			signature: manualSign(string(body)),
			timestamp: ts,
			secret:    secret,
			scheme:    SchemeTimestampBody,
			expErr:    ErrInvalidSignature,
		},
		{
			name:      "not_base64",
			body:      body,
			signature: "%%%",
			secret:    secret,
			scheme:    SchemeBody,
			expErr:    ErrInvalidSignature,
		},
		{
			name:      "wrong_secret",
			body:      body,
			signature: manualSign(string(body)),
			secret:    "other",
			scheme:    SchemeBody,
			expErr:    ErrInvalidSignature,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			err := Verify(tCase.body, tCase.signature, tCase.timestamp, tCase.secret, tCase.scheme)
			if tCase.expErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tCase.expErr)
		})
	}
}

func TestVerifyIsStateless(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := Sign(body, "", secret, SchemeBody)

	for i := 0; i < 3; i++ {
		require.NoError(t, Verify(body, sig, "", secret, SchemeBody))
	}
}

func TestVerifyRawBytesNotReencoded(t *testing.T) {
	pretty := []byte("{\n  \"event\": \"payment.captured\"\n}")
	compact := []byte(`{"event":"payment.captured"}`)

	sig := Sign(pretty, "", secret, SchemeBody)

	require.NoError(t, Verify(pretty, sig, "", secret, SchemeBody))
	require.ErrorIs(t, Verify(compact, sig, "", secret, SchemeBody), ErrInvalidSignature)
}

func TestSchemeString(t *testing.T) {
	tCases := []struct {
		scheme   Scheme
		expected string
	}{
		{scheme: SchemeBody, expected: "body"},
		{scheme: SchemeTimestampBody, expected: "timestamp+body"},
		{scheme: Scheme(0), expected: "unknown"},
	}

	for _, tCase := range tCases {
		t.Run(tCase.expected, func(t *testing.T) {
			require.Equal(t, tCase.expected, tCase.scheme.String())
		})
	}
}
