package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	h := l.Handler(okHandler)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, do("10.0.0.1:5000"))
	require.Equal(t, http.StatusNoContent, do("10.0.0.1:5001"))
	require.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5002"))

	require.Equal(t, http.StatusNoContent, do("10.0.0.2:5000"))
}

func TestIPRateLimiterSweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	require.True(t, l.allow("10.0.0.1"))

	now = now.Add(limiterIdleTTL + time.Minute)
	l.Sweep()

	require.Empty(t, l.limiters)
}

func signToken(t *testing.T, secret string, method jwt.SigningMethod, role string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(method, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops@frames.test",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestRequireRole(t *testing.T) {
	const secret = "admin_secret"
	future := time.Now().Add(time.Hour)

	tCases := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{
			name:   "admin",
			secret: secret,
			header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, RoleAdmin, future),
			status: http.StatusNoContent,
		},
		{
			name:   "wrong_role",
			secret: secret,
			header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, "customer", future),
			status: http.StatusForbidden,
		},
		{
			name:   "expired",
			secret: secret,
			header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, RoleAdmin, time.Now().Add(-time.Hour)),
			status: http.StatusUnauthorized,
		},
		{
			name:   "other_key",
			secret: secret,
			header: "Bearer " + signToken(t, "not_the_secret", jwt.SigningMethodHS256, RoleAdmin, future),
			status: http.StatusUnauthorized,
		},
		{
			name:   "hs512_rejected",
			secret: secret,
			header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS512, RoleAdmin, future),
			status: http.StatusUnauthorized,
		},
		{
			name:   "no_header",
			secret: secret,
			status: http.StatusUnauthorized,
		},
		{
			name:   "not_configured",
			secret: "",
			header: "Bearer " + signToken(t, secret, jwt.SigningMethodHS256, RoleAdmin, future),
			status: http.StatusUnauthorized,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/admin/orders/1/fulfillment", nil)
			if tCase.header != "" {
				req.Header.Set("Authorization", tCase.header)
			}

			rec := httptest.NewRecorder()
			RequireRole(tCase.secret, RoleAdmin)(okHandler).ServeHTTP(rec, req)

			require.Equal(t, tCase.status, rec.Code)
		})
	}
}

func TestRequireRolePassesClaims(t *testing.T) {
	const secret = "admin_secret"

	var (
		claims *Claims
		found  bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, found = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/1/fulfillment", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, jwt.SigningMethodHS256, RoleAdmin, time.Now().Add(time.Hour)))

	rec := httptest.NewRecorder()
	RequireRole(secret, RoleAdmin)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, found)
	require.Equal(t, "ops@frames.test", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)

	_, found = ClaimsFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.False(t, found)
}
