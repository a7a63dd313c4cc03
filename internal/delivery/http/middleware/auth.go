package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	httpresponse "github.com/tumbleweedd/frame_store/payment_service/internal/lib/http"
)

const RoleAdmin = "admin"

type claimsKey struct{}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

var errNoSecret = errors.New("admin auth is not configured")

// RequireRole accepts HS256 bearer tokens whose role claim equals role. With an
// empty secret every request is refused.
func RequireRole(secret, role string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(key) == 0 {
				_ = httpresponse.Error(w, http.StatusUnauthorized, errNoSecret.Error())
				return
			}

			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				_ = httpresponse.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				_ = httpresponse.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if claims.Role != role {
				_ = httpresponse.Error(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
