// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/carterperez-dev/internhub/internal/core"
)

type contextKey string

const claimsKey contextKey = "caller_claims"

const RoleAdmin = "ADMIN"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

// AccessTokenClaims is the caller identity decoded from a bearer token.
type AccessTokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// Authenticator rejects requests without a valid bearer token and attaches
// the decoded identity to the request context.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("missing authorization token"))
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, tokenError(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// RequireRole must run after Authenticator. A request without an identity
// is 401, one with another role is 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			switch {
			case claims == nil || claims.Role == "":
				core.JSONError(w, core.UnauthorizedError("authentication required"))
			case !slices.Contains(roles, claims.Role):
				core.JSONError(w, core.ForbiddenError("Access denied"))
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}

// ExtractToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func ExtractToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func tokenError(err error) error {
	switch {
	case core.IsAppError(err):
		return err
	case errors.Is(err, core.ErrTokenExpired):
		return core.TokenExpiredError()
	default:
		return core.TokenInvalidError()
	}
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	claims, _ := ctx.Value(claimsKey).(*AccessTokenClaims)
	return claims
}

func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
