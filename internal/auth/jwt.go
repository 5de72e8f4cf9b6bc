// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/internhub/internal/config"
	"github.com/carterperez-dev/internhub/internal/core"
	"github.com/carterperez-dev/internhub/internal/middleware"
)

const tokenTypeAccess = "access"

// JWTManager signs and verifies HS256 tokens carrying the caller identity.
type JWTManager struct {
	key    jwk.Key
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTManager(cfg config.JWTConfig) (*JWTManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret: %w", core.ErrMisconfigured)
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import secret: %w", err)
	}

	if setErr := key.Set(jwk.AlgorithmKey, jwa.HS256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	return &JWTManager{
		key:    key,
		config: cfg,
		now:    time.Now,
	}, nil
}

type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

func (m *JWTManager) CreateToken(claims TokenClaims) (string, error) {
	now := m.now()

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(m.config.TokenExpire)).
		NotBefore(now).
		Claim("email", claims.Email).
		Claim("role", claims.Role).
		Claim("type", tokenTypeAccess).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *JWTManager) VerifyAccessToken(
	_ context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != tokenTypeAccess {
		return nil, fmt.Errorf(
			"verify token: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenInvalid,
		)
	}

	var role string
	if err := token.Get("role", &role); err != nil || role == "" {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenInvalid,
		)
	}

	return &middleware.AccessTokenClaims{
		UserID: subject,
		Email:  email,
		Role:   role,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "token is expired") ||
		(strings.Contains(errStr, `"exp"`) && strings.Contains(errStr, "not satisfied"))
}
