// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/internhub/internal/core"
)

const roleAdmin = "ADMIN"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrAdminCodeMissing   = errors.New("admin code not configured")
	ErrAdminCodeInvalid   = errors.New("admin code invalid")
)

type UserInfo struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(
		ctx context.Context,
		email, passwordHash, role string,
	) (*UserInfo, error)
}

type TokenIssuer interface {
	CreateToken(claims TokenClaims) (string, error)
}

type Service struct {
	jwt          TokenIssuer
	userProvider UserProvider
	adminCode    string
}

func NewService(
	jwt TokenIssuer,
	userProvider UserProvider,
	adminCode string,
) *Service {
	return &Service{
		jwt:          jwt,
		userProvider: userProvider,
		adminCode:    adminCode,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, "")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.createAuthResponse(user)
}

// Register creates a USER, or an ADMIN when the caller presents the
// configured admin code. No row is written when the role check fails.
// A known email is rejected before hashing; the unique index still
// catches concurrent registrations.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	if req.Role == roleAdmin {
		if s.adminCode == "" {
			return nil, ErrAdminCodeMissing
		}
		if !core.SecretsEqual(req.AdminCode, s.adminCode) {
			return nil, ErrAdminCodeInvalid
		}
	}

	exists, err := s.userProvider.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userProvider.Create(ctx, req.Email, passwordHash, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.createAuthResponse(user)
}

func (s *Service) createAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.jwt.CreateToken(TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &AuthResponse{
		Token: token,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
