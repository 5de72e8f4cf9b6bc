// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Email     string `json:"email"               validate:"required,email,max=255"`
	Password  string `json:"password"            validate:"required,min=6,max=128"`
	Role      string `json:"role,omitempty"      validate:"omitempty,oneof=ADMIN USER"`
	AdminCode string `json:"adminCode,omitempty"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
