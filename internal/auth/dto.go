// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

const (
	RoleAdmin        = "Admin"
	RoleFieldOfficer = "FieldOfficer"
)

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleFieldOfficer
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role"     validate:"required,oneof=Admin FieldOfficer"`
	IsDemo   bool   `json:"isDemo"`
}

func (r RegisterRequest) missingFields() bool {
	return r.Name == "" || r.Email == "" || r.Password == "" || r.Role == ""
}

// AuthResponse is returned by both register and login: the profile with the
// bearer token alongside it.
type AuthResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsDemo    bool      `json:"isDemo"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsDemo    bool      `json:"isDemo"`
	CreatedAt time.Time `json:"createdAt"`
}
