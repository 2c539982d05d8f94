// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/agritrace/agritrace-api/internal/auth"
)

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsDemo       bool      `db:"is_demo"`
	TokenVersion int       `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const (
	RoleAdmin        = auth.RoleAdmin
	RoleFieldOfficer = auth.RoleFieldOfficer
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFieldOfficer
}
