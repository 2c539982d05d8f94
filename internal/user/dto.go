// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin FieldOfficer"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsDemo    bool      `json:"isDemo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToAccountResponse(u *User) AccountResponse {
	return AccountResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsDemo:    u.IsDemo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToAccountResponseList(users []User) []AccountResponse {
	out := make([]AccountResponse, 0, len(users))
	for i := range users {
		out = append(out, ToAccountResponse(&users[i]))
	}
	return out
}
