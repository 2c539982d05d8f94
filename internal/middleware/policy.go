// AngelaMos | 2026
// policy.go

package middleware

import (
	"net/http"

	"github.com/agritrace/agritrace-api/internal/core"
)

// Capability names one guarded operation. Routes declare the capability they
// need instead of listing roles inline.
type Capability struct {
	Name     string
	Mutating bool
}

var (
	CapUserRegister     = Capability{Name: "user:register", Mutating: true}
	CapUserList         = Capability{Name: "user:list"}
	CapUserManage       = Capability{Name: "user:manage", Mutating: true}
	CapFarmerCreate     = Capability{Name: "farmer:create", Mutating: true}
	CapFarmerUpdate     = Capability{Name: "farmer:update", Mutating: true}
	CapFarmerDelete     = Capability{Name: "farmer:delete", Mutating: true}
	CapActivityCreate   = Capability{Name: "activity:create", Mutating: true}
	CapCollectionCreate = Capability{Name: "collection:create", Mutating: true}
	CapCollectionPay    = Capability{Name: "collection:pay", Mutating: true}
	CapCollectionList   = Capability{Name: "collection:list"}
	CapSystemStats      = Capability{Name: "system:stats"}
)

const demoReadOnlyMessage = "Demo accounts are read-only"

type Policy struct {
	grants map[string]map[string]struct{}
}

func NewPolicy() *Policy {
	return &Policy{grants: make(map[string]map[string]struct{})}
}

// Grant adds capabilities to role and returns the policy for chaining.
func (p *Policy) Grant(role string, caps ...Capability) *Policy {
	set, ok := p.grants[role]
	if !ok {
		set = make(map[string]struct{}, len(caps))
		p.grants[role] = set
	}
	for _, c := range caps {
		set[c.Name] = struct{}{}
	}
	return p
}

func (p *Policy) Allows(role string, c Capability) bool {
	set, ok := p.grants[role]
	if !ok {
		return false
	}
	_, ok = set[c.Name]
	return ok
}

// Decide returns nil when the caller may exercise c, or the AppError to send.
func (p *Policy) Decide(role string, demo bool, c Capability) *core.AppError {
	if role == "" {
		return core.UnauthorizedError("Not authorized, no token")
	}

	if !p.Allows(role, c) {
		return core.ForbiddenError(
			"User role " + role + " is not authorized to access this route",
		)
	}

	if c.Mutating && demo {
		return core.ForbiddenError(demoReadOnlyMessage)
	}

	return nil
}

// Require must run after Authenticator.
func (p *Policy) Require(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if appErr := p.Decide(GetUserRole(ctx), IsDemo(ctx), c); appErr != nil {
				core.JSONError(w, appErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
