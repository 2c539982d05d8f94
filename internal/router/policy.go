// AngelaMos | 2026
// policy.go

package router

import (
	"github.com/agritrace/agritrace-api/internal/middleware"
	"github.com/agritrace/agritrace-api/internal/user"
)

// NewPolicy returns the role grants for every guarded route. Ownership of
// a farmer record is checked by the farmer service.
func NewPolicy() *middleware.Policy {
	return middleware.NewPolicy().
		Grant(user.RoleAdmin,
			middleware.CapUserRegister,
			middleware.CapUserList,
			middleware.CapUserManage,
			middleware.CapFarmerCreate,
			middleware.CapFarmerUpdate,
			middleware.CapFarmerDelete,
			middleware.CapActivityCreate,
			middleware.CapCollectionCreate,
			middleware.CapCollectionPay,
			middleware.CapCollectionList,
			middleware.CapSystemStats,
		).
		Grant(user.RoleFieldOfficer,
			middleware.CapFarmerCreate,
			middleware.CapFarmerUpdate,
			middleware.CapActivityCreate,
			middleware.CapCollectionCreate,
		)
}
