// AngelaMos | 2026
// entity.go

package farmer

import (
	"time"
)

type Farmer struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Region           string    `db:"region"`
	Contact          string    `db:"contact"`
	ContractedCrop   string    `db:"contracted_crop"`
	ContractID       string    `db:"contract_id"`
	RegisteredBy     string    `db:"registered_by"`
	RegisteredByName string    `db:"registered_by_name"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (f *Farmer) IsRegisteredBy(userID string) bool {
	return userID != "" && f.RegisteredBy == userID
}

// DeleteResult reports how many dependent records a cascade removed.
type DeleteResult struct {
	ActivitiesRemoved  int64
	CollectionsRemoved int64
}
