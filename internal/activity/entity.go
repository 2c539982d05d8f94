// AngelaMos | 2026
// entity.go

package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePlanting    = "Planting"
	TypeFertilizing = "Fertilizing"
	TypeWeeding     = "Weeding"
	TypePestControl = "Pest Control"
	TypeIrrigation  = "Irrigation"
	TypeHarvesting  = "Harvesting"
	TypeOther       = "Other"
)

var Types = []string{
	TypePlanting,
	TypeFertilizing,
	TypeWeeding,
	TypePestControl,
	TypeIrrigation,
	TypeHarvesting,
	TypeOther,
}

// Activity is a logged farm operation. Records are never updated.
type Activity struct {
	ID                string          `db:"id"`
	FarmerID          string          `db:"farmer_id"`
	RecordedBy        string          `db:"recorded_by"`
	RecordedByName    string          `db:"recorded_by_name"`
	Type              string          `db:"type"`
	Date              time.Time       `db:"date"`
	Cost              decimal.Decimal `db:"cost"`
	SeedVariety       string          `db:"seed_variety"`
	SeedSource        string          `db:"seed_source"`
	SeedQuantity      string          `db:"seed_quantity"`
	SeedLotNumber     string          `db:"seed_lot_number"`
	FertilizerType    string          `db:"fertilizer_type"`
	FertilizerAmount  string          `db:"fertilizer_amount"`
	PesticideType     string          `db:"pesticide_type"`
	PesticideAmount   string          `db:"pesticide_amount"`
	PestControlMethod string          `db:"pest_control_method"`
	PestTarget        string          `db:"pest_target"`
	GeneralDetails    string          `db:"general_details"`
	CreatedAt         time.Time       `db:"created_at"`
}
