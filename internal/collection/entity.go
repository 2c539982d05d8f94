// AngelaMos | 2026
// entity.go

package collection

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

// Decimal places kept for weight and payment rate, matching the column
// scales in schema.sql.
const (
	WeightScale int32 = 3
	RateScale   int32 = 2
)

type Collection struct {
	ID             string          `db:"id"`
	FarmerID       string          `db:"farmer_id"`
	FarmerName     string          `db:"farmer_name"`
	FarmerRegion   string          `db:"farmer_region"`
	RecordedBy     string          `db:"recorded_by"`
	Crop           string          `db:"crop"`
	HarvestDate    *time.Time      `db:"harvest_date"`
	CollectionDate time.Time       `db:"collection_date"`
	Weight         decimal.Decimal `db:"weight"`
	QualityGrade   string          `db:"quality_grade"`
	PaymentRate    decimal.Decimal `db:"payment_rate"`
	TotalPayment   decimal.Decimal `db:"total_payment"`
	PaymentStatus  string          `db:"payment_status"`
	PaymentDate    *time.Time      `db:"payment_date"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// TotalPayment is the only way a collection's payment amount is derived.
func TotalPayment(weight, rate decimal.Decimal) decimal.Decimal {
	return weight.Mul(rate)
}
