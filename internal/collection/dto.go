// AngelaMos | 2026
// dto.go

package collection

import (
	"encoding/json"
	"time"
)

// CreateCollectionRequest has no totalPayment field: the amount is always
// computed server-side.
type CreateCollectionRequest struct {
	FarmerID       string          `json:"farmerId"`
	Crop           string          `json:"crop"         validate:"required,max=100"`
	HarvestDate    json.RawMessage `json:"harvestDate"`
	CollectionDate json.RawMessage `json:"collectionDate"`
	Weight         json.RawMessage `json:"weight"`
	QualityGrade   string          `json:"qualityGrade" validate:"omitempty,oneof=A B C Rejected"`
	PaymentRate    json.RawMessage `json:"paymentRate"`
}

type FarmerRef struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Region string `json:"region,omitempty"`
}

type Response struct {
	ID             string     `json:"id"`
	Farmer         FarmerRef  `json:"farmer"`
	RecordedBy     string     `json:"recordedBy"`
	Crop           string     `json:"crop"`
	HarvestDate    *time.Time `json:"harvestDate,omitempty"`
	CollectionDate time.Time  `json:"collectionDate"`
	Weight         float64    `json:"weight"`
	QualityGrade   string     `json:"qualityGrade,omitempty"`
	PaymentRate    float64    `json:"paymentRate"`
	TotalPayment   float64    `json:"totalPayment"`
	PaymentStatus  string     `json:"paymentStatus"`
	PaymentDate    *time.Time `json:"paymentDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func ToResponse(c *Collection) Response {
	return Response{
		ID: c.ID,
		Farmer: FarmerRef{
			ID:     c.FarmerID,
			Name:   c.FarmerName,
			Region: c.FarmerRegion,
		},
		RecordedBy:     c.RecordedBy,
		Crop:           c.Crop,
		HarvestDate:    c.HarvestDate,
		CollectionDate: c.CollectionDate,
		Weight:         c.Weight.InexactFloat64(),
		QualityGrade:   c.QualityGrade,
		PaymentRate:    c.PaymentRate.InexactFloat64(),
		TotalPayment:   c.TotalPayment.InexactFloat64(),
		PaymentStatus:  c.PaymentStatus,
		PaymentDate:    c.PaymentDate,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToResponseList(collections []Collection) []Response {
	out := make([]Response, len(collections))
	for i := range collections {
		out[i] = ToResponse(&collections[i])
	}
	return out
}
