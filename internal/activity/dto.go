// AngelaMos | 2026
// dto.go

package activity

import (
	"encoding/json"
	"time"
)

// CreateActivityRequest keeps cost and date raw: cost may arrive as a
// number or a numeric string, date as RFC 3339 or YYYY-MM-DD.
type CreateActivityRequest struct {
	FarmerID          string          `json:"farmerId"`
	Type              string          `json:"type"              validate:"required,oneof=Planting Fertilizing Weeding 'Pest Control' Irrigation Harvesting Other"`
	Date              json.RawMessage `json:"date"`
	Cost              json.RawMessage `json:"cost"`
	SeedVariety       string          `json:"seedVariety"       validate:"max=200"`
	SeedSource        string          `json:"seedSource"        validate:"max=200"`
	SeedQuantity      string          `json:"seedQuantity"      validate:"max=100"`
	SeedLotNumber     string          `json:"seedLotNumber"     validate:"max=100"`
	FertilizerType    string          `json:"fertilizerType"    validate:"max=200"`
	FertilizerAmount  string          `json:"fertilizerAmount"  validate:"max=100"`
	PesticideType     string          `json:"pesticideType"     validate:"max=200"`
	PesticideAmount   string          `json:"pesticideAmount"   validate:"max=100"`
	PestControlMethod string          `json:"pestControlMethod" validate:"max=200"`
	PestTarget        string          `json:"pestTarget"        validate:"max=200"`
	GeneralDetails    string          `json:"generalDetails"    validate:"max=2000"`
}

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Response struct {
	ID                string    `json:"id"`
	Farmer            string    `json:"farmer"`
	RecordedBy        UserRef   `json:"recordedBy"`
	Type              string    `json:"type"`
	Date              time.Time `json:"date"`
	Cost              float64   `json:"cost"`
	SeedVariety       string    `json:"seedVariety,omitempty"`
	SeedSource        string    `json:"seedSource,omitempty"`
	SeedQuantity      string    `json:"seedQuantity,omitempty"`
	SeedLotNumber     string    `json:"seedLotNumber,omitempty"`
	FertilizerType    string    `json:"fertilizerType,omitempty"`
	FertilizerAmount  string    `json:"fertilizerAmount,omitempty"`
	PesticideType     string    `json:"pesticideType,omitempty"`
	PesticideAmount   string    `json:"pesticideAmount,omitempty"`
	PestControlMethod string    `json:"pestControlMethod,omitempty"`
	PestTarget        string    `json:"pestTarget,omitempty"`
	GeneralDetails    string    `json:"generalDetails,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func ToResponse(a *Activity) Response {
	return Response{
		ID:     a.ID,
		Farmer: a.FarmerID,
		RecordedBy: UserRef{
			ID:   a.RecordedBy,
			Name: a.RecordedByName,
		},
		Type:              a.Type,
		Date:              a.Date,
		Cost:              a.Cost.InexactFloat64(),
		SeedVariety:       a.SeedVariety,
		SeedSource:        a.SeedSource,
		SeedQuantity:      a.SeedQuantity,
		SeedLotNumber:     a.SeedLotNumber,
		FertilizerType:    a.FertilizerType,
		FertilizerAmount:  a.FertilizerAmount,
		PesticideType:     a.PesticideType,
		PesticideAmount:   a.PesticideAmount,
		PestControlMethod: a.PestControlMethod,
		PestTarget:        a.PestTarget,
		GeneralDetails:    a.GeneralDetails,
		CreatedAt:         a.CreatedAt,
	}
}

func ToResponseList(activities []Activity) []Response {
	out := make([]Response, len(activities))
	for i := range activities {
		out[i] = ToResponse(&activities[i])
	}
	return out
}
