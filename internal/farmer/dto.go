// AngelaMos | 2026
// dto.go

package farmer

import (
	"strings"
	"time"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/collection"
)

type CreateFarmerRequest struct {
	Name           string `json:"name"           validate:"required,max=200"`
	Region         string `json:"region"         validate:"required,max=100"`
	Contact        string `json:"contact"        validate:"required,max=100"`
	ContractedCrop string `json:"contractedCrop" validate:"required,max=100"`
	ContractID     string `json:"contractId"     validate:"required,max=100"`
}

func (r *CreateFarmerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Region = strings.TrimSpace(r.Region)
	r.Contact = strings.TrimSpace(r.Contact)
	r.ContractedCrop = strings.TrimSpace(r.ContractedCrop)
	r.ContractID = strings.TrimSpace(r.ContractID)
}

// UpdateFarmerRequest is a partial update; nil fields are left unchanged.
type UpdateFarmerRequest struct {
	Name           *string `json:"name"           validate:"omitempty,min=1,max=200"`
	Region         *string `json:"region"         validate:"omitempty,min=1,max=100"`
	Contact        *string `json:"contact"        validate:"omitempty,min=1,max=100"`
	ContractedCrop *string `json:"contractedCrop" validate:"omitempty,min=1,max=100"`
	ContractID     *string `json:"contractId"     validate:"omitempty,min=1,max=100"`
}

func (r *UpdateFarmerRequest) apply(f *Farmer) {
	set := func(dst *string, src *string) {
		if src != nil {
			if v := strings.TrimSpace(*src); v != "" {
				*dst = v
			}
		}
	}
	set(&f.Name, r.Name)
	set(&f.Region, r.Region)
	set(&f.Contact, r.Contact)
	set(&f.ContractedCrop, r.ContractedCrop)
	set(&f.ContractID, r.ContractID)
}

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Response struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Region         string    `json:"region"`
	Contact        string    `json:"contact"`
	ContractedCrop string    `json:"contractedCrop"`
	ContractID     string    `json:"contractId"`
	RegisteredBy   UserRef   `json:"registeredBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ProfileResponse struct {
	Farmer      Response              `json:"farmer"`
	Activities  []activity.Response   `json:"activities"`
	Collections []collection.Response `json:"collections"`
}

type DeleteResponse struct {
	Message            string `json:"message"`
	ActivitiesRemoved  int64  `json:"activitiesRemoved"`
	CollectionsRemoved int64  `json:"collectionsRemoved"`
}

func ToResponse(f *Farmer) Response {
	return Response{
		ID:             f.ID,
		Name:           f.Name,
		Region:         f.Region,
		Contact:        f.Contact,
		ContractedCrop: f.ContractedCrop,
		ContractID:     f.ContractID,
		RegisteredBy: UserRef{
			ID:   f.RegisteredBy,
			Name: f.RegisteredByName,
		},
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func ToResponseList(farmers []Farmer) []Response {
	out := make([]Response, len(farmers))
	for i := range farmers {
		out[i] = ToResponse(&farmers[i])
	}
	return out
}
