// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/notify"
)

var ErrInvalidCost = errors.New("invalid cost value")

// FarmerLookup resolves a farmer id to its display name, returning an
// error wrapping core.ErrNotFound when the farmer is absent.
type FarmerLookup interface {
	FarmerName(ctx context.Context, id string) (string, error)
}

type Service struct {
	repo      Repository
	farmers   FarmerLookup
	publisher notify.Publisher
	validator *validator.Validate
	now       func() time.Time
}

func NewService(
	repo Repository,
	farmers FarmerLookup,
	publisher notify.Publisher,
) *Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Service{
		repo:      repo,
		farmers:   farmers,
		publisher: publisher,
		validator: core.NewValidator(),
		now:       time.Now,
	}
}

// Create checks the farmer first, then the cost, then the remaining
// fields, so a missing farmer always reports as not found.
func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateActivityRequest,
) (*Response, error) {
	farmerName, err := s.farmers.FarmerName(ctx, req.FarmerID)
	if err != nil {
		return nil, fmt.Errorf("lookup farmer: %w", err)
	}

	cost, _, err := core.ParseDecimalField(req.Cost)
	if err != nil || cost.IsNegative() {
		return nil, ErrInvalidCost
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf(
			"%s: %w",
			core.FormatValidationError(err),
			core.ErrInvalidInput,
		)
	}

	date, err := core.ParseDateField(req.Date)
	if err != nil {
		return nil, err
	}
	if date == nil {
		now := s.now().UTC()
		date = &now
	}

	a := &Activity{
		ID:                core.NewID(),
		FarmerID:          req.FarmerID,
		RecordedBy:        userID,
		Type:              req.Type,
		Date:              *date,
		Cost:              cost,
		SeedVariety:       req.SeedVariety,
		SeedSource:        req.SeedSource,
		SeedQuantity:      req.SeedQuantity,
		SeedLotNumber:     req.SeedLotNumber,
		FertilizerType:    req.FertilizerType,
		FertilizerAmount:  req.FertilizerAmount,
		PesticideType:     req.PesticideType,
		PesticideAmount:   req.PesticideAmount,
		PestControlMethod: req.PestControlMethod,
		PestTarget:        req.PestTarget,
		GeneralDetails:    req.GeneralDetails,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	//nolint:errcheck // delivery is best-effort
	_ = s.publisher.Publish(ctx, notify.Event{
		Name: notify.EventNewActivity,
		Message: fmt.Sprintf(
			"New %s activity logged for farmer %s",
			a.Type,
			farmerName,
		),
		Data: map[string]any{
			"id":     a.ID,
			"type":   a.Type,
			"farmer": farmerName,
			"date":   a.Date,
		},
	})

	resp := ToResponse(a)
	return &resp, nil
}

func (s *Service) ListByFarmer(
	ctx context.Context,
	farmerID string,
) ([]Response, error) {
	if !core.IsValidID(farmerID) {
		return nil, fmt.Errorf("list activities: %w", core.ErrInvalidInput)
	}

	activities, err := s.repo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	return ToResponseList(activities), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
