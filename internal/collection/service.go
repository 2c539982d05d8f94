// AngelaMos | 2026
// service.go

package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/notify"
)

var (
	ErrInvalidWeight      = errors.New("invalid weight value")
	ErrInvalidPaymentRate = errors.New("invalid payment rate value")
)

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

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateCollectionRequest,
) (*Response, error) {
	farmerName, err := s.farmers.FarmerName(ctx, req.FarmerID)
	if err != nil {
		return nil, fmt.Errorf("lookup farmer: %w", err)
	}

	weight, err := parsePositive(req.Weight, WeightScale)
	if err != nil {
		return nil, ErrInvalidWeight
	}

	rate, err := parsePositive(req.PaymentRate, RateScale)
	if err != nil {
		return nil, ErrInvalidPaymentRate
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf(
			"%s: %w",
			core.FormatValidationError(err),
			core.ErrInvalidInput,
		)
	}

	harvestDate, err := core.ParseDateField(req.HarvestDate)
	if err != nil {
		return nil, err
	}

	collectionDate, err := core.ParseDateField(req.CollectionDate)
	if err != nil {
		return nil, err
	}
	if collectionDate == nil {
		now := s.now().UTC()
		collectionDate = &now
	}

	c := &Collection{
		ID:             core.NewID(),
		FarmerID:       req.FarmerID,
		FarmerName:     farmerName,
		RecordedBy:     userID,
		Crop:           strings.TrimSpace(req.Crop),
		HarvestDate:    harvestDate,
		CollectionDate: *collectionDate,
		Weight:         weight,
		QualityGrade:   req.QualityGrade,
		PaymentRate:    rate,
		TotalPayment:   TotalPayment(weight, rate),
		PaymentStatus:  StatusPending,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	//nolint:errcheck // delivery is best-effort
	_ = s.publisher.Publish(ctx, notify.Event{
		Name: notify.EventNewCollection,
		Message: fmt.Sprintf(
			"New %s collection recorded for farmer %s",
			c.Crop,
			farmerName,
		),
		Data: map[string]any{
			"id":             c.ID,
			"crop":           c.Crop,
			"farmer":         farmerName,
			"weight":         c.Weight.InexactFloat64(),
			"collectionDate": c.CollectionDate,
		},
	})

	resp := ToResponse(c)
	return &resp, nil
}

// MarkPaid stamps the payment date. A repeat call re-stamps it.
func (s *Service) MarkPaid(ctx context.Context, id string) (*Response, error) {
	c, err := s.repo.MarkPaid(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}

	resp := ToResponse(c)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	collections, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponseList(collections), nil
}

func (s *Service) ListByFarmer(
	ctx context.Context,
	farmerID string,
) ([]Response, error) {
	collections, err := s.repo.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return ToResponseList(collections), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// parsePositive rounds to the stored scale before the sign check so the
// total is computed from the same values the database keeps.
func parsePositive(raw []byte, scale int32) (decimal.Decimal, error) {
	d, present, err := core.ParseDecimalField(raw)
	if err != nil {
		return decimal.Zero, err
	}
	d = d.Round(scale)
	if !present || !d.IsPositive() {
		return decimal.Zero, core.ErrInvalidInput
	}
	return d, nil
}
