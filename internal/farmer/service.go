// AngelaMos | 2026
// service.go

package farmer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/notify"
)

type ActivityLister interface {
	ListByFarmer(ctx context.Context, farmerID string) ([]activity.Response, error)
}

type CollectionLister interface {
	ListByFarmer(ctx context.Context, farmerID string) ([]collection.Response, error)
}

type Service struct {
	repo        Repository
	activities  ActivityLister
	collections CollectionLister
	publisher   notify.Publisher
}

func NewService(
	repo Repository,
	activities ActivityLister,
	collections CollectionLister,
	publisher notify.Publisher,
) *Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Service{
		repo:        repo,
		activities:  activities,
		collections: collections,
		publisher:   publisher,
	}
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreateFarmerRequest,
) (*Response, error) {
	f := &Farmer{
		ID:             core.NewID(),
		Name:           req.Name,
		Region:         req.Region,
		Contact:        req.Contact,
		ContractedCrop: req.ContractedCrop,
		ContractID:     req.ContractID,
		RegisteredBy:   userID,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	//nolint:errcheck // delivery is best-effort
	_ = s.publisher.Publish(ctx, notify.Event{
		Name:    notify.EventNewFarmer,
		Message: fmt.Sprintf("New farmer %s registered in %s", f.Name, f.Region),
		Data: map[string]any{
			"id":     f.ID,
			"name":   f.Name,
			"region": f.Region,
		},
	})

	resp := ToResponse(f)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	farmers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToResponseList(farmers), nil
}

// Profile returns the farmer together with its activities and collections.
func (s *Service) Profile(ctx context.Context, id string) (*ProfileResponse, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &ProfileResponse{Farmer: ToResponse(f)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.activities.ListByFarmer(gctx, f.ID)
		profile.Activities = list
		return err
	})
	g.Go(func() error {
		list, err := s.collections.ListByFarmer(gctx, f.ID)
		profile.Collections = list
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load farmer profile: %w", err)
	}

	return profile, nil
}

// Update applies a partial update. Only the registrant may edit a farmer.
func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateFarmerRequest,
) (*Response, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !f.IsRegisteredBy(userID) {
		return nil, fmt.Errorf("update farmer: %w", core.ErrForbidden)
	}

	req.apply(f)

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	resp := ToResponse(f)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	result, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return nil, err
	}

	return &DeleteResponse{
		Message:            "Farmer removed",
		ActivitiesRemoved:  result.ActivitiesRemoved,
		CollectionsRemoved: result.CollectionsRemoved,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Directory resolves farmer names for the activity and collection services.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) FarmerName(ctx context.Context, id string) (string, error) {
	f, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return f.Name, nil
}

var (
	_ activity.FarmerLookup   = (*Directory)(nil)
	_ collection.FarmerLookup = (*Directory)(nil)
)
