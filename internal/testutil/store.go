// AngelaMos | 2026
// store.go

// Package testutil provides an in-memory implementation of the
// repositories for HTTP-level tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agritrace/agritrace-api/internal/activity"
	"github.com/agritrace/agritrace-api/internal/collection"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/farmer"
	"github.com/agritrace/agritrace-api/internal/user"
)

type Store struct {
	mu          sync.Mutex
	users       map[string]user.User
	farmers     map[string]farmer.Farmer
	activities  map[string]activity.Activity
	collections map[string]collection.Collection
	clock       time.Time
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]user.User),
		farmers:     make(map[string]farmer.Farmer),
		activities:  make(map[string]activity.Activity),
		collections: make(map[string]collection.Collection),
		clock:       time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering is stable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() user.Repository             { return &userRepo{s} }
func (s *Store) Farmers() farmer.Repository         { return &farmerRepo{s} }
func (s *Store) Activities() activity.Repository    { return &activityRepo{s} }
func (s *Store) Collections() collection.Repository { return &collectionRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	now := r.s.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

func (r *userRepo) UpdateRole(_ context.Context, id, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	u.Role = role
	u.TokenVersion++
	u.UpdatedAt = r.s.tick()
	r.s.users[id] = u
	return nil
}

func (r *userRepo) List(_ context.Context, params user.ListParams) ([]user.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	params.Normalize()
	search := strings.ToLower(params.Search)

	matched := []user.User{}
	for _, u := range r.s.users {
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		matched = append(matched, u)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := min(params.Offset(), total)
	end := min(start+params.PageSize, total)
	return matched[start:end], total, nil
}

func (r *userRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

type farmerRepo struct{ s *Store }

func (r *farmerRepo) withName(f farmer.Farmer) farmer.Farmer {
	f.RegisteredByName = r.s.users[f.RegisteredBy].Name
	return f
}

func (r *farmerRepo) Create(_ context.Context, f *farmer.Farmer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.farmers {
		if existing.ContractID == f.ContractID {
			return fmt.Errorf("create farmer: %w", core.ErrDuplicateKey)
		}
	}
	now := r.s.tick()
	f.CreatedAt, f.UpdatedAt = now, now
	r.s.farmers[f.ID] = *f
	return nil
}

func (r *farmerRepo) GetByID(_ context.Context, id string) (*farmer.Farmer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.farmers[id]
	if !ok {
		return nil, fmt.Errorf("get farmer: %w", core.ErrNotFound)
	}
	f = r.withName(f)
	return &f, nil
}

func (r *farmerRepo) List(context.Context) ([]farmer.Farmer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]farmer.Farmer, 0, len(r.s.farmers))
	for _, f := range r.s.farmers {
		out = append(out, r.withName(f))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *farmerRepo) Update(_ context.Context, f *farmer.Farmer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.farmers[f.ID]; !ok {
		return fmt.Errorf("update farmer: %w", core.ErrNotFound)
	}
	f.UpdatedAt = r.s.tick()
	r.s.farmers[f.ID] = *f
	return nil
}

func (r *farmerRepo) DeleteCascade(_ context.Context, id string) (*farmer.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.farmers[id]; !ok {
		return nil, fmt.Errorf("delete farmer: %w", core.ErrNotFound)
	}

	var result farmer.DeleteResult
	for aid, a := range r.s.activities {
		if a.FarmerID == id {
			delete(r.s.activities, aid)
			result.ActivitiesRemoved++
		}
	}
	for cid, c := range r.s.collections {
		if c.FarmerID == id {
			delete(r.s.collections, cid)
			result.CollectionsRemoved++
		}
	}
	delete(r.s.farmers, id)

	return &result, nil
}

func (r *farmerRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.farmers), nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Create(_ context.Context, a *activity.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.farmers[a.FarmerID]; !ok {
		return fmt.Errorf("create activity: farmer reference: %w", core.ErrInvalidInput)
	}
	a.CreatedAt = r.s.tick()
	r.s.activities[a.ID] = *a
	return nil
}

func (r *activityRepo) ListByFarmer(_ context.Context, farmerID string) ([]activity.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []activity.Activity{}
	for _, a := range r.s.activities {
		if a.FarmerID == farmerID {
			a.RecordedByName = r.s.users[a.RecordedBy].Name
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *activityRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.activities), nil
}

type collectionRepo struct{ s *Store }

func (r *collectionRepo) populate(c collection.Collection) collection.Collection {
	f := r.s.farmers[c.FarmerID]
	c.FarmerName, c.FarmerRegion = f.Name, f.Region
	return c
}

func (r *collectionRepo) Create(_ context.Context, c *collection.Collection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.farmers[c.FarmerID]; !ok {
		return fmt.Errorf("create collection: farmer reference: %w", core.ErrInvalidInput)
	}
	now := r.s.tick()
	c.CreatedAt, c.UpdatedAt = now, now
	r.s.collections[c.ID] = *c
	return nil
}

func (r *collectionRepo) GetByID(_ context.Context, id string) (*collection.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.collections[id]
	if !ok {
		return nil, fmt.Errorf("get collection: %w", core.ErrNotFound)
	}
	c = r.populate(c)
	return &c, nil
}

func (r *collectionRepo) list(match func(collection.Collection) bool) []collection.Collection {
	out := []collection.Collection{}
	for _, c := range r.s.collections {
		if match(c) {
			out = append(out, r.populate(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CollectionDate.Equal(out[j].CollectionDate) {
			return out[i].CollectionDate.After(out[j].CollectionDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *collectionRepo) List(context.Context) ([]collection.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(collection.Collection) bool { return true }), nil
}

func (r *collectionRepo) ListByFarmer(_ context.Context, farmerID string) ([]collection.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(c collection.Collection) bool { return c.FarmerID == farmerID }), nil
}

func (r *collectionRepo) MarkPaid(_ context.Context, id string, paidAt time.Time) (*collection.Collection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.collections[id]
	if !ok {
		return nil, fmt.Errorf("mark paid: %w", core.ErrNotFound)
	}
	c.PaymentStatus = collection.StatusPaid
	c.PaymentDate = &paidAt
	c.UpdatedAt = r.s.tick()
	r.s.collections[id] = c

	c = r.populate(c)
	return &c, nil
}

func (r *collectionRepo) Count(context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.collections), nil
}

var (
	_ user.Repository       = (*userRepo)(nil)
	_ farmer.Repository     = (*farmerRepo)(nil)
	_ activity.Repository   = (*activityRepo)(nil)
	_ collection.Repository = (*collectionRepo)(nil)
)
