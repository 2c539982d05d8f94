// AngelaMos | 2026
// repository.go

package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agritrace/agritrace-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Collection) error
	GetByID(ctx context.Context, id string) (*Collection, error)
	List(ctx context.Context) ([]Collection, error)
	ListByFarmer(ctx context.Context, farmerID string) ([]Collection, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*Collection, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectCollection = `
	SELECT c.id, c.farmer_id,
		COALESCE(f.name, '') AS farmer_name,
		COALESCE(f.region, '') AS farmer_region,
		c.recorded_by, c.crop, c.harvest_date, c.collection_date,
		c.weight, c.quality_grade, c.payment_rate, c.total_payment,
		c.payment_status, c.payment_date, c.created_at, c.updated_at
	FROM collections c
	LEFT JOIN farmers f ON f.id = c.farmer_id`

func (r *repository) Create(ctx context.Context, c *Collection) error {
	query := `
		INSERT INTO collections (
			id, farmer_id, recorded_by, crop, harvest_date, collection_date,
			weight, quality_grade, payment_rate, total_payment, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.FarmerID,
		c.RecordedBy,
		c.Crop,
		c.HarvestDate,
		c.CollectionDate,
		c.Weight,
		c.QualityGrade,
		c.PaymentRate,
		c.TotalPayment,
		c.PaymentStatus,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Collection, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("get collection: %w", core.ErrNotFound)
	}

	var c Collection
	err := r.db.GetContext(ctx, &c, selectCollection+` WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get collection: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Collection, error) {
	var collections []Collection
	err := r.db.SelectContext(ctx, &collections,
		selectCollection+` ORDER BY c.collection_date DESC, c.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	return collections, nil
}

func (r *repository) ListByFarmer(
	ctx context.Context,
	farmerID string,
) ([]Collection, error) {
	var collections []Collection
	err := r.db.SelectContext(ctx, &collections,
		selectCollection+` WHERE c.farmer_id = $1
			ORDER BY c.collection_date DESC, c.created_at DESC`,
		farmerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list farmer collections: %w", err)
	}

	return collections, nil
}

// MarkPaid sets the status to Paid and stamps the payment date. Paying a
// Paid collection again only moves the date; nothing returns it to Pending.
func (r *repository) MarkPaid(
	ctx context.Context,
	id string,
	paidAt time.Time,
) (*Collection, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("mark paid: %w", core.ErrNotFound)
	}

	query := `
		UPDATE collections
		SET payment_status = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, StatusPaid, paidAt)
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	if rows == 0 {
		return nil, fmt.Errorf("mark paid: %w", core.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM collections`); err != nil {
		return 0, fmt.Errorf("count collections: %w", err)
	}
	return n, nil
}
