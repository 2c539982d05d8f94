// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"

	"github.com/agritrace/agritrace-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByFarmer(ctx context.Context, farmerID string) ([]Activity, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	query := `
		INSERT INTO farm_activities (
			id, farmer_id, recorded_by, type, date, cost,
			seed_variety, seed_source, seed_quantity, seed_lot_number,
			fertilizer_type, fertilizer_amount,
			pesticide_type, pesticide_amount,
			pest_control_method, pest_target, general_details
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.FarmerID,
		a.RecordedBy,
		a.Type,
		a.Date,
		a.Cost,
		a.SeedVariety,
		a.SeedSource,
		a.SeedQuantity,
		a.SeedLotNumber,
		a.FertilizerType,
		a.FertilizerAmount,
		a.PesticideType,
		a.PesticideAmount,
		a.PestControlMethod,
		a.PestTarget,
		a.GeneralDetails,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}

func (r *repository) ListByFarmer(
	ctx context.Context,
	farmerID string,
) ([]Activity, error) {
	query := `
		SELECT a.id, a.farmer_id, a.recorded_by,
			COALESCE(u.name, '') AS recorded_by_name,
			a.type, a.date, a.cost,
			a.seed_variety, a.seed_source, a.seed_quantity, a.seed_lot_number,
			a.fertilizer_type, a.fertilizer_amount,
			a.pesticide_type, a.pesticide_amount,
			a.pest_control_method, a.pest_target, a.general_details,
			a.created_at
		FROM farm_activities a
		LEFT JOIN users u ON u.id = a.recorded_by
		WHERE a.farmer_id = $1
		ORDER BY a.date DESC, a.created_at DESC`

	var activities []Activity
	if err := r.db.SelectContext(ctx, &activities, query, farmerID); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM farm_activities`); err != nil {
		return 0, fmt.Errorf("count activities: %w", err)
	}
	return n, nil
}
