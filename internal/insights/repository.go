// AngelaMos | 2026
// repository.go

package insights

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agritrace/agritrace-api/internal/core"
)

type RecentActivity struct {
	Type           string    `db:"type"`
	Date           time.Time `db:"date"`
	FarmerName     string    `db:"farmer_name"`
	Region         string    `db:"region"`
	ContractedCrop string    `db:"contracted_crop"`
	Details        string    `db:"general_details"`
}

type FarmerSnapshot struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Region          string  `db:"region"`
	ContractedCrop  string  `db:"contracted_crop"`
	ActivityCount   int     `db:"activity_count"`
	ActivityCost    float64 `db:"activity_cost"`
	CollectionCount int     `db:"collection_count"`
	TotalWeight     float64 `db:"total_weight"`
	TotalPaid       float64 `db:"total_paid"`
	TotalPending    float64 `db:"total_pending"`
	LastActivity    string  `db:"last_activity"`
}

type RegionCropYield struct {
	Region      string  `db:"region"`
	Crop        string  `db:"crop"`
	Collections int     `db:"collections"`
	TotalWeight float64 `db:"total_weight"`
	AvgWeight   float64 `db:"avg_weight"`
	Plantings   int     `db:"plantings"`
}

type Repository interface {
	RecentActivities(ctx context.Context, limit int) ([]RecentActivity, error)
	FarmerCount(ctx context.Context) (int, error)
	FarmerSnapshot(ctx context.Context, id string) (*FarmerSnapshot, error)
	ActivityDistribution(ctx context.Context) ([]Row, error)
	CollectionsSince(ctx context.Context, since time.Time) ([]Row, error)
	YieldByRegion(ctx context.Context) ([]Row, error)
	QualityDistribution(ctx context.Context) ([]Row, error)
	RegionCropYields(ctx context.Context, since time.Time) ([]RegionCropYield, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) RecentActivities(
	ctx context.Context,
	limit int,
) ([]RecentActivity, error) {
	query := `
		SELECT a.type, a.date, f.name AS farmer_name, f.region,
			f.contracted_crop, a.general_details
		FROM farm_activities a
		JOIN farmers f ON f.id = a.farmer_id
		ORDER BY a.date DESC
		LIMIT $1`

	var out []RecentActivity
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("recent activities: %w", err)
	}
	return out, nil
}

func (r *repository) FarmerCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM farmers`); err != nil {
		return 0, fmt.Errorf("count farmers: %w", err)
	}
	return n, nil
}

func (r *repository) FarmerSnapshot(
	ctx context.Context,
	id string,
) (*FarmerSnapshot, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("farmer snapshot: %w", core.ErrNotFound)
	}

	query := `
		SELECT f.id, f.name, f.region, f.contracted_crop,
			(SELECT COUNT(*) FROM farm_activities a WHERE a.farmer_id = f.id)
				AS activity_count,
			(SELECT COALESCE(SUM(a.cost), 0)::float8 FROM farm_activities a
				WHERE a.farmer_id = f.id) AS activity_cost,
			(SELECT COUNT(*) FROM collections c WHERE c.farmer_id = f.id)
				AS collection_count,
			(SELECT COALESCE(SUM(c.weight), 0)::float8 FROM collections c
				WHERE c.farmer_id = f.id) AS total_weight,
			(SELECT COALESCE(SUM(c.total_payment), 0)::float8 FROM collections c
				WHERE c.farmer_id = f.id AND c.payment_status = 'Paid') AS total_paid,
			(SELECT COALESCE(SUM(c.total_payment), 0)::float8 FROM collections c
				WHERE c.farmer_id = f.id AND c.payment_status = 'Pending') AS total_pending,
			COALESCE((SELECT a.type FROM farm_activities a WHERE a.farmer_id = f.id
				ORDER BY a.date DESC LIMIT 1), '') AS last_activity
		FROM farmers f
		WHERE f.id = $1`

	var snap FarmerSnapshot
	err := r.db.GetContext(ctx, &snap, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("farmer snapshot: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("farmer snapshot: %w", err)
	}
	return &snap, nil
}

func (r *repository) ActivityDistribution(ctx context.Context) ([]Row, error) {
	return r.rows(ctx, "activity distribution", `
		SELECT type AS label, COUNT(*)::float8 AS value
		FROM farm_activities
		GROUP BY type
		ORDER BY value DESC, label`)
}

func (r *repository) CollectionsSince(
	ctx context.Context,
	since time.Time,
) ([]Row, error) {
	return r.rows(ctx, "collections timeseries", `
		SELECT to_char(date_trunc('day', collection_date AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS label,
			SUM(weight)::float8 AS value
		FROM collections
		WHERE collection_date >= $1
		GROUP BY label
		ORDER BY label`, since)
}

func (r *repository) YieldByRegion(ctx context.Context) ([]Row, error) {
	return r.rows(ctx, "yield by region", `
		SELECT f.region AS label, SUM(c.weight)::float8 AS value
		FROM collections c
		JOIN farmers f ON f.id = c.farmer_id
		GROUP BY f.region
		ORDER BY value DESC, label`)
}

func (r *repository) QualityDistribution(ctx context.Context) ([]Row, error) {
	return r.rows(ctx, "quality distribution", `
		SELECT quality_grade AS label, SUM(weight)::float8 AS value
		FROM collections
		GROUP BY quality_grade
		ORDER BY label`)
}

func (r *repository) RegionCropYields(
	ctx context.Context,
	since time.Time,
) ([]RegionCropYield, error) {
	query := `
		SELECT f.region, f.contracted_crop AS crop,
			COUNT(c.id) AS collections,
			COALESCE(SUM(c.weight), 0)::float8 AS total_weight,
			COALESCE(AVG(c.weight), 0)::float8 AS avg_weight,
			(SELECT COUNT(*) FROM farm_activities a
				JOIN farmers f2 ON f2.id = a.farmer_id
				WHERE f2.region = f.region
					AND f2.contracted_crop = f.contracted_crop
					AND a.type = 'Planting'
					AND a.date >= $1) AS plantings
		FROM farmers f
		LEFT JOIN collections c
			ON c.farmer_id = f.id AND c.collection_date >= $1
		GROUP BY f.region, f.contracted_crop
		ORDER BY total_weight DESC, f.region`

	var out []RegionCropYield
	if err := r.db.SelectContext(ctx, &out, query, since); err != nil {
		return nil, fmt.Errorf("region crop yields: %w", err)
	}
	return out, nil
}

func (r *repository) rows(
	ctx context.Context,
	op, query string,
	args ...any,
) ([]Row, error) {
	var out []Row
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
