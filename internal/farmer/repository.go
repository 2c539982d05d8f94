// AngelaMos | 2026
// repository.go

package farmer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/agritrace/agritrace-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, farmer *Farmer) error
	GetByID(ctx context.Context, id string) (*Farmer, error)
	List(ctx context.Context) ([]Farmer, error)
	Update(ctx context.Context, farmer *Farmer) error
	DeleteCascade(ctx context.Context, id string) (*DeleteResult, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.TxBeginner
}

func NewRepository(db core.TxBeginner) Repository {
	return &repository{db: db}
}

const selectFarmer = `
	SELECT f.id, f.name, f.region, f.contact, f.contracted_crop,
		f.contract_id, f.registered_by,
		COALESCE(u.name, '') AS registered_by_name,
		f.created_at, f.updated_at
	FROM farmers f
	LEFT JOIN users u ON u.id = f.registered_by`

func (r *repository) Create(ctx context.Context, f *Farmer) error {
	query := `
		INSERT INTO farmers (
			id, name, region, contact, contracted_crop, contract_id, registered_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID,
		f.Name,
		f.Region,
		f.Contact,
		f.ContractedCrop,
		f.ContractID,
		f.RegisteredBy,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create farmer: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create farmer: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Farmer, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("get farmer: %w", core.ErrNotFound)
	}

	var f Farmer
	err := r.db.GetContext(ctx, &f, selectFarmer+` WHERE f.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get farmer: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get farmer: %w", err)
	}

	return &f, nil
}

func (r *repository) List(ctx context.Context) ([]Farmer, error) {
	var farmers []Farmer
	err := r.db.SelectContext(ctx, &farmers,
		selectFarmer+` ORDER BY f.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}

	return farmers, nil
}

func (r *repository) Update(ctx context.Context, f *Farmer) error {
	query := `
		UPDATE farmers
		SET name = $2, region = $3, contact = $4,
			contracted_crop = $5, contract_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID,
		f.Name,
		f.Region,
		f.Contact,
		f.ContractedCrop,
		f.ContractID,
	).Scan(&f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update farmer: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("update farmer: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update farmer: %w", err)
	}

	return nil
}

// DeleteCascade removes the farmer's activities and collections and then the
// farmer in a single transaction.
func (r *repository) DeleteCascade(
	ctx context.Context,
	id string,
) (*DeleteResult, error) {
	if !core.IsValidID(id) {
		return nil, fmt.Errorf("delete farmer: %w", core.ErrNotFound)
	}

	var result DeleteResult
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked string
		err := tx.GetContext(ctx, &locked,
			`SELECT id FROM farmers WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete farmer: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock farmer: %w", err)
		}

		n, err := execCount(ctx, tx, `DELETE FROM farm_activities WHERE farmer_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		result.ActivitiesRemoved = n

		n, err = execCount(ctx, tx, `DELETE FROM collections WHERE farmer_id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete collections: %w", err)
		}
		result.CollectionsRemoved = n

		if _, err := execCount(ctx, tx, `DELETE FROM farmers WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete farmer: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM farmers`); err != nil {
		return 0, fmt.Errorf("count farmers: %w", err)
	}
	return n, nil
}

func execCount(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
