package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxBranchRepository struct {
	BaseRepository
}

func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (branch_id, org_id, name, timezone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (branch_id) DO UPDATE
		SET name = EXCLUDED.name, timezone = EXCLUDED.timezone, is_active = EXCLUDED.is_active,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		branch.BranchID, branch.OrgID, branch.Name, branch.Timezone, branch.IsActive,
		branch.CreatedAt, branch.CreatedBy, branch.LastUpdatedAt, branch.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save branch "+branch.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, orgID string, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, org_id, name, timezone, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM branches WHERE org_id = $1 AND branch_id = $2;
	`
	var b domain.Branch
	err := r.Pool.QueryRow(ctx, query, orgID, branchID).Scan(
		&b.BranchID, &b.OrgID, &b.Name, &b.Timezone, &b.IsActive,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PgxBranchRepository) SaveTable(ctx context.Context, table domain.RestaurantTable) error {
	query := `
		INSERT INTO restaurant_tables (table_id, org_id, branch_id, name, capacity, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (table_id) DO UPDATE
		SET name = EXCLUDED.name, capacity = EXCLUDED.capacity, is_active = EXCLUDED.is_active,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		table.TableID, table.OrgID, table.BranchID, table.Name, table.Capacity, table.IsActive,
		table.CreatedAt, table.CreatedBy, table.LastUpdatedAt, table.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save table "+table.TableID, err)
	}
	return nil
}

func (r *PgxBranchRepository) FindTableByID(ctx context.Context, orgID string, tableID string) (*domain.RestaurantTable, error) {
	query := `
		SELECT table_id, org_id, branch_id, name, capacity, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM restaurant_tables WHERE org_id = $1 AND table_id = $2;
	`
	var t domain.RestaurantTable
	err := r.Pool.QueryRow(ctx, query, orgID, tableID).Scan(
		&t.TableID, &t.OrgID, &t.BranchID, &t.Name, &t.Capacity, &t.IsActive,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PgxBranchRepository) ListActiveTables(ctx context.Context, orgID string, branchID string) ([]domain.RestaurantTable, error) {
	// Ordering is load-bearing: auto-assignment picks the first fit, so the
	// smallest sufficient table wins with ties broken by ID.
	query := `
		SELECT table_id, org_id, branch_id, name, capacity, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM restaurant_tables
		WHERE org_id = $1 AND branch_id = $2 AND is_active
		ORDER BY capacity, table_id;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tables", err)
	}
	defer rows.Close()

	var tables []domain.RestaurantTable
	for rows.Next() {
		var t domain.RestaurantTable
		if err := rows.Scan(
			&t.TableID, &t.OrgID, &t.BranchID, &t.Name, &t.Capacity, &t.IsActive,
			&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
