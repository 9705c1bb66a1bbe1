package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

func (r *PgxScheduleRepository) ListOperatingHours(ctx context.Context, orgID string, branchID string) ([]domain.OperatingHours, error) {
	query := `
		SELECT hours_id, org_id, branch_id, weekday, opens_at, closes_at, created_at, created_by, last_updated_at, last_updated_by
		FROM operating_hours WHERE org_id = $1 AND branch_id = $2
		ORDER BY weekday, opens_at;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query operating hours", err)
	}
	defer rows.Close()

	var hours []domain.OperatingHours
	for rows.Next() {
		var h domain.OperatingHours
		var weekday int
		if err := rows.Scan(
			&h.HoursID, &h.OrgID, &h.BranchID, &weekday, &h.OpensAt, &h.ClosesAt,
			&h.CreatedAt, &h.CreatedBy, &h.LastUpdatedAt, &h.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		h.Weekday = time.Weekday(weekday)
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func (r *PgxScheduleRepository) SaveOperatingHours(ctx context.Context, hours domain.OperatingHours) error {
	query := `
		INSERT INTO operating_hours (hours_id, org_id, branch_id, weekday, opens_at, closes_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		hours.HoursID, hours.OrgID, hours.BranchID, int(hours.Weekday), hours.OpensAt, hours.ClosesAt,
		hours.CreatedAt, hours.CreatedBy, hours.LastUpdatedAt, hours.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert operating hours "+hours.HoursID, err)
	}
	return nil
}

func (r *PgxScheduleRepository) ListBlackoutsOverlapping(ctx context.Context, orgID string, branchID string, start, end time.Time) ([]domain.Blackout, error) {
	query := `
		SELECT blackout_id, org_id, branch_id, start_at, end_at, reason, created_at, created_by, last_updated_at, last_updated_by
		FROM blackouts
		WHERE org_id = $1 AND branch_id = $2 AND start_at < $3 AND $4 < end_at
		ORDER BY start_at;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, branchID, end, start)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query blackouts", err)
	}
	defer rows.Close()

	var blackouts []domain.Blackout
	for rows.Next() {
		var b domain.Blackout
		if err := rows.Scan(
			&b.BlackoutID, &b.OrgID, &b.BranchID, &b.StartAt, &b.EndAt, &b.Reason,
			&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		blackouts = append(blackouts, b)
	}
	return blackouts, rows.Err()
}

func (r *PgxScheduleRepository) SaveBlackout(ctx context.Context, blackout domain.Blackout) error {
	query := `
		INSERT INTO blackouts (blackout_id, org_id, branch_id, start_at, end_at, reason, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		blackout.BlackoutID, blackout.OrgID, blackout.BranchID, blackout.StartAt, blackout.EndAt, blackout.Reason,
		blackout.CreatedAt, blackout.CreatedBy, blackout.LastUpdatedAt, blackout.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert blackout "+blackout.BlackoutID, err)
	}
	return nil
}

func (r *PgxScheduleRepository) FindCapacityRule(ctx context.Context, orgID string, branchID string) (*domain.CapacityRule, error) {
	query := `
		SELECT rule_id, org_id, branch_id, max_parties_per_hour, max_covers_per_hour, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM capacity_rules WHERE org_id = $1 AND branch_id = $2;
	`
	var rule domain.CapacityRule
	err := r.Pool.QueryRow(ctx, query, orgID, branchID).Scan(
		&rule.RuleID, &rule.OrgID, &rule.BranchID,
		&rule.MaxPartiesPerHour, &rule.MaxCoversPerHour, &rule.IsActive,
		&rule.CreatedAt, &rule.CreatedBy, &rule.LastUpdatedAt, &rule.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *PgxScheduleRepository) SaveCapacityRule(ctx context.Context, rule domain.CapacityRule) error {
	query := `
		INSERT INTO capacity_rules (rule_id, org_id, branch_id, max_parties_per_hour, max_covers_per_hour, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (org_id, branch_id) DO UPDATE
		SET max_parties_per_hour = EXCLUDED.max_parties_per_hour,
		    max_covers_per_hour = EXCLUDED.max_covers_per_hour,
		    is_active = EXCLUDED.is_active,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		rule.RuleID, rule.OrgID, rule.BranchID, rule.MaxPartiesPerHour, rule.MaxCoversPerHour, rule.IsActive,
		rule.CreatedAt, rule.CreatedBy, rule.LastUpdatedAt, rule.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save capacity rule for branch "+rule.BranchID, err)
	}
	return nil
}
