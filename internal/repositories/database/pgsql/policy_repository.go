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

type PgxPolicyRepository struct {
	BaseRepository
}

func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

const policyColumns = `policy_id, org_id, branch_id, lead_time_minutes, max_party_size, hold_expiry_minutes, cancel_cutoff_minutes, no_show_grace_minutes, promotion_window_minutes, deposit_required, deposit_amount, auto_expire_held_enabled, waitlist_auto_promote, reminder_enabled, max_capacity_per_slot, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPolicyRepository) FindPolicyByBranch(ctx context.Context, orgID string, branchID string) (*domain.ReservationPolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM reservation_policies WHERE org_id = $1 AND branch_id = $2;`
	var p domain.ReservationPolicy
	err := r.Pool.QueryRow(ctx, query, orgID, branchID).Scan(
		&p.PolicyID, &p.OrgID, &p.BranchID,
		&p.LeadTimeMinutes, &p.MaxPartySize, &p.HoldExpiryMinutes,
		&p.CancelCutoffMinutes, &p.NoShowGraceMinutes, &p.PromotionWindowMinutes,
		&p.DepositRequired, &p.DepositAmount,
		&p.AutoExpireHeldEnabled, &p.WaitlistAutoPromote, &p.ReminderEnabled,
		&p.MaxCapacityPerSlot,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgxPolicyRepository) SavePolicy(ctx context.Context, policy domain.ReservationPolicy) error {
	query := `
		INSERT INTO reservation_policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (org_id, branch_id) DO UPDATE
		SET lead_time_minutes = EXCLUDED.lead_time_minutes,
		    max_party_size = EXCLUDED.max_party_size,
		    hold_expiry_minutes = EXCLUDED.hold_expiry_minutes,
		    cancel_cutoff_minutes = EXCLUDED.cancel_cutoff_minutes,
		    no_show_grace_minutes = EXCLUDED.no_show_grace_minutes,
		    promotion_window_minutes = EXCLUDED.promotion_window_minutes,
		    deposit_required = EXCLUDED.deposit_required,
		    deposit_amount = EXCLUDED.deposit_amount,
		    auto_expire_held_enabled = EXCLUDED.auto_expire_held_enabled,
		    waitlist_auto_promote = EXCLUDED.waitlist_auto_promote,
		    reminder_enabled = EXCLUDED.reminder_enabled,
		    max_capacity_per_slot = EXCLUDED.max_capacity_per_slot,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		policy.PolicyID, policy.OrgID, policy.BranchID,
		policy.LeadTimeMinutes, policy.MaxPartySize, policy.HoldExpiryMinutes,
		policy.CancelCutoffMinutes, policy.NoShowGraceMinutes, policy.PromotionWindowMinutes,
		policy.DepositRequired, policy.DepositAmount,
		policy.AutoExpireHeldEnabled, policy.WaitlistAutoPromote, policy.ReminderEnabled,
		policy.MaxCapacityPerSlot,
		policy.CreatedAt, policy.CreatedBy, policy.LastUpdatedAt, policy.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save policy for branch "+policy.BranchID, err)
	}
	return nil
}
