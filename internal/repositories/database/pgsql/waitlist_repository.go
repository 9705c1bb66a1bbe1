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

type PgxWaitlistRepository struct {
	BaseRepository
}

func newPgxWaitlistRepository(pool *pgxpool.Pool) portsrepo.WaitlistRepositoryFacade {
	return &PgxWaitlistRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WaitlistRepositoryFacade = (*PgxWaitlistRepository)(nil)

const waitlistColumns = `waitlist_id, org_id, branch_id, guest_name, guest_phone, party_size, status, promoted_to_reservation_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanWaitlistEntry(row pgx.Row) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	err := row.Scan(
		&e.WaitlistID, &e.OrgID, &e.BranchID, &e.GuestName, &e.GuestPhone, &e.PartySize,
		&e.Status, &e.PromotedToReservationID, &e.Notes,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *PgxWaitlistRepository) SaveEntry(ctx context.Context, entry domain.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist_entries (` + waitlistColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.WaitlistID, entry.OrgID, entry.BranchID, entry.GuestName, entry.GuestPhone,
		entry.PartySize, entry.Status, entry.PromotedToReservationID, entry.Notes,
		entry.CreatedAt, entry.CreatedBy, entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert waitlist entry "+entry.WaitlistID, err)
	}
	return nil
}

func (r *PgxWaitlistRepository) FindEntryByID(ctx context.Context, orgID string, waitlistID string) (*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waitlist_entries WHERE org_id = $1 AND waitlist_id = $2;`
	return scanWaitlistEntry(r.Pool.QueryRow(ctx, query, orgID, waitlistID))
}

func (r *PgxWaitlistRepository) FindOldestWaiting(ctx context.Context, orgID string, branchID string) (*domain.WaitlistEntry, error) {
	// FIFO by arrival; the ID tie-break makes simultaneous arrivals stable.
	query := `
		SELECT ` + waitlistColumns + ` FROM waitlist_entries
		WHERE org_id = $1 AND branch_id = $2 AND status = $3
		ORDER BY created_at, waitlist_id
		LIMIT 1;
	`
	return scanWaitlistEntry(r.Pool.QueryRow(ctx, query, orgID, branchID, domain.WaitlistWaiting))
}

func (r *PgxWaitlistRepository) UpdateEntryGuarded(ctx context.Context, entry domain.WaitlistEntry, expectedStatus domain.WaitlistStatus) error {
	query := `
		UPDATE waitlist_entries
		SET status = $1, promoted_to_reservation_id = $2, notes = $3,
		    last_updated_at = $4, last_updated_by = $5
		WHERE org_id = $6 AND waitlist_id = $7 AND status = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.Status, entry.PromotedToReservationID, entry.Notes,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
		entry.OrgID, entry.WaitlistID, expectedStatus,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update waitlist entry "+entry.WaitlistID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxWaitlistRepository) ListEntries(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	query := `
		SELECT ` + waitlistColumns + ` FROM waitlist_entries
		WHERE org_id = $1 AND branch_id = $2 AND ($3::text IS NULL OR status = $3)
		ORDER BY created_at, waitlist_id;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, branchID, status)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query waitlist entries", err)
	}
	defer rows.Close()

	var entries []domain.WaitlistEntry
	for rows.Next() {
		entry, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *PgxWaitlistRepository) ListBranchesWithWaiting(ctx context.Context) ([]portsrepo.BranchRef, error) {
	query := `
		SELECT DISTINCT org_id, branch_id FROM waitlist_entries
		WHERE status = $1
		ORDER BY org_id, branch_id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.WaitlistWaiting)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query waiting branches", err)
	}
	defer rows.Close()

	var refs []portsrepo.BranchRef
	for rows.Next() {
		var ref portsrepo.BranchRef
		if err := rows.Scan(&ref.OrgID, &ref.BranchID); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
