package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

type PgxBookingTokenRepository struct {
	BaseRepository
}

func newPgxBookingTokenRepository(pool *pgxpool.Pool) portsrepo.BookingTokenRepositoryFacade {
	return &PgxBookingTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BookingTokenRepositoryFacade = (*PgxBookingTokenRepository)(nil)

// MarkTokenUsed records a token use. The primary key makes the second insert
// for the same token fail, which is what keeps booking links single-use.
func (r *PgxBookingTokenRepository) MarkTokenUsed(ctx context.Context, use domain.BookingTokenUse) error {
	query := `INSERT INTO booking_token_uses (token_id, reservation_id, used_at) VALUES ($1, $2, $3);`
	_, err := r.Pool.Exec(ctx, query, use.TokenID, use.ReservationID, use.UsedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to mark booking token used", err)
	}
	return nil
}

func (r *PgxBookingTokenRepository) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM booking_token_uses WHERE token_id = $1);`, tokenID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check booking token use", err)
	}
	return exists, nil
}
