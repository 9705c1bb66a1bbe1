package repositories

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// BookingTokenRepositoryFacade tracks consumed single-use booking tokens.
type BookingTokenRepositoryFacade interface {
	// MarkTokenUsed records the token as consumed. ErrConflict when it was
	// already used.
	MarkTokenUsed(ctx context.Context, use domain.BookingTokenUse) error
	IsTokenUsed(ctx context.Context, tokenID string) (bool, error)
}
