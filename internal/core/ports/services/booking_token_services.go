package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// BookingTokenSvcFacade issues and validates single-use public booking
// tokens (guest-facing confirm/cancel links).
type BookingTokenSvcFacade interface {
	GenerateToken(ctx context.Context, orgID string, reservationID string, scope domain.BookingTokenScope, ttlHours int) (string, error)
	ValidateToken(ctx context.Context, token string, requiredScope domain.BookingTokenScope) (*domain.BookingTokenClaims, error)
	MarkUsed(ctx context.Context, claims *domain.BookingTokenClaims) error
}
