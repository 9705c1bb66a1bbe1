package services

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// WaitlistSvcFacade manages walk-in waitlists and their promotion into
// reservations.
type WaitlistSvcFacade interface {
	JoinWaitlist(ctx context.Context, orgID string, req dto.JoinWaitlistRequest, actorID string) (*domain.WaitlistEntry, error)
	WithdrawEntry(ctx context.Context, orgID string, waitlistID string, actorID string) (*domain.WaitlistEntry, error)
	ListWaitlist(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error)

	// TryAutoPromote converts the oldest WAITING entry into a CONFIRMED
	// reservation if the policy allows auto-promotion and a table is free for
	// the policy's promotion window starting now. Returns the new reservation
	// ID, or nil when nothing was promoted (empty list, promotion disabled,
	// or no free table; the entry stays WAITING for the next attempt).
	TryAutoPromote(ctx context.Context, orgID string, branchID string, actorID string) (*string, error)
}
