package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// DepositSvcFacade manages a deposit's forward-only lifecycle and posts the
// corresponding ledger entries. Each settling transition updates the deposit
// row and writes its journal entry in one atomic unit.
type DepositSvcFacade interface {
	// RequireDeposit attaches a deposit to a reservation. ErrConflict when
	// one already exists (at-most-one invariant).
	RequireDeposit(ctx context.Context, orgID string, reservationID string, req dto.RequireDepositRequest, actorID string) (*domain.ReservationDeposit, error)

	// PayDeposit moves REQUIRED -> PAID, posting Cash / Deposits-Held.
	PayDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error)

	// RefundDeposit moves PAID -> REFUNDED, posting Deposits-Held / Cash. A
	// nil amount refunds in full. The entry carries a reverses-annotation
	// pointing at the pay entry. A never-paid REQUIRED deposit is voided to
	// REFUNDED without a posting.
	RefundDeposit(ctx context.Context, orgID string, reservationID string, amount *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error)

	// ApplyDeposit moves PAID -> APPLIED, posting Deposits-Held / Revenue.
	// A non-nil refundPortion splits settlement across revenue and cash.
	ApplyDeposit(ctx context.Context, orgID string, reservationID string, refundPortion *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error)

	// ForfeitDeposit moves {REQUIRED, PAID} -> FORFEITED. A PAID deposit
	// posts Deposits-Held / No-Show-Revenue; a REQUIRED one flips without a
	// posting because no funds were ever held.
	ForfeitDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error)

	GetDepositByReservation(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error)
}
