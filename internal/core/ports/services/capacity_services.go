package services

import (
	"context"
	"time"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

// CapacitySvcFacade decides table and branch admissibility against the
// current reservation set.
type CapacitySvcFacade interface {
	// IsTableAvailable reports whether the table has no active reservation
	// overlapping [start, end).
	IsTableAvailable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) (bool, error)

	// CheckCapacity evaluates the branch's capacity ceiling for the
	// hour-aligned bucket containing start.
	CheckCapacity(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*dto.CheckCapacityResponse, error)

	// FindAvailableTable returns the first free table fitting the party:
	// smallest sufficient capacity, ties broken by lowest table ID.
	// ErrNotFound when no table is free.
	FindAvailableTable(ctx context.Context, orgID string, branchID string, partySize int, start, end time.Time) (*domain.RestaurantTable, error)
}

// ScheduleSvcFacade evaluates a candidate window against branch scheduling
// configuration, independent of table allocation. Checks run in a fixed
// order (hours, blackout, capacity rule) and short-circuit on first failure.
type ScheduleSvcFacade interface {
	EvaluateWindow(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*domain.ScheduleDecision, error)
}
