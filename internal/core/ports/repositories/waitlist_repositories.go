package repositories

import (
	"context"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
)

// BranchRef identifies a branch within its org, used by cross-tenant scans.
type BranchRef struct {
	OrgID    string
	BranchID string
}

// WaitlistRepositoryFacade defines persistence operations for waitlist entries.
type WaitlistRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.WaitlistEntry) error
	FindEntryByID(ctx context.Context, orgID string, waitlistID string) (*domain.WaitlistEntry, error)

	// FindOldestWaiting returns the WAITING entry with the earliest CreatedAt
	// for the branch (FIFO). ErrNotFound when the waitlist is empty.
	FindOldestWaiting(ctx context.Context, orgID string, branchID string) (*domain.WaitlistEntry, error)

	// UpdateEntryGuarded persists the entry iff its stored status still equals
	// expectedStatus; ErrConflict otherwise. SEATED and CANCELLED entries are
	// immutable because no transition accepts them as the expected status.
	UpdateEntryGuarded(ctx context.Context, entry domain.WaitlistEntry, expectedStatus domain.WaitlistStatus) error

	ListEntries(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error)

	// ListBranchesWithWaiting returns the distinct branches that currently
	// have at least one WAITING entry. Drives the promotion scan.
	ListBranchesWithWaiting(ctx context.Context) ([]BranchRef, error)
}
