package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	"github.com/tablewise/table_reservation_app/internal/middleware"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}

func newAudit(now time.Time, actorID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}

// recordAction appends one audit record. Audit writes are best-effort: a
// failure is logged but never fails the action that already happened.
func recordAction(ctx context.Context, logRepo portsrepo.AutomationLogRepositoryFacade, now time.Time, orgID string, branchID *string, entityType, entityID string, action domain.AutomationAction, before, after, detail, actorID string) {
	log := domain.AutomationLog{
		LogID:      uuid.NewString(),
		OrgID:      orgID,
		BranchID:   branchID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Before:     before,
		After:      after,
		Detail:     detail,
		ActorID:    actorID,
		CreatedAt:  now,
	}
	if err := logRepo.SaveLog(ctx, log); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write audit log",
			"action", action, "entity_id", entityID, "error", err)
	}
}
