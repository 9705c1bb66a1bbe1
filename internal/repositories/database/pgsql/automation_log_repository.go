package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

type PgxAutomationLogRepository struct {
	BaseRepository
}

func newPgxAutomationLogRepository(pool *pgxpool.Pool) portsrepo.AutomationLogRepositoryFacade {
	return &PgxAutomationLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AutomationLogRepositoryFacade = (*PgxAutomationLogRepository)(nil)

func (r *PgxAutomationLogRepository) SaveLog(ctx context.Context, log domain.AutomationLog) error {
	query := `
		INSERT INTO automation_logs (log_id, org_id, branch_id, entity_type, entity_id, action, before_state, after_state, detail, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		log.LogID, log.OrgID, log.BranchID, log.EntityType, log.EntityID,
		log.Action, log.Before, log.After, log.Detail, log.ActorID, log.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert automation log "+log.LogID, err)
	}
	return nil
}

func (r *PgxAutomationLogRepository) ListLogs(ctx context.Context, orgID string, filter portsrepo.ListLogsFilter, limit int, nextToken *string) ([]domain.AutomationLog, *string, error) {
	offset, err := utils.DecodeNextToken(nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT log_id, org_id, branch_id, entity_type, entity_id, action, before_state, after_state, detail, actor_id, created_at
		FROM automation_logs
		WHERE org_id = $1
	`
	args := []any{orgID}
	addFilter := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if filter.BranchID != nil {
		addFilter("branch_id =", *filter.BranchID)
	}
	if filter.EntityType != nil {
		addFilter("entity_type =", *filter.EntityType)
	}
	if filter.EntityID != nil {
		addFilter("entity_id =", *filter.EntityID)
	}
	if filter.Action != nil {
		addFilter("action =", *filter.Action)
	}
	if filter.From != nil {
		addFilter("created_at >=", *filter.From)
	}
	if filter.To != nil {
		addFilter("created_at <", *filter.To)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, log_id DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query automation logs", err)
	}
	defer rows.Close()

	var logs []domain.AutomationLog
	for rows.Next() {
		var l domain.AutomationLog
		if err := rows.Scan(
			&l.LogID, &l.OrgID, &l.BranchID, &l.EntityType, &l.EntityID,
			&l.Action, &l.Before, &l.After, &l.Detail, &l.ActorID, &l.CreatedAt,
		); err != nil {
			return nil, nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return logs, utils.NextTokenForPage(offset, limit, len(logs)), nil
}
