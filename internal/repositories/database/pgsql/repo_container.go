package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one pool. The
// journal and deposit repositories take the account repository so they can
// lock and adjust balances inside their own transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return &portsrepo.RepositoryProvider{
		ReservationRepo:   newPgxReservationRepository(pool),
		WaitlistRepo:      newPgxWaitlistRepository(pool),
		DepositRepo:       newPgxDepositRepository(pool, accountRepo),
		JournalRepo:       newPgxJournalRepository(pool, accountRepo),
		AccountRepo:       accountRepo,
		PolicyRepo:        newPgxPolicyRepository(pool),
		ScheduleRepo:      newPgxScheduleRepository(pool),
		BranchRepo:        newPgxBranchRepository(pool),
		AutomationLogRepo: newPgxAutomationLogRepository(pool),
		ReminderRepo:      newPgxReminderRepository(pool),
		NotificationRepo:  newPgxNotificationRepository(pool),
		UserRepo:          newPgxUserRepository(pool),
		BookingTokenRepo:  newPgxBookingTokenRepository(pool),
	}
}
