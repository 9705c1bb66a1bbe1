package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// fixedClock returns a constant now, advanced explicitly by tests.
type fixedClock struct {
	now time.Time
}

var _ clock.Clock = (*fixedClock)(nil)

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// --- Mock ReservationRepository ---

type MockReservationRepository struct {
	mock.Mock
}

var _ portsrepo.ReservationRepositoryFacade = (*MockReservationRepository)(nil)

func (m *MockReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindReservationByID(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindActiveByTable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error) {
	args := m.Called(ctx, orgID, tableID, start, end, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindActiveByBranch(ctx context.Context, orgID string, branchID string, start, end time.Time, excludeReservationID *string) ([]domain.Reservation, error) {
	args := m.Called(ctx, orgID, branchID, start, end, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateReservationGuarded(ctx context.Context, reservation domain.Reservation, expectedStatus domain.ReservationStatus) error {
	args := m.Called(ctx, reservation, expectedStatus)
	return args.Error(0)
}

func (m *MockReservationRepository) ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListReservations(ctx context.Context, orgID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.Reservation, *string, error) {
	args := m.Called(ctx, orgID, branchID, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		next = &v
	}
	return args.Get(0).([]domain.Reservation), next, args.Error(2)
}

// --- Mock WaitlistRepository ---

type MockWaitlistRepository struct {
	mock.Mock
}

var _ portsrepo.WaitlistRepositoryFacade = (*MockWaitlistRepository)(nil)

func (m *MockWaitlistRepository) SaveEntry(ctx context.Context, entry domain.WaitlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWaitlistRepository) FindEntryByID(ctx context.Context, orgID string, waitlistID string) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, waitlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) FindOldestWaiting(ctx context.Context, orgID string, branchID string) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) UpdateEntryGuarded(ctx context.Context, entry domain.WaitlistEntry, expectedStatus domain.WaitlistStatus) error {
	args := m.Called(ctx, entry, expectedStatus)
	return args.Error(0)
}

func (m *MockWaitlistRepository) ListEntries(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, branchID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistRepository) ListBranchesWithWaiting(ctx context.Context) ([]portsrepo.BranchRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.BranchRef), args.Error(1)
}

// --- Mock DepositRepository ---

type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepositoryFacade = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) SaveDeposit(ctx context.Context, deposit domain.ReservationDeposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) FindDepositByReservationID(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositRepository) SettleDeposit(ctx context.Context, deposit domain.ReservationDeposit, expectedStatus domain.DepositStatus, journal *domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, deposit, expectedStatus, journal, lines, balanceChanges)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, lines, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, orgID string, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, orgID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByBranch(ctx context.Context, orgID string, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, orgID, branchID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		next = &v
	}
	return args.Get(0).([]domain.Journal), next, args.Error(2)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindSystemAccount(ctx context.Context, orgID string, branchID string, kind domain.AccountKind) (*domain.Account, error) {
	args := m.Called(ctx, orgID, branchID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock PolicyRepository ---

type MockPolicyRepository struct {
	mock.Mock
}

var _ portsrepo.PolicyRepositoryFacade = (*MockPolicyRepository)(nil)

func (m *MockPolicyRepository) FindPolicyByBranch(ctx context.Context, orgID string, branchID string) (*domain.ReservationPolicy, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationPolicy), args.Error(1)
}

func (m *MockPolicyRepository) SavePolicy(ctx context.Context, policy domain.ReservationPolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

// --- Mock ScheduleRepository ---

type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) ListOperatingHours(ctx context.Context, orgID string, branchID string) ([]domain.OperatingHours, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperatingHours), args.Error(1)
}

func (m *MockScheduleRepository) SaveOperatingHours(ctx context.Context, hours domain.OperatingHours) error {
	args := m.Called(ctx, hours)
	return args.Error(0)
}

func (m *MockScheduleRepository) ListBlackoutsOverlapping(ctx context.Context, orgID string, branchID string, start, end time.Time) ([]domain.Blackout, error) {
	args := m.Called(ctx, orgID, branchID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Blackout), args.Error(1)
}

func (m *MockScheduleRepository) SaveBlackout(ctx context.Context, blackout domain.Blackout) error {
	args := m.Called(ctx, blackout)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindCapacityRule(ctx context.Context, orgID string, branchID string) (*domain.CapacityRule, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacityRule), args.Error(1)
}

func (m *MockScheduleRepository) SaveCapacityRule(ctx context.Context, rule domain.CapacityRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// --- Mock BranchRepository ---

type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, orgID string, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveTable(ctx context.Context, table domain.RestaurantTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockBranchRepository) FindTableByID(ctx context.Context, orgID string, tableID string) (*domain.RestaurantTable, error) {
	args := m.Called(ctx, orgID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestaurantTable), args.Error(1)
}

func (m *MockBranchRepository) ListActiveTables(ctx context.Context, orgID string, branchID string) ([]domain.RestaurantTable, error) {
	args := m.Called(ctx, orgID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RestaurantTable), args.Error(1)
}

// --- Mock AutomationLogRepository ---

type MockAutomationLogRepository struct {
	mock.Mock
}

var _ portsrepo.AutomationLogRepositoryFacade = (*MockAutomationLogRepository)(nil)

func (m *MockAutomationLogRepository) SaveLog(ctx context.Context, log domain.AutomationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAutomationLogRepository) ListLogs(ctx context.Context, orgID string, filter portsrepo.ListLogsFilter, limit int, nextToken *string) ([]domain.AutomationLog, *string, error) {
	args := m.Called(ctx, orgID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		v := args.Get(1).(string)
		next = &v
	}
	return args.Get(0).([]domain.AutomationLog), next, args.Error(2)
}

// --- Mock ReminderRepository ---

type MockReminderRepository struct {
	mock.Mock
}

var _ portsrepo.ReminderRepositoryFacade = (*MockReminderRepository)(nil)

func (m *MockReminderRepository) SaveReminder(ctx context.Context, reminder domain.ReservationReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]domain.ReservationReminder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationReminder), args.Error(1)
}

func (m *MockReminderRepository) MarkReminderSent(ctx context.Context, reminderID string, sentAt time.Time) error {
	args := m.Called(ctx, reminderID, sentAt)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) HasRecentNotification(ctx context.Context, orgID string, reservationID string, event string, since time.Time) (bool, error) {
	args := m.Called(ctx, orgID, reservationID, event, since)
	return args.Bool(0), args.Error(1)
}

// --- Mock BookingTokenRepository ---

type MockBookingTokenRepository struct {
	mock.Mock
}

var _ portsrepo.BookingTokenRepositoryFacade = (*MockBookingTokenRepository)(nil)

func (m *MockBookingTokenRepository) MarkTokenUsed(ctx context.Context, use domain.BookingTokenUse) error {
	args := m.Called(ctx, use)
	return args.Error(0)
}

func (m *MockBookingTokenRepository) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) ResolveSystemAccount(ctx context.Context, orgID string, branchID string, kind domain.AccountKind, currencyCode string, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, branchID, kind, currencyCode, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock DepositService ---

type MockDepositService struct {
	mock.Mock
}

var _ portssvc.DepositSvcFacade = (*MockDepositService)(nil)

func (m *MockDepositService) RequireDeposit(ctx context.Context, orgID string, reservationID string, req dto.RequireDepositRequest, actorID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositService) PayDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositService) RefundDeposit(ctx context.Context, orgID string, reservationID string, amount *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID, amount, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositService) ApplyDeposit(ctx context.Context, orgID string, reservationID string, refundPortion *decimal.Decimal, actorID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID, refundPortion, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositService) ForfeitDeposit(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

func (m *MockDepositService) GetDepositByReservation(ctx context.Context, orgID string, reservationID string) (*domain.ReservationDeposit, error) {
	args := m.Called(ctx, orgID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationDeposit), args.Error(1)
}

// --- Mock CapacityService ---

type MockCapacityService struct {
	mock.Mock
}

var _ portssvc.CapacitySvcFacade = (*MockCapacityService)(nil)

func (m *MockCapacityService) IsTableAvailable(ctx context.Context, orgID string, tableID string, start, end time.Time, excludeReservationID *string) (bool, error) {
	args := m.Called(ctx, orgID, tableID, start, end, excludeReservationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCapacityService) CheckCapacity(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*dto.CheckCapacityResponse, error) {
	args := m.Called(ctx, orgID, branchID, start, end, partySize, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckCapacityResponse), args.Error(1)
}

func (m *MockCapacityService) FindAvailableTable(ctx context.Context, orgID string, branchID string, partySize int, start, end time.Time) (*domain.RestaurantTable, error) {
	args := m.Called(ctx, orgID, branchID, partySize, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RestaurantTable), args.Error(1)
}

// --- Mock ScheduleService ---

type MockScheduleService struct {
	mock.Mock
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

func (m *MockScheduleService) EvaluateWindow(ctx context.Context, orgID string, branchID string, start, end time.Time, partySize int, excludeReservationID *string) (*domain.ScheduleDecision, error) {
	args := m.Called(ctx, orgID, branchID, start, end, partySize, excludeReservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleDecision), args.Error(1)
}

// --- Mock WaitlistService ---

type MockWaitlistService struct {
	mock.Mock
}

var _ portssvc.WaitlistSvcFacade = (*MockWaitlistService)(nil)

func (m *MockWaitlistService) JoinWaitlist(ctx context.Context, orgID string, req dto.JoinWaitlistRequest, actorID string) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistService) WithdrawEntry(ctx context.Context, orgID string, waitlistID string, actorID string) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, waitlistID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistService) ListWaitlist(ctx context.Context, orgID string, branchID string, status *domain.WaitlistStatus) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, orgID, branchID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}

func (m *MockWaitlistService) TryAutoPromote(ctx context.Context, orgID string, branchID string, actorID string) (*string, error) {
	args := m.Called(ctx, orgID, branchID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// --- Mock NotificationService ---

type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) Send(ctx context.Context, input dto.SendNotificationInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// --- Mock ReservationService ---

type MockReservationService struct {
	mock.Mock
}

var _ portssvc.ReservationSvcFacade = (*MockReservationService)(nil)

func (m *MockReservationService) CreateReservation(ctx context.Context, orgID string, req dto.CreateReservationRequest, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, orgID string, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) ListReservations(ctx context.Context, orgID string, branchID string, params dto.ListReservationsParams) (*dto.ListReservationsResponse, error) {
	args := m.Called(ctx, orgID, branchID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReservationsResponse), args.Error(1)
}

func (m *MockReservationService) ConfirmReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) SeatReservation(ctx context.Context, orgID string, reservationID string, orderID *string, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, orderID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CompleteReservation(ctx context.Context, orgID string, reservationID string, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, orgID string, reservationID string, reason *string, actorID string, enforceCutoff bool) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, reason, actorID, enforceCutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) MarkNoShow(ctx context.Context, orgID string, reservationID string, reason *string, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) ModifyReservation(ctx context.Context, orgID string, reservationID string, req dto.ModifyReservationRequest, actorID string) (*domain.Reservation, error) {
	args := m.Called(ctx, orgID, reservationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
