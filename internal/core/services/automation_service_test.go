package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/core/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

type AutomationServiceTestSuite struct {
	suite.Suite
	mockReservationRepo *MockReservationRepository
	mockReminderRepo    *MockReminderRepository
	mockWaitlistRepo    *MockWaitlistRepository
	mockPolicyRepo      *MockPolicyRepository
	mockNotifRepo       *MockNotificationRepository
	mockLogRepo         *MockAutomationLogRepository
	mockReservationSvc  *MockReservationService
	mockWaitlistSvc     *MockWaitlistService
	mockNotificationSvc *MockNotificationService
	clk                 *fixedClock
	service             portssvc.AutomationSvcFacade

	orgID    string
	branchID string
	policy   domain.ReservationPolicy
}

func (suite *AutomationServiceTestSuite) SetupTest() {
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockReminderRepo = new(MockReminderRepository)
	suite.mockWaitlistRepo = new(MockWaitlistRepository)
	suite.mockPolicyRepo = new(MockPolicyRepository)
	suite.mockNotifRepo = new(MockNotificationRepository)
	suite.mockLogRepo = new(MockAutomationLogRepository)
	suite.mockReservationSvc = new(MockReservationService)
	suite.mockWaitlistSvc = new(MockWaitlistService)
	suite.mockNotificationSvc = new(MockNotificationService)
	suite.clk = &fixedClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}

	suite.service = services.NewAutomationService(
		suite.mockReservationRepo,
		suite.mockReminderRepo,
		suite.mockWaitlistRepo,
		suite.mockPolicyRepo,
		suite.mockNotifRepo,
		suite.mockLogRepo,
		suite.mockReservationSvc,
		suite.mockWaitlistSvc,
		suite.mockNotificationSvc,
		suite.clk,
	)

	suite.orgID = uuid.NewString()
	suite.branchID = uuid.NewString()
	suite.policy = domain.DefaultPolicy(suite.orgID, suite.branchID)

	suite.mockLogRepo.On("SaveLog", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockNotificationSvc.On("Send", mock.Anything, mock.Anything).Return("", nil).Maybe()
}

func (suite *AutomationServiceTestSuite) expectPolicy() {
	policy := suite.policy
	suite.mockPolicyRepo.On("FindPolicyByBranch", mock.Anything, suite.orgID, suite.branchID).
		Return(&policy, nil)
}

func (suite *AutomationServiceTestSuite) expiredHold() domain.Reservation {
	autoCancel := suite.clk.Now().Add(-5 * time.Minute)
	return domain.Reservation{
		ReservationID: uuid.NewString(),
		OrgID:         suite.orgID,
		BranchID:      suite.branchID,
		Status:        domain.ReservationHeld,
		AutoCancelAt:  &autoCancel,
	}
}

func (suite *AutomationServiceTestSuite) dueReminder() domain.ReservationReminder {
	return domain.ReservationReminder{
		ReminderID:    uuid.NewString(),
		OrgID:         suite.orgID,
		BranchID:      suite.branchID,
		ReservationID: uuid.NewString(),
		ScheduledAt:   suite.clk.Now().Add(-time.Minute),
	}
}

func (suite *AutomationServiceTestSuite) TestRunHoldExpiry_CancelsOverdueHolds() {
	suite.expectPolicy()
	hold := suite.expiredHold()
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.Reservation{hold}, nil).Once()
	suite.mockReservationSvc.On("CancelReservation", mock.Anything, suite.orgID, hold.ReservationID,
		mock.Anything, domain.SystemActorID, false).
		Return(&domain.Reservation{ReservationID: hold.ReservationID, Status: domain.ReservationCancelled}, nil).Once()

	expired, failures := suite.service.RunHoldExpiry(context.Background())

	suite.Equal(1, expired)
	suite.Equal(0, failures)
	suite.mockReservationSvc.AssertExpectations(suite.T())
}

func (suite *AutomationServiceTestSuite) TestRunHoldExpiry_DisabledByPolicy() {
	suite.policy.AutoExpireHeldEnabled = false
	suite.expectPolicy()
	hold := suite.expiredHold()
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.Reservation{hold}, nil).Once()

	expired, failures := suite.service.RunHoldExpiry(context.Background())

	suite.Equal(0, expired)
	suite.Equal(0, failures)
	suite.mockReservationSvc.AssertNotCalled(suite.T(), "CancelReservation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutomationServiceTestSuite) TestRunHoldExpiry_LostRaceIsNotAFailure() {
	suite.expectPolicy()
	hold := suite.expiredHold()
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.Reservation{hold}, nil).Once()
	// Guest confirmed between the scan and the cancel.
	suite.mockReservationSvc.On("CancelReservation", mock.Anything, suite.orgID, hold.ReservationID,
		mock.Anything, domain.SystemActorID, false).
		Return(nil, apperrors.ErrConflict).Once()

	expired, failures := suite.service.RunHoldExpiry(context.Background())

	suite.Equal(0, expired)
	suite.Equal(0, failures)
}

func (suite *AutomationServiceTestSuite) TestRunHoldExpiry_RealErrorCounted() {
	suite.expectPolicy()
	hold := suite.expiredHold()
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.Reservation{hold}, nil).Once()
	suite.mockReservationSvc.On("CancelReservation", mock.Anything, suite.orgID, hold.ReservationID,
		mock.Anything, domain.SystemActorID, false).
		Return(nil, errors.New("connection reset")).Once()

	expired, failures := suite.service.RunHoldExpiry(context.Background())

	suite.Equal(0, expired)
	suite.Equal(1, failures)
}

func (suite *AutomationServiceTestSuite) TestRunHoldExpiry_DrainsOnShutdown() {
	holds := []domain.Reservation{suite.expiredHold(), suite.expiredHold()}
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return(holds, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	expired, failures := suite.service.RunHoldExpiry(ctx)

	// Remaining items are left for the next tick rather than issued as
	// doomed calls counted as failures.
	suite.Equal(0, expired)
	suite.Equal(0, failures)
	suite.mockReservationSvc.AssertNotCalled(suite.T(), "CancelReservation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutomationServiceTestSuite) TestRunReminders_SendsDueReminder() {
	reminder := suite.dueReminder()
	upcoming := &domain.Reservation{
		ReservationID: reminder.ReservationID,
		OrgID:         suite.orgID,
		BranchID:      suite.branchID,
		PartySize:     4,
		Status:        domain.ReservationConfirmed,
		StartAt:       suite.clk.Now().Add(2 * time.Hour),
	}

	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{reminder}, nil).Once()
	suite.mockReservationRepo.On("FindReservationByID", mock.Anything, suite.orgID, reminder.ReservationID).
		Return(upcoming, nil).Once()
	suite.mockNotifRepo.On("HasRecentNotification", mock.Anything, suite.orgID, reminder.ReservationID,
		"RESERVATION_REMINDER", mock.Anything).Return(false, nil).Once()
	suite.mockReminderRepo.On("MarkReminderSent", mock.Anything, reminder.ReminderID, suite.clk.Now()).
		Return(nil).Once()

	sent, suppressed, failures := suite.service.RunReminders(context.Background())

	suite.Equal(1, sent)
	suite.Equal(0, suppressed)
	suite.Equal(0, failures)
	suite.mockReminderRepo.AssertExpectations(suite.T())
}

func (suite *AutomationServiceTestSuite) TestRunReminders_StaleReservationSuppressed() {
	reminder := suite.dueReminder()
	cancelled := &domain.Reservation{
		ReservationID: reminder.ReservationID,
		Status:        domain.ReservationCancelled,
		StartAt:       suite.clk.Now().Add(2 * time.Hour),
	}

	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{reminder}, nil).Once()
	suite.mockReservationRepo.On("FindReservationByID", mock.Anything, suite.orgID, reminder.ReservationID).
		Return(cancelled, nil).Once()
	suite.mockReminderRepo.On("MarkReminderSent", mock.Anything, reminder.ReminderID, suite.clk.Now()).
		Return(nil).Once()

	sent, suppressed, failures := suite.service.RunReminders(context.Background())

	suite.Equal(0, sent)
	suite.Equal(1, suppressed)
	suite.Equal(0, failures)
	suite.mockNotifRepo.AssertNotCalled(suite.T(), "HasRecentNotification",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutomationServiceTestSuite) TestRunReminders_DuplicateDeliverySuppressed() {
	reminder := suite.dueReminder()
	upcoming := &domain.Reservation{
		ReservationID: reminder.ReservationID,
		Status:        domain.ReservationConfirmed,
		StartAt:       suite.clk.Now().Add(2 * time.Hour),
	}

	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{reminder}, nil).Once()
	suite.mockReservationRepo.On("FindReservationByID", mock.Anything, suite.orgID, reminder.ReservationID).
		Return(upcoming, nil).Once()
	suite.mockNotifRepo.On("HasRecentNotification", mock.Anything, suite.orgID, reminder.ReservationID,
		"RESERVATION_REMINDER", mock.Anything).Return(true, nil).Once()
	suite.mockReminderRepo.On("MarkReminderSent", mock.Anything, reminder.ReminderID, suite.clk.Now()).
		Return(nil).Once()

	sent, suppressed, failures := suite.service.RunReminders(context.Background())

	suite.Equal(0, sent)
	suite.Equal(1, suppressed)
	suite.Equal(0, failures)
}

func (suite *AutomationServiceTestSuite) TestRunReminders_ParallelTickMarkedFirst() {
	reminder := suite.dueReminder()
	upcoming := &domain.Reservation{
		ReservationID: reminder.ReservationID,
		Status:        domain.ReservationConfirmed,
		StartAt:       suite.clk.Now().Add(2 * time.Hour),
	}

	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{reminder}, nil).Once()
	suite.mockReservationRepo.On("FindReservationByID", mock.Anything, suite.orgID, reminder.ReservationID).
		Return(upcoming, nil).Once()
	suite.mockNotifRepo.On("HasRecentNotification", mock.Anything, suite.orgID, reminder.ReservationID,
		"RESERVATION_REMINDER", mock.Anything).Return(false, nil).Once()
	suite.mockReminderRepo.On("MarkReminderSent", mock.Anything, reminder.ReminderID, suite.clk.Now()).
		Return(apperrors.ErrConflict).Once()

	sent, suppressed, failures := suite.service.RunReminders(context.Background())

	suite.Equal(0, sent)
	suite.Equal(0, suppressed)
	suite.Equal(0, failures)
}

func (suite *AutomationServiceTestSuite) TestRunReminders_DrainsOnShutdown() {
	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{suite.dueReminder()}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sent, suppressed, failures := suite.service.RunReminders(ctx)

	suite.Equal(0, sent)
	suite.Equal(0, suppressed)
	suite.Equal(0, failures)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "FindReservationByID",
		mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutomationServiceTestSuite) TestRunWaitlistPromotion_DrainsBranch() {
	suite.mockWaitlistRepo.On("ListBranchesWithWaiting", mock.Anything).
		Return([]portsrepo.BranchRef{{OrgID: suite.orgID, BranchID: suite.branchID}}, nil).Once()

	first := uuid.NewString()
	second := uuid.NewString()
	suite.mockWaitlistSvc.On("TryAutoPromote", mock.Anything, suite.orgID, suite.branchID, domain.SystemActorID).
		Return(&first, nil).Once()
	suite.mockWaitlistSvc.On("TryAutoPromote", mock.Anything, suite.orgID, suite.branchID, domain.SystemActorID).
		Return(&second, nil).Once()
	suite.mockWaitlistSvc.On("TryAutoPromote", mock.Anything, suite.orgID, suite.branchID, domain.SystemActorID).
		Return(nil, nil).Once()

	promoted, failures := suite.service.RunWaitlistPromotion(context.Background())

	suite.Equal(2, promoted)
	suite.Equal(0, failures)
	suite.mockWaitlistSvc.AssertExpectations(suite.T())
}

func (suite *AutomationServiceTestSuite) TestRunWaitlistPromotion_DrainsOnShutdown() {
	suite.mockWaitlistRepo.On("ListBranchesWithWaiting", mock.Anything).
		Return([]portsrepo.BranchRef{{OrgID: suite.orgID, BranchID: suite.branchID}}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	promoted, failures := suite.service.RunWaitlistPromotion(ctx)

	suite.Equal(0, promoted)
	suite.Equal(0, failures)
	suite.mockWaitlistSvc.AssertNotCalled(suite.T(), "TryAutoPromote",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AutomationServiceTestSuite) TestRunAll_AggregatesCounts() {
	suite.expectPolicy()
	hold := suite.expiredHold()
	suite.mockReservationRepo.On("ListExpiredHolds", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.Reservation{hold}, nil).Once()
	suite.mockReservationSvc.On("CancelReservation", mock.Anything, suite.orgID, hold.ReservationID,
		mock.Anything, domain.SystemActorID, false).
		Return(&domain.Reservation{Status: domain.ReservationCancelled}, nil).Once()
	suite.mockReminderRepo.On("ListDueReminders", mock.Anything, suite.clk.Now(), 100).
		Return([]domain.ReservationReminder{}, nil).Once()
	suite.mockWaitlistRepo.On("ListBranchesWithWaiting", mock.Anything).
		Return([]portsrepo.BranchRef{}, nil).Once()

	result := suite.service.RunAll(context.Background())

	suite.Equal(1, result.HoldsExpired)
	suite.Equal(0, result.RemindersSent)
	suite.Equal(0, result.WaitlistPromoted)
	suite.Equal(0, result.Errors)
}

func (suite *AutomationServiceTestSuite) TestGetAutomationLogs_PassesFilter() {
	entityType := "reservation"
	log := domain.AutomationLog{LogID: uuid.NewString(), OrgID: suite.orgID, Action: domain.ActionHoldExpired}
	suite.mockLogRepo.On("ListLogs", mock.Anything, suite.orgID,
		mock.MatchedBy(func(f portsrepo.ListLogsFilter) bool {
			return f.EntityType != nil && *f.EntityType == entityType
		}), mock.Anything, (*string)(nil)).
		Return([]domain.AutomationLog{log}, nil, nil).Once()

	resp, err := suite.service.GetAutomationLogs(context.Background(), suite.orgID, dto.ListLogsParams{EntityType: &entityType})

	suite.Require().NoError(err)
	suite.Len(resp.Logs, 1)
	suite.Nil(resp.NextToken)
}

func TestAutomationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutomationServiceTestSuite))
}
