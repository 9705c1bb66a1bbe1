package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/core/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
)

type WaitlistServiceTestSuite struct {
	suite.Suite
	mockWaitlistRepo    *MockWaitlistRepository
	mockReservationRepo *MockReservationRepository
	mockPolicyRepo      *MockPolicyRepository
	mockLogRepo         *MockAutomationLogRepository
	mockCapacitySvc     *MockCapacityService
	mockNotificationSvc *MockNotificationService
	clk                 *fixedClock
	service             portssvc.WaitlistSvcFacade

	orgID    string
	branchID string
	userID   string
	policy   domain.ReservationPolicy
}

func (suite *WaitlistServiceTestSuite) SetupTest() {
	suite.mockWaitlistRepo = new(MockWaitlistRepository)
	suite.mockReservationRepo = new(MockReservationRepository)
	suite.mockPolicyRepo = new(MockPolicyRepository)
	suite.mockLogRepo = new(MockAutomationLogRepository)
	suite.mockCapacitySvc = new(MockCapacityService)
	suite.mockNotificationSvc = new(MockNotificationService)
	suite.clk = &fixedClock{now: time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)}

	suite.service = services.NewWaitlistService(
		suite.mockWaitlistRepo,
		suite.mockReservationRepo,
		suite.mockPolicyRepo,
		suite.mockLogRepo,
		suite.mockCapacitySvc,
		suite.mockNotificationSvc,
		suite.clk,
	)

	suite.orgID = uuid.NewString()
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.policy = domain.DefaultPolicy(suite.orgID, suite.branchID)

	suite.mockLogRepo.On("SaveLog", mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockNotificationSvc.On("Send", mock.Anything, mock.Anything).Return("", nil).Maybe()
}

func (suite *WaitlistServiceTestSuite) expectPolicy() {
	policy := suite.policy
	suite.mockPolicyRepo.On("FindPolicyByBranch", mock.Anything, suite.orgID, suite.branchID).
		Return(&policy, nil)
}

func (suite *WaitlistServiceTestSuite) waitingEntry() *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		WaitlistID: uuid.NewString(),
		OrgID:      suite.orgID,
		BranchID:   suite.branchID,
		GuestName:  "Walk-in Party",
		GuestPhone: "+34600111222",
		PartySize:  3,
		Status:     domain.WaitlistWaiting,
	}
}

func (suite *WaitlistServiceTestSuite) TestJoinWaitlist_Success() {
	suite.expectPolicy()
	suite.mockWaitlistRepo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.WaitlistEntry) bool {
		return e.Status == domain.WaitlistWaiting && e.PartySize == 3 && e.BranchID == suite.branchID
	})).Return(nil).Once()

	entry, err := suite.service.JoinWaitlist(context.Background(), suite.orgID, dto.JoinWaitlistRequest{
		BranchID:   suite.branchID,
		GuestName:  "Walk-in Party",
		GuestPhone: "+34600111222",
		PartySize:  3,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WaitlistWaiting, entry.Status)
	suite.mockWaitlistRepo.AssertExpectations(suite.T())
}

func (suite *WaitlistServiceTestSuite) TestJoinWaitlist_PartyTooLarge() {
	suite.expectPolicy()

	_, err := suite.service.JoinWaitlist(context.Background(), suite.orgID, dto.JoinWaitlistRequest{
		BranchID:  suite.branchID,
		GuestName: "Bus Tour",
		PartySize: suite.policy.MaxPartySize + 1,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWaitlistRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *WaitlistServiceTestSuite) TestWithdrawEntry_Success() {
	entry := suite.waitingEntry()
	suite.mockWaitlistRepo.On("FindEntryByID", mock.Anything, suite.orgID, entry.WaitlistID).Return(entry, nil).Once()
	suite.mockWaitlistRepo.On("UpdateEntryGuarded", mock.Anything, mock.MatchedBy(func(e domain.WaitlistEntry) bool {
		return e.Status == domain.WaitlistCancelled
	}), domain.WaitlistWaiting).Return(nil).Once()

	updated, err := suite.service.WithdrawEntry(context.Background(), suite.orgID, entry.WaitlistID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WaitlistCancelled, updated.Status)
}

func (suite *WaitlistServiceTestSuite) TestWithdrawEntry_AlreadySeated() {
	entry := suite.waitingEntry()
	entry.Status = domain.WaitlistSeated
	suite.mockWaitlistRepo.On("FindEntryByID", mock.Anything, suite.orgID, entry.WaitlistID).Return(entry, nil).Once()

	_, err := suite.service.WithdrawEntry(context.Background(), suite.orgID, entry.WaitlistID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *WaitlistServiceTestSuite) TestTryAutoPromote_PromotesOldestEntry() {
	suite.expectPolicy()
	entry := suite.waitingEntry()
	table := &domain.RestaurantTable{TableID: uuid.NewString(), Name: "T4", Capacity: 4}
	start := suite.clk.Now()
	end := start.Add(time.Duration(suite.policy.PromotionWindowMinutes) * time.Minute)

	suite.mockWaitlistRepo.On("FindOldestWaiting", mock.Anything, suite.orgID, suite.branchID).Return(entry, nil).Once()
	suite.mockCapacitySvc.On("FindAvailableTable", mock.Anything, suite.orgID, suite.branchID, 3, start, end).Return(table, nil).Once()
	suite.mockWaitlistRepo.On("UpdateEntryGuarded", mock.Anything, mock.MatchedBy(func(e domain.WaitlistEntry) bool {
		return e.Status == domain.WaitlistSeated && e.PromotedToReservationID != nil
	}), domain.WaitlistWaiting).Return(nil).Once()
	suite.mockReservationRepo.On("SaveReservation", mock.Anything, mock.MatchedBy(func(r domain.Reservation) bool {
		return r.Status == domain.ReservationConfirmed &&
			r.TableID != nil && *r.TableID == table.TableID &&
			r.StartAt.Equal(start) && r.EndAt.Equal(end) &&
			r.GuestName == entry.GuestName
	})).Return(nil).Once()

	reservationID, err := suite.service.TryAutoPromote(context.Background(), suite.orgID, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reservationID)
	suite.mockReservationRepo.AssertExpectations(suite.T())
}

func (suite *WaitlistServiceTestSuite) TestTryAutoPromote_DisabledByPolicy() {
	suite.policy.WaitlistAutoPromote = false
	suite.expectPolicy()

	reservationID, err := suite.service.TryAutoPromote(context.Background(), suite.orgID, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(reservationID)
	suite.mockWaitlistRepo.AssertNotCalled(suite.T(), "FindOldestWaiting", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WaitlistServiceTestSuite) TestTryAutoPromote_EmptyWaitlist() {
	suite.expectPolicy()
	suite.mockWaitlistRepo.On("FindOldestWaiting", mock.Anything, suite.orgID, suite.branchID).
		Return(nil, apperrors.ErrNotFound).Once()

	reservationID, err := suite.service.TryAutoPromote(context.Background(), suite.orgID, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(reservationID)
}

func (suite *WaitlistServiceTestSuite) TestTryAutoPromote_NoFreeTableKeepsWaiting() {
	suite.expectPolicy()
	entry := suite.waitingEntry()
	suite.mockWaitlistRepo.On("FindOldestWaiting", mock.Anything, suite.orgID, suite.branchID).Return(entry, nil).Once()
	suite.mockCapacitySvc.On("FindAvailableTable", mock.Anything, suite.orgID, suite.branchID, 3, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	reservationID, err := suite.service.TryAutoPromote(context.Background(), suite.orgID, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(reservationID)
	suite.mockWaitlistRepo.AssertNotCalled(suite.T(), "UpdateEntryGuarded", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WaitlistServiceTestSuite) TestTryAutoPromote_LosesGuardRace() {
	suite.expectPolicy()
	entry := suite.waitingEntry()
	table := &domain.RestaurantTable{TableID: uuid.NewString(), Name: "T4", Capacity: 4}

	suite.mockWaitlistRepo.On("FindOldestWaiting", mock.Anything, suite.orgID, suite.branchID).Return(entry, nil).Once()
	suite.mockCapacitySvc.On("FindAvailableTable", mock.Anything, suite.orgID, suite.branchID, 3, mock.Anything, mock.Anything).Return(table, nil).Once()
	suite.mockWaitlistRepo.On("UpdateEntryGuarded", mock.Anything, mock.Anything, domain.WaitlistWaiting).
		Return(apperrors.ErrConflict).Once()

	// A concurrent promoter won the entry; this attempt backs off quietly.
	reservationID, err := suite.service.TryAutoPromote(context.Background(), suite.orgID, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(reservationID)
	suite.mockReservationRepo.AssertNotCalled(suite.T(), "SaveReservation", mock.Anything, mock.Anything)
}

func TestWaitlistServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WaitlistServiceTestSuite))
}
