package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/core/domain"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/dto"
	"github.com/tablewise/table_reservation_app/internal/handlers"
	"github.com/tablewise/table_reservation_app/pkg/config"
)

// --- Mock ReservationService ---
type MockReservationService struct {
	mock.Mock
}

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

var _ portssvc.ReservationSvcFacade = (*MockReservationService)(nil)

// --- Test Suite ---
type ReservationHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockReservationService *MockReservationService
	jwtSecret              string
	orgID                  string
	userID                 string
}

func (suite *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockReservationService = new(MockReservationService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Reservation: suite.mockReservationService,
	})
}

func (suite *ReservationHandlerTestSuite) generateTestToken() string {
	claims := struct {
		OrgID string `json:"orgID"`
		jwt.RegisteredClaims
	}{
		OrgID: suite.orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   suite.userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReservationHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReservationHandlerTestSuite) TestCreateReservation_Success() {
	start := time.Now().Add(5 * time.Hour).UTC().Truncate(time.Second)
	end := start.Add(2 * time.Hour)
	reservationID := uuid.NewString()
	branchID := uuid.NewString()

	suite.mockReservationService.On("CreateReservation",
		mock.Anything,
		suite.orgID,
		mock.MatchedBy(func(req dto.CreateReservationRequest) bool {
			return req.BranchID == branchID && req.PartySize == 4 && req.StartAt.Equal(start)
		}),
		suite.userID,
	).Return(&domain.Reservation{
		ReservationID: reservationID,
		OrgID:         suite.orgID,
		BranchID:      branchID,
		GuestName:     "Ana Serra",
		PartySize:     4,
		StartAt:       start,
		EndAt:         end,
		Status:        domain.ReservationHeld,
		DepositStatus: domain.DepositNone,
	}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reservations", gin.H{
		"branchID":  branchID,
		"guestName": "Ana Serra",
		"partySize": 4,
		"startAt":   start.Format(time.RFC3339),
		"endAt":     end.Format(time.RFC3339),
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ReservationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(reservationID, resp.ReservationID)
	suite.Equal(string(domain.ReservationHeld), resp.Status)
	suite.mockReservationService.AssertExpectations(suite.T())
}

func (suite *ReservationHandlerTestSuite) TestCreateReservation_MissingFields() {
	w := suite.doRequest(http.MethodPost, "/api/v1/reservations", gin.H{"guestName": "No Branch"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReservationService.AssertNotCalled(suite.T(), "CreateReservation",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReservationHandlerTestSuite) TestGetReservation_NotFound() {
	reservationID := uuid.NewString()
	suite.mockReservationService.On("GetReservation", mock.Anything, suite.orgID, reservationID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reservations/"+reservationID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReservationHandlerTestSuite) TestConfirmReservation_Conflict() {
	reservationID := uuid.NewString()
	suite.mockReservationService.On("ConfirmReservation", mock.Anything, suite.orgID, reservationID, suite.userID).
		Return(nil, fmt.Errorf("%w: reservation is SEATED", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reservations/"+reservationID+"/confirm", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReservationHandlerTestSuite) TestCancelReservation_StaffSkipsCutoff() {
	reservationID := uuid.NewString()
	reason := "guest called to cancel"

	suite.mockReservationService.On("CancelReservation", mock.Anything, suite.orgID, reservationID,
		mock.MatchedBy(func(r *string) bool { return r != nil && *r == reason }),
		suite.userID,
		false,
	).Return(&domain.Reservation{
		ReservationID: reservationID,
		Status:        domain.ReservationCancelled,
	}, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/reservations/"+reservationID+"/cancel", gin.H{"reason": reason})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReservationService.AssertExpectations(suite.T())
}

func (suite *ReservationHandlerTestSuite) TestRequestWithoutToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reservations/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReservationService.AssertNotCalled(suite.T(), "GetReservation", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}
