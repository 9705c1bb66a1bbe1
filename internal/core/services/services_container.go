package services

import (
	"time"

	portsrepo "github.com/tablewise/table_reservation_app/internal/core/ports/repositories"
	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/pkg/clock"
)

// ContainerConfig carries the non-repository inputs the services need.
type ContainerConfig struct {
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	BookingTokenSecret string
}

// NewServiceContainer wires every service with its dependencies. Construction
// order matters only where services consume other services: capacity and
// schedule feed waitlist, which feeds reservation, which feeds automation.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig, clk clock.Clock) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo, clk)
	ledgerSvc := NewLedgerService(repos.JournalRepo, repos.AccountRepo, clk)
	depositSvc := NewDepositService(repos.DepositRepo, repos.ReservationRepo, accountSvc, repos.AutomationLogRepo, clk)
	capacitySvc := NewCapacityService(repos.ReservationRepo, repos.BranchRepo, repos.PolicyRepo)
	scheduleSvc := NewScheduleService(repos.ScheduleRepo, repos.BranchRepo, repos.ReservationRepo)
	notificationSvc := NewNotificationService(repos.NotificationRepo, clk)
	waitlistSvc := NewWaitlistService(repos.WaitlistRepo, repos.ReservationRepo, repos.PolicyRepo, repos.AutomationLogRepo, capacitySvc, notificationSvc, clk)
	reservationSvc := NewReservationService(repos.ReservationRepo, repos.BranchRepo, repos.PolicyRepo, repos.ReminderRepo, repos.AutomationLogRepo, depositSvc, capacitySvc, scheduleSvc, waitlistSvc, notificationSvc, clk)
	automationSvc := NewAutomationService(repos.ReservationRepo, repos.ReminderRepo, repos.WaitlistRepo, repos.PolicyRepo, repos.NotificationRepo, repos.AutomationLogRepo, reservationSvc, waitlistSvc, notificationSvc, clk)
	bookingTokenSvc := NewBookingTokenService(repos.BookingTokenRepo, cfg.BookingTokenSecret, clk)
	userSvc := NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer, clk)
	branchSvc := NewBranchService(repos.BranchRepo, repos.PolicyRepo, repos.ScheduleRepo, clk)

	return &portssvc.ServiceContainer{
		Reservation:  reservationSvc,
		Deposit:      depositSvc,
		Ledger:       ledgerSvc,
		Account:      accountSvc,
		Capacity:     capacitySvc,
		Schedule:     scheduleSvc,
		Waitlist:     waitlistSvc,
		Automation:   automationSvc,
		Notification: notificationSvc,
		BookingToken: bookingTokenSvc,
		User:         userSvc,
		Branch:       branchSvc,
	}
}
