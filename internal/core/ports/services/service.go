package services

// ServiceContainer bundles every service facade for route registration and
// scheduler wiring.
type ServiceContainer struct {
	Reservation  ReservationSvcFacade
	Deposit      DepositSvcFacade
	Ledger       LedgerSvcFacade
	Account      AccountSvcFacade
	Capacity     CapacitySvcFacade
	Schedule     ScheduleSvcFacade
	Waitlist     WaitlistSvcFacade
	Automation   AutomationSvcFacade
	Notification NotificationSvcFacade
	BookingToken BookingTokenSvcFacade
	User         UserSvcFacade
	Branch       BranchSvcFacade
}
