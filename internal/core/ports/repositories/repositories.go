package repositories

// RepositoryProvider bundles every repository implementation for wiring.
type RepositoryProvider struct {
	ReservationRepo   ReservationRepositoryFacade
	WaitlistRepo      WaitlistRepositoryFacade
	DepositRepo       DepositRepositoryFacade
	JournalRepo       JournalRepositoryFacade
	AccountRepo       AccountRepositoryFacade
	PolicyRepo        PolicyRepositoryFacade
	ScheduleRepo      ScheduleRepositoryFacade
	BranchRepo        BranchRepositoryFacade
	AutomationLogRepo AutomationLogRepositoryFacade
	ReminderRepo      ReminderRepositoryFacade
	NotificationRepo  NotificationRepositoryFacade
	UserRepo          UserRepositoryFacade
	BookingTokenRepo  BookingTokenRepositoryFacade
}
