package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tablewise/table_reservation_app/internal/core/ports/services"
	"github.com/tablewise/table_reservation_app/internal/middleware"
	"github.com/tablewise/table_reservation_app/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	registerAuthRoutes(r, services)
	registerPublicRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
}

func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User)
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}
}

// registerPublicRoutes mounts the unauthenticated guest-facing endpoints.
// They are rate limited by client IP since they sit on the open internet.
func registerPublicRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	rate, err := limiter.NewRateFromFormatted(cfg.PublicRateLimit)
	if err != nil {
		slog.Warn("Invalid PUBLIC_RATE_LIMIT, falling back to 30-M", slog.String("value", cfg.PublicRateLimit))
		rate = limiter.Rate{Period: time.Minute, Limit: 30}
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	h := newPublicHandler(services.BookingToken, services.Reservation, services.Schedule, services.Capacity)
	public := r.Group("/public", middleware.RateLimit(limiterInstance))
	{
		public.GET("/availability", h.checkAvailability)
		public.POST("/bookings/confirm", h.confirmBooking)
		public.POST("/bookings/cancel", h.cancelBooking)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, services)
	registerBranchRoutes(v1, services)
	registerReservationRoutes(v1, services)
	registerDepositRoutes(v1, services)
	registerWaitlistRoutes(v1, services)
	registerLedgerRoutes(v1, services)
	registerAutomationRoutes(v1, services)
}

func registerUserRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User)
	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/me", h.getMe)
	}
}

func registerBranchRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newBranchHandler(services.Branch)
	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("/:branchID", h.getBranch)
		branches.POST("/:branchID/tables", h.createTable)
		branches.GET("/:branchID/tables", h.listTables)
		branches.PUT("/:branchID/policy", h.upsertPolicy)
		branches.GET("/:branchID/policy", h.getPolicy)
		branches.POST("/:branchID/operating-hours", h.addOperatingHours)
		branches.POST("/:branchID/blackouts", h.addBlackout)
		branches.PUT("/:branchID/capacity-rule", h.setCapacityRule)
	}
}

func registerReservationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReservationHandler(services.Reservation, services.Capacity, services.BookingToken)
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.createReservation)
		reservations.GET("/:reservationID", h.getReservation)
		reservations.PATCH("/:reservationID", h.modifyReservation)
		reservations.POST("/:reservationID/confirm", h.confirmReservation)
		reservations.POST("/:reservationID/seat", h.seatReservation)
		reservations.POST("/:reservationID/complete", h.completeReservation)
		reservations.POST("/:reservationID/cancel", h.cancelReservation)
		reservations.POST("/:reservationID/no-show", h.markNoShow)
		reservations.POST("/:reservationID/booking-link", h.generateBookingLink)
	}
	rg.GET("/branches/:branchID/reservations", h.listReservations)
	rg.GET("/branches/:branchID/availability", h.checkCapacity)
}

func registerDepositRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newDepositHandler(services.Deposit)
	deposits := rg.Group("/reservations/:reservationID/deposit")
	{
		deposits.POST("", h.requireDeposit)
		deposits.GET("", h.getDeposit)
		deposits.POST("/pay", h.payDeposit)
		deposits.POST("/refund", h.refundDeposit)
		deposits.POST("/apply", h.applyDeposit)
		deposits.POST("/forfeit", h.forfeitDeposit)
	}
}

func registerWaitlistRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWaitlistHandler(services.Waitlist)
	waitlist := rg.Group("/waitlist")
	{
		waitlist.POST("", h.joinWaitlist)
		waitlist.POST("/:waitlistID/withdraw", h.withdrawEntry)
	}
	rg.GET("/branches/:branchID/waitlist", h.listWaitlist)
	rg.POST("/branches/:branchID/waitlist/promote", h.promote)
}

func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newLedgerHandler(services.Ledger, services.Account)
	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("/:journalID", h.getJournal)
	}
	rg.GET("/branches/:branchID/journals", h.listJournals)
	rg.GET("/accounts/:accountID", h.getAccount)
}

func registerAutomationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAutomationHandler(services.Automation)
	automation := rg.Group("/automation")
	{
		automation.GET("/logs", h.listLogs)
		automation.POST("/tick", h.runTick)
	}
}
