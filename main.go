package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"mediq/config"
	"mediq/cron"
	"mediq/database"
	adminRepoPkg "mediq/database/repository/admin"
	blogRepoPkg "mediq/database/repository/blog"
	bookingRepoPkg "mediq/database/repository/booking"
	calendarRepoPkg "mediq/database/repository/calendar"
	doctorRepoPkg "mediq/database/repository/doctor"
	patientRepoPkg "mediq/database/repository/patient"
	pendingRepoPkg "mediq/database/repository/pending"
	slotRepoPkg "mediq/database/repository/slot"
	"mediq/handlers"
	"mediq/middleware"
	"mediq/routes"
	adminSvc "mediq/services/admin"
	blogSvc "mediq/services/blog"
	"mediq/services/booking"
	calendarSvc "mediq/services/calendar"
	doctorSvc "mediq/services/doctor"
	"mediq/services/notification"
	patientSvc "mediq/services/patient"
	"mediq/services/payment"
	"mediq/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	pendingRepo := pendingRepoPkg.NewMongoPendingDoctorRepo()
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	blogRepo := blogRepoPkg.NewMongoBlogRepo()
	calendarRepo := calendarRepoPkg.NewMongoCalendarRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()

	// collaborators.
	paymentBridge := payment.NewStripeBridge()
	notificationService := &notification.LogNotificationService{Logger: logger}
	reminderScheduler := cron.NewReminderScheduler()
	cron.InitReminderWorker(notificationService)

	// services.
	doctorService := &doctorSvc.DefaultDoctorService{
		Repo:        doctorRepo,
		PendingRepo: pendingRepo,
		Storage:     storageService,
	}
	patientService := &patientSvc.DefaultPatientService{
		Repo:       patientRepo,
		DoctorRepo: doctorRepo,
		Storage:    storageService,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		SlotRepo:    slotRepo,
		DoctorRepo:  doctorRepo,
		PatientRepo: patientRepo,
		Payments:    paymentBridge,
		Reminders:   reminderScheduler,
		Logger:      logger,
	}
	adminService := &adminSvc.DefaultAdminService{
		Repo:        adminRepo,
		PendingRepo: pendingRepo,
		DoctorRepo:  doctorRepo,
		PatientRepo: patientRepo,
		BookingRepo: bookingRepo,
	}
	blogService := &blogSvc.DefaultBlogService{
		Repo:    blogRepo,
		Storage: storageService,
	}
	calendarService := &calendarSvc.DefaultCalendarService{
		Repo: calendarRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DoctorRepo:  doctorRepo,
		PatientRepo: patientRepo,
		AdminRepo:   adminRepo,

		Patient:  handlers.NewPatientHandler(patientService),
		Doctor:   handlers.NewDoctorHandler(doctorService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Admin:    handlers.NewAdminHandler(adminService),
		Blog:     handlers.NewBlogHandler(blogService),
		Calendar: handlers.NewCalendarHandler(calendarService),
		Payment:  handlers.NewPaymentHandler(paymentBridge, doctorRepo),
		Storage:  handlers.NewStorageHandler(storageService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
