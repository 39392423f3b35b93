package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mediq/handlers"
	"mediq/middleware"
	"mediq/utils"
)

// RegisterPatientRoutes registers patient account endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/register", hb.Patient.RegisterHandler)
		api.POST("/login", hb.Patient.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.Auth(utils.RolePatient, middleware.CtxPatientID, hb.PatientRepo))
		protected.GET("/me", hb.Patient.GetProfileHandler)
		protected.PATCH("/me", hb.Patient.UpdateProfileHandler)
		protected.DELETE("/me", hb.Patient.DeleteAccountHandler)
		protected.POST("/logout", hb.Patient.RevokeTokenHandler)

		// Personal calendar.
		protected.POST("/calendar", hb.Calendar.CreateHandler)
		protected.GET("/calendar", hb.Calendar.ListHandler)
		protected.DELETE("/calendar/:id", hb.Calendar.DeleteHandler)
	}
}

// RegisterDoctorRoutes registers doctor endpoints: public discovery, self
// registration and the authenticated schedule surface.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.POST("/register", hb.Doctor.RegisterHandler)
		api.POST("/login", hb.Doctor.LoginHandler)

		// Public discovery.
		api.GET("", hb.Doctor.SearchHandler)
		api.GET("/id/:id", hb.Doctor.GetPublicHandler)
		api.GET("/id/:id/slots", hb.Booking.GetAvailableSlotsHandler)

		// Patient-authenticated review endpoint.
		api.POST("/id/:id/reviews",
			middleware.Auth(utils.RolePatient, middleware.CtxPatientID, hb.PatientRepo),
			hb.Doctor.AddReviewHandler)

		protected := api.Group("")
		protected.Use(middleware.Auth(utils.RoleDoctor, middleware.CtxDoctorID, hb.DoctorRepo))
		protected.GET("/me", hb.Doctor.GetProfileHandler)
		protected.PATCH("/me", hb.Doctor.UpdateProfileHandler)
		protected.POST("/logout", hb.Doctor.RevokeTokenHandler)

		// Schedule management.
		protected.POST("/slots", hb.Booking.SetupSlotsHandler)
		protected.DELETE("/slots/:slotDocId/entries/:entryId", hb.Booking.RemoveSlotEntryHandler)

		// Doctor's view of appointments.
		protected.GET("/appointments", hb.Booking.ListDoctorAppointmentsHandler)
		protected.GET("/appointments/:id", hb.Booking.GetAppointmentHandler)
		protected.DELETE("/appointments/:id", hb.Booking.CancelAppointmentHandler)
		protected.POST("/appointments/:id/complete", hb.Booking.CompleteAppointmentHandler)

		// Medical history notes for treated patients.
		protected.PUT("/patients/:id/medical-history", hb.Patient.UpdateMedicalHistoryHandler)

		// Personal calendar.
		protected.POST("/calendar", hb.Calendar.CreateHandler)
		protected.GET("/calendar", hb.Calendar.ListHandler)
		protected.DELETE("/calendar/:id", hb.Calendar.DeleteHandler)
	}
}

// RegisterAppointmentRoutes registers the patient-facing booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.Auth(utils.RolePatient, middleware.CtxPatientID, hb.PatientRepo))
		api.POST("", hb.Booking.BookAppointmentHandler)
		api.GET("", hb.Booking.ListPatientAppointmentsHandler)
		api.GET("/:id", hb.Booking.GetAppointmentHandler)
		api.DELETE("/:id", hb.Booking.CancelAppointmentHandler)
	}
}

// RegisterBlogRoutes registers public article reads and doctor-only writes.
func RegisterBlogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/blogs")
	{
		api.GET("", hb.Blog.ListHandler)
		api.GET("/id/:id", hb.Blog.GetHandler)

		protected := api.Group("")
		protected.Use(middleware.Auth(utils.RoleDoctor, middleware.CtxDoctorID, hb.DoctorRepo))
		protected.POST("", hb.Blog.CreateHandler)
		protected.GET("/mine", hb.Blog.ListMineHandler)
		protected.PATCH("/id/:id", hb.Blog.UpdateHandler)
		protected.DELETE("/id/:id", hb.Blog.DeleteHandler)
	}
}

// RegisterPaymentRoutes registers the hosted checkout endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.Auth(utils.RolePatient, middleware.CtxPatientID, hb.PatientRepo))
		api.POST("/checkout", hb.Payment.CreateCheckoutHandler)
		api.GET("/checkout/:sessionId", hb.Payment.GetCheckoutStatusHandler)
	}
}

// RegisterAdminRoutes registers the platform administration endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.Admin.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.AdminAuth(hb.AdminRepo))
		protected.GET("/pending-doctors", hb.Admin.ListPendingDoctorsHandler)
		protected.POST("/pending-doctors/:id/approve", hb.Admin.ApproveDoctorHandler)
		protected.POST("/pending-doctors/:id/reject", hb.Admin.RejectDoctorHandler)
		protected.POST("/doctors/:id/discount", hb.Admin.ApplyFeeDiscountHandler)
		protected.GET("/doctors", hb.Admin.ListDoctorsHandler)
		protected.GET("/patients", hb.Admin.ListPatientsHandler)
		protected.GET("/appointments", hb.Admin.ListAppointmentsHandler)
		protected.GET("/files/secure-url", hb.Storage.GetSecureDownloadURLHandler)
	}
}

// RegisterStorageRoutes registers generic file endpoints for signed-in users.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/files")
	{
		api.Use(middleware.Auth(utils.RoleDoctor, middleware.CtxDoctorID, hb.DoctorRepo))
		api.POST("/upload/:bucket", hb.Storage.UploadFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediQ"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPatientRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterBlogRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
