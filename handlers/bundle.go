package handlers

import (
	adminRepoPkg "mediq/database/repository/admin"
	doctorRepoPkg "mediq/database/repository/doctor"
	patientRepoPkg "mediq/database/repository/patient"
)

// HandlerBundle groups all endpoint handlers plus the repositories the auth
// middleware needs for token-hash lookups.
type HandlerBundle struct {
	DoctorRepo  doctorRepoPkg.DoctorRepository
	PatientRepo patientRepoPkg.PatientRepository
	AdminRepo   adminRepoPkg.AdminRepository

	Patient  *PatientHandler
	Doctor   *DoctorHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
	Blog     *BlogHandler
	Calendar *CalendarHandler
	Payment  *PaymentHandler
	Storage  *StorageHandler
}
