package models

// CheckoutSession is the handle returned by the hosted checkout provider.
type CheckoutSession struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

// SessionStatus is the resolved state of a checkout session.
type SessionStatus struct {
	SessionID string `json:"sessionId"`
	Paid      bool   `json:"paid"`
}

// ReminderPayload is the queued payload for an appointment reminder task.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	DoctorID      string `json:"doctorId"`
	PatientID     string `json:"patientId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
