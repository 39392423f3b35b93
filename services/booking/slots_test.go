package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableSlots(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	seedSlots(store, date, "14:00", "09:00", "11:00")

	// Book the 11:00 entry so it disappears from availability.
	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		Time:              "11:00",
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	entries, err := svc.GetAvailableSlots(testDoctorID, date)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "09:00", entries[0].Time)
	assert.Equal(t, "14:00", entries[1].Time)
}

func TestGetAvailableSlotsNoDocument(t *testing.T) {
	svc, _, _, _ := newTestService()

	entries, err := svc.GetAvailableSlots(testDoctorID, futureDate())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetAvailableSlotsBadDate(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetAvailableSlots(testDoctorID, "next tuesday")
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, be.Code)
}

func TestSetupSlots(t *testing.T) {
	svc, _, _, _ := newTestService()
	date := futureDate()

	doc, err := svc.SetupSlots(testDoctorID, date, []string{"09:00", "10:00"})
	require.NoError(t, err)
	require.Len(t, doc.Entries, 2)

	// Extending the same day skips times that already exist.
	doc, err = svc.SetupSlots(testDoctorID, date, []string{"10:00", "11:00"})
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)
}

func TestSetupSlotsValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	past := time.Now().AddDate(0, 0, -2).Format(dateLayout)

	cases := []struct {
		name  string
		date  string
		times []string
	}{
		{"past date", past, []string{"09:00"}},
		{"bad date", "2026/01/02", []string{"09:00"}},
		{"no times", futureDate(), nil},
		{"bad time", futureDate(), []string{"nine"}},
		{"duplicate time", futureDate(), []string{"09:00", "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetupSlots(testDoctorID, tc.date, tc.times)
			be, ok := AsBookingError(err)
			require.True(t, ok)
			assert.Equal(t, CodeValidation, be.Code)
		})
	}
}

func TestSetupSlotsNeverClobbersBookedEntry(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		Time:              "09:00",
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	// Re-publishing the same time must keep the booked entry intact.
	updated, err := svc.SetupSlots(testDoctorID, date, []string{"09:00", "10:00"})
	require.NoError(t, err)
	require.Len(t, updated.Entries, 2)

	entry := updated.EntryAt("09:00")
	require.NotNil(t, entry)
	assert.Equal(t, doc.Entries[0].ID, entry.ID)
	assert.True(t, entry.IsBooked)
	assert.Equal(t, testPatientID, entry.PatientID)
}

func TestRemoveSlotEntry(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00", "10:00")

	require.NoError(t, svc.RemoveSlotEntry(testDoctorID, doc.ID, doc.Entries[0].ID))

	entries, err := svc.GetAvailableSlots(testDoctorID, date)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "10:00", entries[0].Time)
}

func TestRemoveSlotEntryGuards(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	err := svc.RemoveSlotEntry("other-doc", doc.ID, doc.Entries[0].ID)
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, be.Code)

	err = svc.RemoveSlotEntry(testDoctorID, "missing-doc", doc.Entries[0].ID)
	be, ok = AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)

	err = svc.RemoveSlotEntry(testDoctorID, doc.ID, "missing-entry")
	be, ok = AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)

	_, err = svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		Time:              "09:00",
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	err = svc.RemoveSlotEntry(testDoctorID, doc.ID, doc.Entries[0].ID)
	be, ok = AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, be.Code)
}
