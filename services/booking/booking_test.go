package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	bookingRepo "mediq/database/repository/booking"
	doctorRepo "mediq/database/repository/doctor"
	"mediq/models"
)

// fakeSlotStore is the shared in-memory slot collection. The booking fake
// and the slot fake both point at it, mirroring how the Mongo repos share
// the slots collection.
type fakeSlotStore struct {
	mu   sync.Mutex
	docs map[string]*models.SlotDoc
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{docs: make(map[string]*models.SlotDoc)}
}

func (s *fakeSlotStore) add(doc *models.SlotDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

type fakeSlotRepo struct {
	store *fakeSlotStore
}

func (r *fakeSlotRepo) GetByID(id string) (*models.SlotDoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	doc, ok := r.store.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *doc
	cp.Entries = append([]models.SlotEntry(nil), doc.Entries...)
	return &cp, nil
}

func (r *fakeSlotRepo) GetByDoctorDate(doctorID, date string) (*models.SlotDoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, doc := range r.store.docs {
		if doc.DoctorID == doctorID && doc.Date == date {
			cp := *doc
			cp.Entries = append([]models.SlotEntry(nil), doc.Entries...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSlotRepo) ListByDoctor(doctorID, fromDate string) ([]models.SlotDoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []models.SlotDoc
	for _, doc := range r.store.docs {
		if doc.DoctorID == doctorID && doc.Date >= fromDate {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) UpsertDay(doctorID, date string, times []string) (*models.SlotDoc, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var doc *models.SlotDoc
	for _, d := range r.store.docs {
		if d.DoctorID == doctorID && d.Date == date {
			doc = d
			break
		}
	}
	if doc == nil {
		doc = &models.SlotDoc{ID: uuid.New().String(), DoctorID: doctorID, Date: date}
		r.store.docs[doc.ID] = doc
	}
	for _, t := range times {
		if doc.EntryAt(t) != nil {
			continue
		}
		doc.Entries = append(doc.Entries, models.SlotEntry{ID: uuid.New().String(), Time: t})
	}
	cp := *doc
	cp.Entries = append([]models.SlotEntry(nil), doc.Entries...)
	return &cp, nil
}

func (r *fakeSlotRepo) RemoveEntry(slotDocID, entryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	doc, ok := r.store.docs[slotDocID]
	if !ok {
		return fmt.Errorf("slot document not found")
	}
	for i, e := range doc.Entries {
		if e.ID == entryID {
			if e.IsBooked {
				return fmt.Errorf("entry is booked")
			}
			doc.Entries = append(doc.Entries[:i], doc.Entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry not found")
}

// fakeBookingRepo mimics the transactional repository on the shared slot
// store: the conditional isBooked check and the appointment insert happen
// under one lock, so concurrent attempts see exactly one winner.
type fakeBookingRepo struct {
	store *fakeSlotStore
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newFakeBookingRepo(store *fakeSlotStore) *fakeBookingRepo {
	return &fakeBookingRepo{store: store, appts: make(map[string]*models.Appointment)}
}

func (r *fakeBookingRepo) BookTransactionally(ctx context.Context, appt *models.Appointment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, ok := r.store.docs[appt.SlotDocID]
	if !ok || doc.DoctorID != appt.DoctorID || doc.Date != appt.Date {
		return bookingRepo.ErrSlotUnavailable
	}
	entry := doc.Entry(appt.EntryID)
	if entry == nil || entry.IsBooked {
		return bookingRepo.ErrSlotUnavailable
	}
	entry.IsBooked = true
	entry.PatientID = appt.PatientID

	appt.Status = models.AppointmentBooked
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) CancelTransactionally(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[appointmentID]
	if !ok {
		return nil, bookingRepo.ErrAppointmentNotFound
	}
	if appt.Status != models.AppointmentBooked {
		return nil, bookingRepo.ErrNotCancellable
	}

	if doc, ok := r.store.docs[appt.SlotDocID]; ok {
		if entry := doc.Entry(appt.EntryID); entry != nil {
			entry.IsBooked = false
			entry.PatientID = ""
		}
	}
	appt.Status = models.AppointmentCancelled
	appt.UpdatedAt = time.Now()
	cp := *appt
	return &cp, nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, bookingRepo.ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeBookingRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll() ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return bookingRepo.ErrAppointmentNotFound
	}
	if v, ok := updateDoc["status"].(string); ok {
		appt.Status = v
	}
	if v, ok := updateDoc["notes"].(string); ok {
		appt.Notes = v
	}
	appt.UpdatedAt = time.Now()
	return nil
}

// fakeDoctorRepo overrides only what the booking flow touches.
type fakeDoctorRepo struct {
	doctorRepo.DoctorRepository
	doctors map[string]*models.Doctor
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	doc, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return doc, nil
}

// fakePayments resolves session ids from a fixed map; unknown ids error.
type fakePayments struct {
	sessions map[string]bool
}

func (p *fakePayments) CreateSession(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*models.CheckoutSession, error) {
	return &models.CheckoutSession{SessionID: "cs_new", RedirectURL: "https://checkout.example/cs_new"}, nil
}

func (p *fakePayments) RetrieveSession(ctx context.Context, sessionID string) (*models.SessionStatus, error) {
	paid, ok := p.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session")
	}
	return &models.SessionStatus{SessionID: sessionID, Paid: paid}, nil
}

type fakeReminders struct {
	mu        sync.Mutex
	scheduled []models.ReminderPayload
}

func (f *fakeReminders) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, payload)
	return nil
}

const (
	testDoctorID  = "doc-1"
	testPatientID = "pat-1"
	paidSession   = "cs_paid"
	unpaidSession = "cs_unpaid"
)

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(dateLayout)
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeSlotStore, *fakeReminders) {
	store := newFakeSlotStore()
	repo := newFakeBookingRepo(store)
	reminders := &fakeReminders{}
	svc := &DefaultBookingService{
		Repo:     repo,
		SlotRepo: &fakeSlotRepo{store: store},
		DoctorRepo: &fakeDoctorRepo{doctors: map[string]*models.Doctor{
			testDoctorID: {ID: testDoctorID, Name: "Anna Osei", Fee: 150, Active: true},
		}},
		Payments:  &fakePayments{sessions: map[string]bool{paidSession: true, unpaidSession: false}},
		Reminders: reminders,
		Logger:    zap.NewNop(),
	}
	return svc, repo, store, reminders
}

func seedSlots(store *fakeSlotStore, date string, times ...string) *models.SlotDoc {
	doc := &models.SlotDoc{ID: uuid.New().String(), DoctorID: testDoctorID, Date: date}
	for _, t := range times {
		doc.Entries = append(doc.Entries, models.SlotEntry{ID: uuid.New().String(), Time: t})
	}
	store.add(doc)
	return doc
}

func TestBookAppointmentSuccess(t *testing.T) {
	svc, repo, store, reminders := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00", "10:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)
	require.NotNil(t, appt)

	assert.Equal(t, models.AppointmentBooked, appt.Status)
	assert.Equal(t, "09:00", appt.Time)
	assert.Equal(t, float64(150), appt.Fee)
	assert.Equal(t, paidSession, appt.PaymentSessionID)

	stored, err := repo.GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentBooked, stored.Status)

	entry := store.docs[doc.ID].Entry(doc.Entries[0].ID)
	assert.True(t, entry.IsBooked)
	assert.Equal(t, testPatientID, entry.PatientID)

	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, appt.ID, reminders.scheduled[0].AppointmentID)
}

func TestBookAppointmentByTime(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00", "10:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		Time:              "10:00",
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)
	assert.Equal(t, doc.Entries[1].ID, appt.EntryID)
}

func TestBookAppointmentUnpaidSession(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: unpaidSession,
	})
	require.Error(t, err)
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodePaymentRequired, be.Code)

	// Payment is checked before any slot access; nothing was reserved.
	entry := store.docs[doc.ID].Entry(doc.Entries[0].ID)
	assert.False(t, entry.IsBooked)
}

func TestBookAppointmentUnknownSession(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: "cs_missing",
	})
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodePaymentRequired, be.Code)
}

func TestBookAppointmentSlotAlreadyBooked(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	req := BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	}
	_, err := svc.BookAppointment(context.Background(), req)
	require.NoError(t, err)

	req.PatientID = "pat-2"
	_, err = svc.BookAppointment(context.Background(), req)
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeSlotUnavailable, be.Code)
}

func TestBookAppointmentInactiveDoctor(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")
	svc.DoctorRepo.(*fakeDoctorRepo).doctors[testDoctorID].Active = false

	_, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}

func TestBookAppointmentValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []struct {
		name string
		req  BookingRequest
		code string
	}{
		{
			name: "missing patient",
			req:  BookingRequest{DoctorID: testDoctorID, Date: futureDate(), EntryID: "e", CheckoutSessionID: paidSession},
			code: CodeValidation,
		},
		{
			name: "missing session",
			req:  BookingRequest{DoctorID: testDoctorID, PatientID: testPatientID, Date: futureDate(), EntryID: "e"},
			code: CodePaymentRequired,
		},
		{
			name: "bad date",
			req:  BookingRequest{DoctorID: testDoctorID, PatientID: testPatientID, Date: "01-02-2026", EntryID: "e", CheckoutSessionID: paidSession},
			code: CodeValidation,
		},
		{
			name: "no entry or time",
			req:  BookingRequest{DoctorID: testDoctorID, PatientID: testPatientID, Date: futureDate(), CheckoutSessionID: paidSession},
			code: CodeValidation,
		},
		{
			name: "bad time",
			req:  BookingRequest{DoctorID: testDoctorID, PatientID: testPatientID, Date: futureDate(), Time: "9am", CheckoutSessionID: paidSession},
			code: CodeValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BookAppointment(context.Background(), tc.req)
			be, ok := AsBookingError(err)
			require.True(t, ok)
			assert.Equal(t, tc.code, be.Code)
		})
	}
}

func TestBookAppointmentConcurrentExactlyOneWinner(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookAppointment(context.Background(), BookingRequest{
				DoctorID:          testDoctorID,
				PatientID:         fmt.Sprintf("pat-%d", i),
				Date:              date,
				EntryID:           doc.Entries[0].ID,
				CheckoutSessionID: paidSession,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		be, ok := AsBookingError(err)
		require.True(t, ok)
		assert.Equal(t, CodeSlotUnavailable, be.Code)
	}
	assert.Equal(t, 1, wins)
}

func TestCancelAppointmentReleasesSlot(t *testing.T) {
	svc, repo, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelAppointment(context.Background(), appt.ID, testPatientID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	entry := store.docs[doc.ID].Entry(doc.Entries[0].ID)
	assert.False(t, entry.IsBooked)
	assert.Empty(t, entry.PatientID)

	// The freed entry can be booked again.
	_, err = svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         "pat-2",
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	// The cancelled record is preserved.
	stored, err := repo.GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, stored.Status)
}

func TestCancelAppointmentByDoctor(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	_, err = svc.CancelAppointment(context.Background(), appt.ID, testDoctorID)
	require.NoError(t, err)
}

func TestCancelAppointmentForbidden(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	_, err = svc.CancelAppointment(context.Background(), appt.ID, "someone-else")
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, be.Code)
}

func TestCancelAppointmentTwice(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	_, err = svc.CancelAppointment(context.Background(), appt.ID, testPatientID)
	require.NoError(t, err)

	_, err = svc.CancelAppointment(context.Background(), appt.ID, testPatientID)
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, be.Code)
}

func TestCompleteAppointment(t *testing.T) {
	svc, repo, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	err = svc.CompleteAppointment(context.Background(), appt.ID, "other-doc", "")
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, be.Code)

	require.NoError(t, svc.CompleteAppointment(context.Background(), appt.ID, testDoctorID, "all good"))

	stored, err := repo.GetByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCompleted, stored.Status)
	assert.Equal(t, "all good", stored.Notes)

	// A completed appointment keeps its slot entry booked.
	entry := store.docs[doc.ID].Entry(doc.Entries[0].ID)
	assert.True(t, entry.IsBooked)

	// And it can no longer be completed or cancelled.
	err = svc.CompleteAppointment(context.Background(), appt.ID, testDoctorID, "")
	be, ok = AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, be.Code)
}

func TestGetAppointmentAccess(t *testing.T) {
	svc, _, store, _ := newTestService()
	date := futureDate()
	doc := seedSlots(store, date, "09:00")

	appt, err := svc.BookAppointment(context.Background(), BookingRequest{
		DoctorID:          testDoctorID,
		PatientID:         testPatientID,
		Date:              date,
		EntryID:           doc.Entries[0].ID,
		CheckoutSessionID: paidSession,
	})
	require.NoError(t, err)

	for _, requester := range []string{testPatientID, testDoctorID} {
		got, err := svc.GetAppointment(appt.ID, requester)
		require.NoError(t, err)
		assert.Equal(t, appt.ID, got.ID)
	}

	_, err = svc.GetAppointment(appt.ID, "stranger")
	be, ok := AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, be.Code)

	_, err = svc.GetAppointment("missing", testPatientID)
	be, ok = AsBookingError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, be.Code)
}
