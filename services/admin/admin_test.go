package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	doctorRepoPkg "mediq/database/repository/doctor"
	"mediq/models"
)

type fakePendingRepo struct {
	recs map[string]*models.PendingDoctor
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{recs: make(map[string]*models.PendingDoctor)}
}

func (r *fakePendingRepo) Create(p *models.PendingDoctor) error {
	cp := *p
	r.recs[p.ID] = &cp
	return nil
}

func (r *fakePendingRepo) GetByID(id string) (*models.PendingDoctor, error) {
	p, ok := r.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePendingRepo) GetByEmail(email string) (*models.PendingDoctor, error) {
	for _, p := range r.recs {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePendingRepo) ListByStatus(status string) ([]models.PendingDoctor, error) {
	var out []models.PendingDoctor
	for _, p := range r.recs {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePendingRepo) SetStatus(id, status string) error {
	p, ok := r.recs[id]
	if !ok {
		return fmt.Errorf("pending doctor not found")
	}
	p.Status = status
	return nil
}

func (r *fakePendingRepo) Delete(id string) error {
	delete(r.recs, id)
	return nil
}

// fakeDoctorRepo overrides only what the admin flows touch.
type fakeDoctorRepo struct {
	doctorRepoPkg.DoctorRepository
	doctors map[string]*models.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
}

func (r *fakeDoctorRepo) Create(doctor *models.Doctor) error {
	if _, ok := r.doctors[doctor.ID]; ok {
		return fmt.Errorf("duplicate doctor id")
	}
	cp := *doctor
	r.doctors[doctor.ID] = &cp
	return nil
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDoctorRepo) GetAll() ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDoctorRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	d, ok := r.doctors[id]
	if !ok {
		return fmt.Errorf("doctor not found")
	}
	if v, ok := updateDoc["fee"].(float64); ok {
		d.Fee = v
	}
	return nil
}

func newTestService() (*DefaultAdminService, *fakePendingRepo, *fakeDoctorRepo) {
	pending := newFakePendingRepo()
	doctors := newFakeDoctorRepo()
	svc := &DefaultAdminService{
		PendingRepo: pending,
		DoctorRepo:  doctors,
	}
	return svc, pending, doctors
}

func seedPending(pending *fakePendingRepo, id string) *models.PendingDoctor {
	rec := &models.PendingDoctor{
		ID:         id,
		Email:      id + "@clinic.example",
		Name:       "Jordan Mensah",
		Speciality: "dermatology",
		Fee:        200,
		Status:     models.PendingStatusPending,
	}
	_ = pending.Create(rec)
	return rec
}

func TestApproveDoctor(t *testing.T) {
	svc, pending, doctors := newTestService()
	seedPending(pending, "pend-1")

	doc, err := svc.ApproveDoctor(context.Background(), "pend-1")
	require.NoError(t, err)

	assert.Equal(t, "pend-1", doc.ID)
	assert.True(t, doc.Active)
	assert.Equal(t, float64(200), doc.Fee)
	assert.Equal(t, models.PendingStatusApproved, pending.recs["pend-1"].Status)

	stored, err := doctors.GetByID("pend-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "dermatology", stored.Speciality)
}

func TestApproveDoctorAlreadyDecided(t *testing.T) {
	svc, pending, _ := newTestService()
	rec := seedPending(pending, "pend-1")
	rec.Status = models.PendingStatusRejected
	pending.recs[rec.ID] = rec

	_, err := svc.ApproveDoctor(context.Background(), "pend-1")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestApproveDoctorMissing(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ApproveDoctor(context.Background(), "missing")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}

func TestRejectDoctor(t *testing.T) {
	svc, pending, doctors := newTestService()
	seedPending(pending, "pend-1")

	require.NoError(t, svc.RejectDoctor("pend-1"))
	assert.Equal(t, models.PendingStatusRejected, pending.recs["pend-1"].Status)
	assert.Empty(t, doctors.doctors)

	// A rejected registration cannot be decided again.
	err := svc.RejectDoctor("pend-1")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, se.Code)
}

func TestListPendingDoctors(t *testing.T) {
	svc, pending, _ := newTestService()
	seedPending(pending, "pend-1")
	rec := seedPending(pending, "pend-2")
	rec.Status = models.PendingStatusApproved
	pending.recs[rec.ID] = rec

	recs, err := svc.ListPendingDoctors()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "pend-1", recs[0].ID)
}

func TestApplyFeeDiscount(t *testing.T) {
	svc, _, doctors := newTestService()
	doctors.doctors["doc-1"] = &models.Doctor{ID: "doc-1", Fee: 200, Active: true}

	doc, err := svc.ApplyFeeDiscount("doc-1", 25)
	require.NoError(t, err)
	assert.Equal(t, float64(150), doc.Fee)
	assert.Equal(t, float64(150), doctors.doctors["doc-1"].Fee)

	// Rounds to two decimals.
	doc, err = svc.ApplyFeeDiscount("doc-1", 33)
	require.NoError(t, err)
	assert.Equal(t, 100.5, doc.Fee)
}

func TestApplyFeeDiscountBounds(t *testing.T) {
	svc, _, doctors := newTestService()
	doctors.doctors["doc-1"] = &models.Doctor{ID: "doc-1", Fee: 200, Active: true}

	for _, percent := range []float64{-1, 101} {
		_, err := svc.ApplyFeeDiscount("doc-1", percent)
		se, ok := AsServiceError(err)
		require.True(t, ok)
		assert.Equal(t, CodeValidation, se.Code)
	}

	_, err := svc.ApplyFeeDiscount("missing", 10)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}
