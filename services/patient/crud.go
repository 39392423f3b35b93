package patient

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"mediq/models"
	"mediq/utils"
)

const imageFolder = "mediq/patient_images"

const dobLayout = "2006-01-02"

// GetByID resolves a patient with their image URL.
func (s *DefaultPatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "patient not found")
	}
	s.resolveImageURL(ctx, rec)
	return rec, nil
}

// UpdateProfile applies the patient's own field changes, replacing the
// stored image when a new one is supplied.
func (s *DefaultPatientService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Patient, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "patient not found")
	}

	updateDoc := bson.M{}
	if upd.Name != nil {
		updateDoc["name"] = *upd.Name
	}
	if upd.Phone != nil {
		updateDoc["phone"] = *upd.Phone
	}
	if upd.Gender != nil {
		updateDoc["gender"] = *upd.Gender
	}
	if upd.Address != nil {
		updateDoc["address"] = *upd.Address
	}
	if upd.DateOfBirth != nil {
		if _, err := time.Parse(dobLayout, *upd.DateOfBirth); err != nil {
			return nil, newError(CodeValidation, "dateOfBirth must be YYYY-MM-DD")
		}
		updateDoc["dateOfBirth"] = *upd.DateOfBirth
	}

	if upd.ImagePath != nil && *upd.ImagePath != "" {
		publicID, err := s.Storage.UploadFile(ctx, *upd.ImagePath, imageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile image: %w", err)
		}
		if rec.ImageID != "" {
			if err := s.Storage.DeleteFile(ctx, rec.ImageID); err != nil {
				utils.GetLogger().Warn("UpdateProfile: failed to delete previous image",
					zap.String("imageId", rec.ImageID), zap.Error(err))
			}
		}
		updateDoc["imageId"] = publicID
	}

	if len(updateDoc) == 0 {
		return nil, newError(CodeValidation, "no fields to update")
	}

	if err := s.Repo.UpdateSetDocument(id, updateDoc); err != nil {
		return nil, fmt.Errorf("failed to update patient profile: %w", err)
	}
	return s.GetByID(ctx, id)
}

// UpdateMedicalHistory lets an authenticated doctor replace a patient's
// medical history notes.
func (s *DefaultPatientService) UpdateMedicalHistory(patientID, doctorID, history string) error {
	doc, err := s.DoctorRepo.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doc == nil || !doc.Active {
		return newError(CodeNotFound, "doctor not found")
	}

	rec, err := s.Repo.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("failed to fetch patient: %w", err)
	}
	if rec == nil {
		return newError(CodeNotFound, "patient not found")
	}

	if err := s.Repo.UpdateSetDocument(patientID, bson.M{"medicalHistory": history}); err != nil {
		return fmt.Errorf("failed to update medical history: %w", err)
	}
	utils.GetLogger().Info("medical history updated",
		zap.String("patientId", patientID), zap.String("doctorId", doctorID))
	return nil
}

// DeleteAccount removes the patient record and its stored image. Appointment
// history is retained for the doctors' records.
func (s *DefaultPatientService) DeleteAccount(ctx context.Context, id string) error {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch patient: %w", err)
	}
	if rec == nil {
		return newError(CodeNotFound, "patient not found")
	}

	if rec.ImageID != "" && s.Storage != nil {
		if err := s.Storage.DeleteFile(ctx, rec.ImageID); err != nil {
			utils.GetLogger().Warn("DeleteAccount: failed to delete profile image",
				zap.String("imageId", rec.ImageID), zap.Error(err))
		}
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	utils.ClearAuthCache(id)
	return nil
}

func (s *DefaultPatientService) resolveImageURL(ctx context.Context, rec *models.Patient) {
	if rec.ImageID == "" || s.Storage == nil {
		return
	}
	url, err := s.Storage.GetDownloadURL(ctx, "image", rec.ImageID)
	if err != nil {
		utils.GetLogger().Warn("failed to resolve patient image URL",
			zap.String("imageId", rec.ImageID), zap.Error(err))
		return
	}
	rec.ImageURL = url
}
