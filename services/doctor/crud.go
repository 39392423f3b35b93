package doctor

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"mediq/models"
	"mediq/utils"
)

// GetByID resolves a doctor with their image URL. Public callers get the
// credential-stripped view.
func (s *DefaultDoctorService) GetByID(ctx context.Context, id string, public bool) (*models.Doctor, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "doctor not found")
	}
	s.resolveImageURL(ctx, rec)
	if public {
		pub := rec.PublicView()
		return &pub, nil
	}
	return rec, nil
}

// Search lists active doctors, optionally filtered by speciality.
func (s *DefaultDoctorService) Search(ctx context.Context, speciality string) ([]models.Doctor, error) {
	recs, err := s.Repo.SearchBySpeciality(speciality)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	out := make([]models.Doctor, 0, len(recs))
	for i := range recs {
		s.resolveImageURL(ctx, &recs[i])
		out = append(out, recs[i].PublicView())
	}
	return out, nil
}

// UpdateProfile applies the doctor's own field changes, replacing the stored
// image when a new one is supplied.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Doctor, error) {
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if rec == nil {
		return nil, newError(CodeNotFound, "doctor not found")
	}

	updateDoc := bson.M{}
	if upd.Name != nil {
		updateDoc["name"] = *upd.Name
	}
	if upd.Speciality != nil {
		updateDoc["speciality"] = *upd.Speciality
	}
	if upd.ExperienceYears != nil {
		if *upd.ExperienceYears < 0 {
			return nil, newError(CodeValidation, "experience years cannot be negative")
		}
		updateDoc["experienceYears"] = *upd.ExperienceYears
	}
	if upd.About != nil {
		updateDoc["about"] = *upd.About
	}
	if upd.Fee != nil {
		if *upd.Fee <= 0 {
			return nil, newError(CodeValidation, "consultation fee must be positive")
		}
		updateDoc["fee"] = *upd.Fee
	}
	if upd.Address != nil {
		updateDoc["address"] = *upd.Address
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
		return nil, fmt.Errorf("failed to update doctor profile: %w", err)
	}
	return s.GetByID(ctx, id, false)
}

// AddReview records a patient rating, rejecting duplicates per patient.
func (s *DefaultDoctorService) AddReview(doctorID, patientID string, rating int) error {
	if rating < 1 || rating > 5 {
		return newError(CodeValidation, "rating must be between 1 and 5")
	}
	rec, err := s.Repo.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if rec == nil {
		return newError(CodeNotFound, "doctor not found")
	}
	for _, rv := range rec.Reviews {
		if rv.PatientID == patientID {
			return newError(CodeConflict, "you have already reviewed this doctor")
		}
	}
	review := models.Review{PatientID: patientID, Rating: rating, CreatedAt: time.Now()}
	if err := s.Repo.AddReview(doctorID, review); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

func (s *DefaultDoctorService) resolveImageURL(ctx context.Context, rec *models.Doctor) {
	if rec.ImageID == "" || s.Storage == nil {
		return
	}
	url, err := s.Storage.GetDownloadURL(ctx, "image", rec.ImageID)
	if err != nil {
		utils.GetLogger().Warn("failed to resolve doctor image URL",
			zap.String("imageId", rec.ImageID), zap.Error(err))
		return
	}
	rec.ImageURL = url
}
