// File: database/repository/doctor/doctorMongoQueries.go
package doctorRepo

import (
	"fmt"
	"time"

	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves the full doctor document.
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a doctor by its email address.
func (r *MongoDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with email %s: %w", email, err)
	}
	return &doc, nil
}

// GetAll retrieves all doctor documents.
func (r *MongoDoctorRepo) GetAll() ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// SearchBySpeciality retrieves active doctors matching the speciality,
// case-insensitive. An empty speciality matches all active doctors.
func (r *MongoDoctorRepo) SearchBySpeciality(speciality string) ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if speciality != "" {
		filter["speciality"] = bson.M{"$regex": primitive.Regex{Pattern: speciality, Options: "i"}}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors by speciality %q: %w", speciality, err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}
