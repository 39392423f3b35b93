package patientRepo

import (
	"context"
	"fmt"
	"time"

	"mediq/database"
	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo creates a new instance of PatientRepository using MongoDB.
func NewMongoPatientRepo() PatientRepository {
	coll := database.Collection("patients")
	repo := &MongoPatientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a patient by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoPatientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var pat models.Patient
	err := r.coll.FindOne(ctx, bson.M{"id": id}, findOpts).Decode(&pat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient with id %s: %w", id, err)
	}
	return &pat, nil
}

// GetTokenHash returns the persisted auth token hash for a patient.
func (r *MongoPatientRepo) GetTokenHash(id string) (string, error) {
	pat, err := r.GetByIDWithProjection(id, bson.M{"id": 1, "tokenHash": 1})
	if err != nil {
		return "", err
	}
	if pat == nil {
		return "", fmt.Errorf("patient with id %s not found", id)
	}
	return pat.TokenHash, nil
}
