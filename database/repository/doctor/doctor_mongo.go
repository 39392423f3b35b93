package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

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
func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "speciality", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a doctor by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	findOpts := options.FindOne()
	if projection != nil {
		findOpts.SetProjection(projection)
	}

	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}, findOpts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doc, nil
}

// GetTokenHash returns the persisted auth token hash for a doctor.
func (r *MongoDoctorRepo) GetTokenHash(id string) (string, error) {
	doc, err := r.GetByIDWithProjection(id, bson.M{"id": 1, "tokenHash": 1})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("doctor with id %s not found", id)
	}
	return doc.TokenHash, nil
}
