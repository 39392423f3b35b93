package pendingRepo

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

// MongoPendingDoctorRepo implements PendingDoctorRepository using MongoDB.
type MongoPendingDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoPendingDoctorRepo creates a new PendingDoctorRepository using MongoDB.
func NewMongoPendingDoctorRepo() PendingDoctorRepository {
	coll := database.Collection("pending_doctors")
	repo := &MongoPendingDoctorRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new pending registration with status "pending".
func (r *MongoPendingDoctorRepo) Create(p *models.PendingDoctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.PendingStatusPending
	}

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create pending doctor: %w", err)
	}
	return nil
}

// GetByID retrieves a pending registration by its unique ID.
func (r *MongoPendingDoctorRepo) GetByID(id string) (*models.PendingDoctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.PendingDoctor
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending doctor with id %s: %w", id, err)
	}
	return &p, nil
}

// GetByEmail retrieves a pending registration by email.
func (r *MongoPendingDoctorRepo) GetByEmail(email string) (*models.PendingDoctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.PendingDoctor
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending doctor with email %s: %w", email, err)
	}
	return &p, nil
}

// ListByStatus retrieves pending registrations with the given status. An
// empty status matches all.
func (r *MongoPendingDoctorRepo) ListByStatus(status string) ([]models.PendingDoctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.PendingDoctor
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode pending doctors: %w", err)
	}
	return out, nil
}

// SetStatus flips the status of a pending registration.
func (r *MongoPendingDoctorRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update pending doctor %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pending doctor with id %s not found", id)
	}
	return nil
}

// Delete removes a pending registration by its ID.
func (r *MongoPendingDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pending doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pending doctor with id %s not found", id)
	}
	return nil
}
