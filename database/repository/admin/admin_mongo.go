package adminRepo

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

// AdminRepository defines data access for database-backed admin accounts.
type AdminRepository interface {
	GetByID(id string) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
	Create(admin *models.Admin) error
	SetTokenHash(id, tokenHash string) error
	// GetTokenHash returns the persisted auth token hash for an admin.
	GetTokenHash(id string) (string, error)
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates a new AdminRepository using MongoDB.
func NewMongoAdminRepo() AdminRepository {
	coll := database.Collection("admins")
	repo := &MongoAdminRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves an admin by its unique ID.
func (r *MongoAdminRepo) GetByID(id string) (*models.Admin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var adm models.Admin
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&adm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin with id %s: %w", id, err)
	}
	return &adm, nil
}

// GetByEmail retrieves an admin by its email address.
func (r *MongoAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var adm models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&adm)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin with email %s: %w", email, err)
	}
	return &adm, nil
}

// Create inserts a new admin document.
func (r *MongoAdminRepo) Create(admin *models.Admin) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// SetTokenHash persists the hash of a freshly issued token.
func (r *MongoAdminRepo) SetTokenHash(id, tokenHash string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update admin %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("admin with id %s not found", id)
	}
	return nil
}

// GetTokenHash returns the persisted auth token hash for an admin.
func (r *MongoAdminRepo) GetTokenHash(id string) (string, error) {
	adm, err := r.GetByID(id)
	if err != nil {
		return "", err
	}
	if adm == nil {
		return "", fmt.Errorf("admin with id %s not found", id)
	}
	return adm.TokenHash, nil
}
