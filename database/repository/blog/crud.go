package blogRepo

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

// MongoBlogRepo implements BlogRepository using MongoDB.
type MongoBlogRepo struct {
	coll *mongo.Collection
}

// NewMongoBlogRepo creates a new BlogRepository using MongoDB.
func NewMongoBlogRepo() BlogRepository {
	coll := database.Collection("blogs")
	repo := &MongoBlogRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new blog document.
func (r *MongoBlogRepo) Create(blog *models.Blog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// GetByID retrieves a blog by its unique ID.
func (r *MongoBlogRepo) GetByID(id string) (*models.Blog, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var blog models.Blog
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch blog %s: %w", id, err)
	}
	return &blog, nil
}

// List retrieves blogs, optionally filtered by category, newest first.
func (r *MongoBlogRepo) List(category string) ([]models.Blog, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return r.find(filter)
}

// ListByAuthor retrieves all blogs by one author, newest first.
func (r *MongoBlogRepo) ListByAuthor(authorID string) ([]models.Blog, error) {
	return r.find(bson.M{"authorId": authorID})
}

func (r *MongoBlogRepo) find(filter bson.M) ([]models.Blog, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var blogs []models.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("failed to decode blogs: %w", err)
	}
	return blogs, nil
}

// Update modifies an existing blog document.
func (r *MongoBlogRepo) Update(blog *models.Blog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	blog.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": blog.ID}, bson.M{"$set": blog})
	if err != nil {
		return fmt.Errorf("failed to update blog %s: %w", blog.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("blog with id %s not found", blog.ID)
	}
	return nil
}

// Delete removes a blog document by its ID.
func (r *MongoBlogRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete blog %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("blog with id %s not found", id)
	}
	return nil
}
