package slotRepo

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

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new instance of SlotRepository using MongoDB.
func NewMongoSlotRepo() SlotRepository {
	coll := database.Collection("slots")
	repo := &MongoSlotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique (doctorId, date) compound index that
// guarantees one slot document per doctor per day.
func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a slot document by its unique ID.
func (r *MongoSlotRepo) GetByID(id string) (*models.SlotDoc, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.SlotDoc
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch slot document %s: %w", id, err)
	}
	return &doc, nil
}

// GetByDoctorDate retrieves the slot document for (doctorID, date).
func (r *MongoSlotRepo) GetByDoctorDate(doctorID, date string) (*models.SlotDoc, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.SlotDoc
	err := r.coll.FindOne(ctx, bson.M{"doctorId": doctorID, "date": date}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch slots for doctor %s on %s: %w", doctorID, date, err)
	}
	return &doc, nil
}

// ListByDoctor retrieves all slot documents for a doctor from fromDate onward.
func (r *MongoSlotRepo) ListByDoctor(doctorID, fromDate string) ([]models.SlotDoc, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID}
	if fromDate != "" {
		filter["date"] = bson.M{"$gte": fromDate}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list slots for doctor %s: %w", doctorID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.SlotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode slot documents: %w", err)
	}
	return docs, nil
}
