package calendarRepo

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

// MongoCalendarRepo implements CalendarRepository using MongoDB.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo creates a new CalendarRepository using MongoDB.
func NewMongoCalendarRepo() CalendarRepository {
	coll := database.Collection("calendar_events")
	repo := &MongoCalendarRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
	})
	if err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new calendar event.
func (r *MongoCalendarRepo) Create(event *models.CalendarEvent) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// GetByID retrieves a calendar event by its unique ID.
func (r *MongoCalendarRepo) GetByID(id string) (*models.CalendarEvent, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var event models.CalendarEvent
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch calendar event %s: %w", id, err)
	}
	return &event, nil
}

// ListByUser retrieves a user's calendar events ordered by date.
func (r *MongoCalendarRepo) ListByUser(userID string) ([]models.CalendarEvent, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var events []models.CalendarEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return events, nil
}

// Delete removes a calendar event by its ID.
func (r *MongoCalendarRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete calendar event %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("calendar event with id %s not found", id)
	}
	return nil
}
