package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. It holds both
// the appointment and slot collections because the booking transaction spans
// the two.
type MongoBookingRepo struct {
	apptColl *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{
		apptColl: database.Collection("appointments"),
		slotColl: database.Collection("slots"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}}},
	}

	_, err := r.apptColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
	cursor, err := r.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// ListByPatient retrieves a patient's appointments, newest first.
func (r *MongoBookingRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	return r.list(bson.M{"patientId": patientID})
}

// ListByDoctor retrieves a doctor's appointments, newest first.
func (r *MongoBookingRepo) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	return r.list(bson.M{"doctorId": doctorID})
}

// ListAll retrieves every appointment.
func (r *MongoBookingRepo) ListAll() ([]models.Appointment, error) {
	return r.list(bson.M{})
}

// UpdateSetDocument applies a partial update wrapped in $set.
func (r *MongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.apptColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
