package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"mediq/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runInTransaction executes txnFn inside a Mongo session transaction,
// aborting on any error so neither collection observes a partial write.
func (r *MongoBookingRepo) runInTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// BookTransactionally marks the slot entry booked and inserts the
// appointment as one atomic unit. The slot update matches only an unbooked
// entry, so a concurrent booking for the same entry loses with
// ErrSlotUnavailable and leaves both collections untouched.
func (r *MongoBookingRepo) BookTransactionally(ctx context.Context, appt *models.Appointment) error {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	appt.Status = models.AppointmentBooked

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"id":       appt.SlotDocID,
			"doctorId": appt.DoctorID,
			"date":     appt.Date,
			"entries": bson.M{
				"$elemMatch": bson.M{
					"id":       appt.EntryID,
					"isBooked": false,
				},
			},
		}
		update := bson.M{
			"$set": bson.M{
				"entries.$.isBooked":  true,
				"entries.$.patientId": appt.PatientID,
				"updatedAt":           now,
			},
		}

		res, err := r.slotColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to reserve slot entry: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}

		if _, err := r.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := r.runInTransaction(ctx, txnFn); err != nil {
		if err == ErrSlotUnavailable {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// CancelTransactionally flips a Booked appointment to Cancelled and releases
// its slot entry in one atomic unit. A cancelled appointment with a slot
// entry still marked booked, or the reverse, can never be observed.
func (r *MongoBookingRepo) CancelTransactionally(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var cancelled *models.Appointment

	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		err := r.apptColl.FindOne(sc, bson.M{"id": appointmentID}).Decode(&appt)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to fetch appointment %s: %w", appointmentID, err)
		}
		if appt.Status != models.AppointmentBooked {
			return ErrNotCancellable
		}

		now := time.Now()
		res, err := r.apptColl.UpdateOne(sc,
			bson.M{"id": appointmentID, "status": models.AppointmentBooked},
			bson.M{"$set": bson.M{"status": models.AppointmentCancelled, "updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("failed to cancel appointment %s: %w", appointmentID, err)
		}
		if res.MatchedCount == 0 {
			return ErrNotCancellable
		}

		slotFilter := bson.M{
			"id": appt.SlotDocID,
			"entries": bson.M{
				"$elemMatch": bson.M{
					"id":        appt.EntryID,
					"isBooked":  true,
					"patientId": appt.PatientID,
				},
			},
		}
		slotUpdate := bson.M{
			"$set":   bson.M{"entries.$.isBooked": false, "updatedAt": now},
			"$unset": bson.M{"entries.$.patientId": ""},
		}
		slotRes, err := r.slotColl.UpdateOne(sc, slotFilter, slotUpdate)
		if err != nil {
			return fmt.Errorf("failed to release slot entry: %w", err)
		}
		if slotRes.MatchedCount == 0 {
			// The entry must exist booked for this patient while the
			// appointment is Booked; anything else is a broken invariant.
			return fmt.Errorf("slot entry %s not held by appointment %s", appt.EntryID, appointmentID)
		}

		appt.Status = models.AppointmentCancelled
		appt.UpdatedAt = now
		cancelled = &appt
		return nil
	}

	if err := r.runInTransaction(ctx, txnFn); err != nil {
		if err == ErrAppointmentNotFound || err == ErrNotCancellable {
			return nil, err
		}
		return nil, fmt.Errorf("cancel transaction failed: %w", err)
	}
	return cancelled, nil
}
