package slotRepo

import (
	"fmt"
	"time"

	"mediq/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// UpsertDay creates or extends the slot document for (doctorID, date). Times
// already present in the document are skipped so booked entries are never
// clobbered by a schedule re-submit.
func (r *MongoSlotRepo) UpsertDay(doctorID, date string, times []string) (*models.SlotDoc, error) {
	existing, err := r.GetByDoctorDate(doctorID, date)
	if err != nil {
		return nil, err
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if existing == nil {
		doc := &models.SlotDoc{
			ID:        uuid.New().String(),
			DoctorID:  doctorID,
			Date:      date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, t := range times {
			doc.Entries = append(doc.Entries, models.SlotEntry{ID: uuid.New().String(), Time: t})
		}
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to create slot document for doctor %s on %s: %w", doctorID, date, err)
		}
		return doc, nil
	}

	var fresh []models.SlotEntry
	for _, t := range times {
		if existing.EntryAt(t) == nil {
			fresh = append(fresh, models.SlotEntry{ID: uuid.New().String(), Time: t})
		}
	}
	if len(fresh) == 0 {
		return existing, nil
	}

	update := bson.M{
		"$push": bson.M{"entries": bson.M{"$each": fresh}},
		"$set":  bson.M{"updatedAt": now},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": existing.ID}, update); err != nil {
		return nil, fmt.Errorf("failed to extend slot document %s: %w", existing.ID, err)
	}
	existing.Entries = append(existing.Entries, fresh...)
	existing.UpdatedAt = now
	return existing, nil
}

// RemoveEntry deletes an entry from a slot document, but only while it is
// unbooked. Removing a booked entry would orphan its appointment.
func (r *MongoSlotRepo) RemoveEntry(slotDocID, entryID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id": slotDocID,
		"entries": bson.M{
			"$elemMatch": bson.M{"id": entryID, "isBooked": false},
		},
	}
	update := bson.M{
		"$pull": bson.M{"entries": bson.M{"id": entryID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove entry %s from slot document %s: %w", entryID, slotDocID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("entry %s not found or already booked", entryID)
	}
	return nil
}
