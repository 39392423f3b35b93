package booking

import (
	"fmt"
	"sort"
	"time"

	"mediq/models"
)

// GetAvailableSlots returns the unbooked entries for a doctor on a date,
// ordered by time of day. A missing slot document yields an empty list, not
// an error.
func (s *DefaultBookingService) GetAvailableSlots(doctorID, date string) ([]models.SlotEntry, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, newError(CodeValidation, "date must be YYYY-MM-DD")
	}

	slotDoc, err := s.SlotRepo.GetByDoctorDate(doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	if slotDoc == nil {
		return []models.SlotEntry{}, nil
	}

	available := make([]models.SlotEntry, 0, len(slotDoc.Entries))
	for _, e := range slotDoc.Entries {
		if !e.IsBooked {
			available = append(available, e)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].Time < available[j].Time })
	return available, nil
}

// SetupSlots creates or extends a doctor's slot document for a date. Times
// must be HH:MM and the date must not be in the past.
func (s *DefaultBookingService) SetupSlots(doctorID, date string, times []string) (*models.SlotDoc, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, newError(CodeValidation, "date must be YYYY-MM-DD")
	}
	if day.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, newError(CodeValidation, "cannot publish slots for a past date")
	}
	if len(times) == 0 {
		return nil, newError(CodeValidation, "at least one time is required")
	}
	seen := make(map[string]bool, len(times))
	for _, t := range times {
		if _, err := time.Parse(timeLayout, t); err != nil {
			return nil, newError(CodeValidation, fmt.Sprintf("invalid time %q, must be HH:MM", t))
		}
		if seen[t] {
			return nil, newError(CodeValidation, fmt.Sprintf("duplicate time %q", t))
		}
		seen[t] = true
	}

	doc, err := s.SlotRepo.UpsertDay(doctorID, date, times)
	if err != nil {
		return nil, fmt.Errorf("failed to publish slots: %w", err)
	}
	return doc, nil
}

// RemoveSlotEntry deletes an unbooked entry from the doctor's own slot
// document.
func (s *DefaultBookingService) RemoveSlotEntry(doctorID, slotDocID, entryID string) error {
	doc, err := s.SlotRepo.GetByID(slotDocID)
	if err != nil {
		return fmt.Errorf("failed to fetch slot document: %w", err)
	}
	if doc == nil {
		return newError(CodeNotFound, "slot document not found")
	}
	if doc.DoctorID != doctorID {
		return newError(CodeForbidden, "not your schedule")
	}
	entry := doc.Entry(entryID)
	if entry == nil {
		return newError(CodeNotFound, "slot entry not found")
	}
	if entry.IsBooked {
		return newError(CodeValidation, "cannot remove a booked slot")
	}
	return s.SlotRepo.RemoveEntry(slotDocID, entryID)
}
