package wizard

import (
	"reflect"
	"testing"
)

func formWithSlot(date string, slot TimeSlot) FormData {
	return FormData{
		SelectedDates: []string{date},
		TimeSlots:     map[string][]TimeSlot{date: {slot}},
	}
}

func TestAddThenRemoveTimeSlot_RoundTrip(t *testing.T) {
	date := "2025-07-01"
	before := formWithSlot(date, TimeSlot{StartTime: "10:00", EndTime: "12:00", Duration: "2h"})

	added := AddTimeSlot(before, date)
	if len(added.TimeSlots[date]) != 2 {
		t.Fatalf("expected 2 slots after add, got %d", len(added.TimeSlots[date]))
	}

	restored, err := RemoveTimeSlot(added, date, 1)
	if err != nil {
		t.Fatalf("RemoveTimeSlot error: %v", err)
	}

	if !reflect.DeepEqual(restored.TimeSlots[date], before.TimeSlots[date]) {
		t.Fatalf("round trip did not restore slot list: %+v", restored.TimeSlots[date])
	}
}

func TestAddTimeSlot_CreatesList(t *testing.T) {
	f := FormData{}
	out := AddTimeSlot(f, "2025-07-01")

	if len(out.TimeSlots["2025-07-01"]) != 1 {
		t.Fatalf("expected list creation with one empty slot")
	}
	if f.TimeSlots != nil {
		t.Fatalf("input state was mutated")
	}
}

func TestUpdateTimeSlot_RecomputesDuration(t *testing.T) {
	date := "2025-07-01"
	f := formWithSlot(date, TimeSlot{})

	f, err := UpdateTimeSlot(f, date, 0, SlotStartTime, "10:00")
	if err != nil {
		t.Fatalf("update start: %v", err)
	}
	if got := f.TimeSlots[date][0].Duration; got != "" {
		t.Fatalf("expected empty duration with only start set, got %q", got)
	}

	f, err = UpdateTimeSlot(f, date, 0, SlotEndTime, "11:30")
	if err != nil {
		t.Fatalf("update end: %v", err)
	}
	if got := f.TimeSlots[date][0].Duration; got != "1h 30m" {
		t.Fatalf("expected duration 1h 30m, got %q", got)
	}
}

func TestUpdateTimeSlot_OutOfRange(t *testing.T) {
	date := "2025-07-01"
	f := formWithSlot(date, TimeSlot{StartTime: "10:00"})

	out, err := UpdateTimeSlot(f, date, 3, SlotStartTime, "11:00")
	if err != ErrSlotIndex {
		t.Fatalf("expected ErrSlotIndex, got %v", err)
	}
	if !reflect.DeepEqual(out, f) {
		t.Fatalf("state changed on out-of-range update")
	}
}

func TestUpdateTimeSlot_BadCapacity(t *testing.T) {
	date := "2025-07-01"
	f := formWithSlot(date, TimeSlot{})

	if _, err := UpdateTimeSlot(f, date, 0, SlotCapacity, "-5"); err != ErrBadFieldValue {
		t.Fatalf("expected ErrBadFieldValue, got %v", err)
	}
	if _, err := UpdateTimeSlot(f, date, 0, SlotCapacity, "lots"); err != ErrBadFieldValue {
		t.Fatalf("expected ErrBadFieldValue, got %v", err)
	}
}

func TestTicketCategoryCRUD(t *testing.T) {
	date := "2025-07-01"
	f := formWithSlot(date, TimeSlot{StartTime: "10:00", EndTime: "12:00"})

	f, err := AddTicketCategory(f, date, 0, TicketCategory{Name: "VIP", Price: 50, Quantity: 20})
	if err != nil {
		t.Fatalf("AddTicketCategory: %v", err)
	}

	cats := f.TimeSlots[date][0].SeatCategories
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	if cats[0].ID == "" {
		t.Fatalf("expected generated id")
	}

	f, err = UpdateTicketCategory(f, date, 0, 0, CategoryPrice, "75.5")
	if err != nil {
		t.Fatalf("UpdateTicketCategory: %v", err)
	}
	if got := f.TimeSlots[date][0].SeatCategories[0].Price; got != 75.5 {
		t.Fatalf("expected price 75.5, got %v", got)
	}

	if _, err := UpdateTicketCategory(f, date, 0, 0, CategoryQuantity, "-1"); err != ErrBadFieldValue {
		t.Fatalf("expected ErrBadFieldValue for negative quantity, got %v", err)
	}

	f, err = RemoveTicketCategory(f, date, 0, 0)
	if err != nil {
		t.Fatalf("RemoveTicketCategory: %v", err)
	}
	if len(f.TimeSlots[date][0].SeatCategories) != 0 {
		t.Fatalf("expected empty category list")
	}

	if _, err := RemoveTicketCategory(f, date, 0, 0); err != ErrCategoryIndex {
		t.Fatalf("expected ErrCategoryIndex, got %v", err)
	}
}

func TestEditors_NoAliasing(t *testing.T) {
	date := "2025-07-01"
	f := formWithSlot(date, TimeSlot{
		StartTime:      "10:00",
		EndTime:        "12:00",
		SeatCategories: []TicketCategory{{ID: "c1", Name: "GA", Price: 10, Quantity: 5}},
	})

	out, err := UpdateTimeSlot(f, date, 0, SlotStartTime, "09:00")
	if err != nil {
		t.Fatalf("UpdateTimeSlot: %v", err)
	}

	// mutating the new tree must not leak into the old one
	out.TimeSlots[date][0].SeatCategories[0].Name = "Changed"

	if f.TimeSlots[date][0].SeatCategories[0].Name != "GA" {
		t.Fatalf("old state aliased by new state")
	}
	if f.TimeSlots[date][0].StartTime != "10:00" {
		t.Fatalf("old slot mutated")
	}
}
