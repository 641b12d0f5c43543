package wizard

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ticketlane/eventwizard/internal/timeutil"
)

// Field names accepted by the slot and category update operations. They
// mirror the json tags so API callers can pass the field they rendered.
type SlotField string

const (
	SlotStartTime SlotField = "startTime"
	SlotEndTime   SlotField = "endTime"
	SlotCapacity  SlotField = "capacity"
)

type CategoryField string

const (
	CategoryName     CategoryField = "name"
	CategoryPrice    CategoryField = "price"
	CategoryQuantity CategoryField = "quantity"
)

// AddTimeSlot appends an empty slot to the date's list, creating the list if
// the date has none yet. Always returns a fresh state tree.
func AddTimeSlot(f FormData, date string) FormData {
	out := f.Clone()
	if out.TimeSlots == nil {
		out.TimeSlots = make(map[string][]TimeSlot)
	}

	out.TimeSlots[date] = append(out.TimeSlots[date], TimeSlot{})

	return out
}

// UpdateTimeSlot replaces one field of the slot at index. Editing either
// time recomputes the derived duration. Out-of-range indexes leave the state
// untouched and report ErrSlotIndex.
func UpdateTimeSlot(f FormData, date string, index int, field SlotField, value string) (FormData, error) {
	slots := f.slotsFor(date)
	if index < 0 || index >= len(slots) {
		return f, ErrSlotIndex
	}

	out := f.Clone()
	slot := &out.TimeSlots[date][index]

	switch field {
	case SlotStartTime:
		slot.StartTime = value
	case SlotEndTime:
		slot.EndTime = value
	case SlotCapacity:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return f, ErrBadFieldValue
		}
		slot.Capacity = n
	default:
		return f, ErrUnknownField
	}

	if field == SlotStartTime || field == SlotEndTime {
		slot.Duration = timeutil.Duration(slot.StartTime, slot.EndTime)
	}

	return out, nil
}

// RemoveTimeSlot removes the slot at index; later slots shift down.
func RemoveTimeSlot(f FormData, date string, index int) (FormData, error) {
	slots := f.slotsFor(date)
	if index < 0 || index >= len(slots) {
		return f, ErrSlotIndex
	}

	out := f.Clone()
	list := out.TimeSlots[date]
	out.TimeSlots[date] = append(list[:index], list[index+1:]...)

	return out, nil
}

// AddTicketCategory appends a category to the slot's seat list. A missing id
// gets a fresh uuid.
func AddTicketCategory(f FormData, date string, slotIndex int, c TicketCategory) (FormData, error) {
	slots := f.slotsFor(date)
	if slotIndex < 0 || slotIndex >= len(slots) {
		return f, ErrSlotIndex
	}

	if c.Price < 0 || c.Quantity < 0 {
		return f, ErrBadFieldValue
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	out := f.Clone()
	slot := &out.TimeSlots[date][slotIndex]
	slot.SeatCategories = append(slot.SeatCategories, c)

	return out, nil
}

// UpdateTicketCategory edits one field of a category in place; numeric
// fields are parsed from the string value the caller rendered.
func UpdateTicketCategory(f FormData, date string, slotIndex, catIndex int, field CategoryField, value string) (FormData, error) {
	slots := f.slotsFor(date)
	if slotIndex < 0 || slotIndex >= len(slots) {
		return f, ErrSlotIndex
	}
	if catIndex < 0 || catIndex >= len(slots[slotIndex].SeatCategories) {
		return f, ErrCategoryIndex
	}

	out := f.Clone()
	cat := &out.TimeSlots[date][slotIndex].SeatCategories[catIndex]

	switch field {
	case CategoryName:
		cat.Name = value
	case CategoryPrice:
		p, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || p < 0 {
			return f, ErrBadFieldValue
		}
		cat.Price = p
	case CategoryQuantity:
		q, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || q < 0 {
			return f, ErrBadFieldValue
		}
		cat.Quantity = q
	default:
		return f, ErrUnknownField
	}

	return out, nil
}

// RemoveTicketCategory removes a category by index from one slot.
func RemoveTicketCategory(f FormData, date string, slotIndex, catIndex int) (FormData, error) {
	slots := f.slotsFor(date)
	if slotIndex < 0 || slotIndex >= len(slots) {
		return f, ErrSlotIndex
	}
	if catIndex < 0 || catIndex >= len(slots[slotIndex].SeatCategories) {
		return f, ErrCategoryIndex
	}

	out := f.Clone()
	cats := out.TimeSlots[date][slotIndex].SeatCategories
	out.TimeSlots[date][slotIndex].SeatCategories = append(cats[:catIndex], cats[catIndex+1:]...)

	return out, nil
}
