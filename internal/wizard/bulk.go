package wizard

import "github.com/google/uuid"

// SeedSlotTemplate builds the starting point for the "apply to all dates"
// popup: a copy of the first slot of the active date, or a blank slot when
// the date has none.
func SeedSlotTemplate(f FormData, date string) TimeSlot {
	slots := f.slotsFor(date)
	if len(slots) == 0 {
		return TimeSlot{}
	}

	return cloneSlot(slots[0])
}

// ApplySlotToAllDates fans the template out to every selected date. A date
// that already has a slot with the same (startTime, endTime) pair is
// skipped; the pair is the sole de-duplication key, category contents are
// not compared. The whole fan-out lands in one new state tree, so callers
// never observe a partial application. Cloned categories get fresh ids.
func ApplySlotToAllDates(f FormData, tpl TimeSlot) FormData {
	out := f.Clone()
	if out.TimeSlots == nil {
		out.TimeSlots = make(map[string][]TimeSlot)
	}

	for _, date := range out.SelectedDates {
		if hasSlotWithTimes(out.TimeSlots[date], tpl.StartTime, tpl.EndTime) {
			continue
		}

		clone := cloneSlot(tpl)
		for i := range clone.SeatCategories {
			clone.SeatCategories[i].ID = uuid.NewString()
		}

		out.TimeSlots[date] = append(out.TimeSlots[date], clone)
	}

	return out
}

func hasSlotWithTimes(slots []TimeSlot, start, end string) bool {
	for _, s := range slots {
		if s.StartTime == start && s.EndTime == end {
			return true
		}
	}

	return false
}

// ApplyCategoriesToAllSlots appends a fresh-id clone of every template
// category to every slot of every selected date that already has slots, a
// dates x slots x templates cross product. Intentionally no de-duplication:
// invoking it twice duplicates the categories, matching the popup's
// semantics.
func ApplyCategoriesToAllSlots(f FormData, templates []TicketCategory) FormData {
	if len(templates) == 0 {
		return f.Clone()
	}

	out := f.Clone()

	for _, date := range out.SelectedDates {
		slots := out.TimeSlots[date]
		for i := range slots {
			for _, tpl := range templates {
				c := tpl
				c.ID = uuid.NewString()
				slots[i].SeatCategories = append(slots[i].SeatCategories, c)
			}
		}
	}

	return out
}
