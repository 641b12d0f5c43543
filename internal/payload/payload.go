package payload

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ticketlane/eventwizard/internal/timeutil"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

// SeatCategory is the creation shape the slots backend expects. Booked and
// held counters are always reset to zero: this is a creation payload, not an
// update-in-place of live counters.
type SeatCategory struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	TotalTickets int     `json:"totalTickets"`
	Booked       int     `json:"booked"`
	Held         int     `json:"held"`
	Available    int     `json:"available"`
}

type SlotEntry struct {
	Time           string         `json:"time"`
	Duration       string         `json:"duration"`
	SeatCategories []SeatCategory `json:"seatCategories"`
}

type SlotPayload struct {
	EventID    string                 `json:"event_id"`
	EventDates []string               `json:"event_dates"`
	SlotData   map[string][]SlotEntry `json:"slot_data"`
}

// extraData is the blob stored in the backend's extra_data column, sent as
// one JSON-encoded string field.
type extraData struct {
	Address        string `json:"address"`
	Description    string `json:"description"`
	Organizer      string `json:"organizer"`
	Contact        string `json:"contact"`
	Email          string `json:"email"`
	Duration       string `json:"duration"`
	Language       string `json:"language"`
	AgeRestriction string `json:"ageRestriction"`
	AdditionalInfo string `json:"additionalInfo"`
}

// ExtraData serializes the free-text, organizer and address fields. The
// address is assembled from its four sub-fields joined by ", ", empty parts
// skipped.
func ExtraData(f wizard.FormData) (string, error) {
	var parts []string
	for _, p := range []string{f.AddressLine, f.AddressCity, f.AddressState, f.AddressPincode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}

	b, err := json.Marshal(extraData{
		Address:        strings.Join(parts, ", "),
		Description:    f.Description,
		Organizer:      f.OrganizerName,
		Contact:        f.OrganizerContact,
		Email:          f.OrganizerEmail,
		Duration:       f.EventDuration,
		Language:       f.Language,
		AgeRestriction: f.AgeRestriction,
		AdditionalInfo: f.AdditionalInfo,
	})
	if err != nil {
		return "", fmt.Errorf("marshal extra data: %w", err)
	}

	return string(b), nil
}

// Hashtags parses a comma-separated tag string into a JSON array of strings,
// each normalized to start with "#". Whitespace-only input yields "[]".
func Hashtags(raw string) string {
	tags := []string{}

	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		tags = append(tags, t)
	}

	b, _ := json.Marshal(tags)

	return string(b)
}

// Slug derives the url slug from a title: lowercase, runs of anything
// non-alphanumeric collapsed to single dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// categoryWireID builds the backend's synthesized category id:
// "<name>_<HHMM>_<n>" with the name lowercased and dashed, HHMM from the
// slot's start time and n the 1-based position inside the slot.
func categoryWireID(name, startHM string, n int) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	hhmm := strings.ReplaceAll(startHM, ":", "")

	return fmt.Sprintf("%s_%s_%d", base, hhmm, n)
}

// BuildSlotPayload flattens the form's slots into the backend's
// date -> slot -> category shape. Only currently selected dates are emitted,
// so stale slot entries for deselected dates never reach the wire. Times go
// out in 12-hour form, durations spelled out long-form.
func BuildSlotPayload(eventID string, f wizard.FormData) SlotPayload {
	p := SlotPayload{
		EventID:    eventID,
		EventDates: append([]string(nil), f.SelectedDates...),
		SlotData:   make(map[string][]SlotEntry, len(f.SelectedDates)),
	}

	for _, date := range f.SelectedDates {
		slots := f.TimeSlots[date]
		entries := make([]SlotEntry, 0, len(slots))

		for _, slot := range slots {
			entry := SlotEntry{
				Time:           timeutil.To12Hour(slot.StartTime),
				Duration:       timeutil.LongDuration(slot.StartTime, slot.EndTime),
				SeatCategories: make([]SeatCategory, 0, len(slot.SeatCategories)),
			}

			for i, c := range slot.SeatCategories {
				entry.SeatCategories = append(entry.SeatCategories, SeatCategory{
					ID:           categoryWireID(c.Name, slot.StartTime, i+1),
					Label:        c.Name,
					Price:        c.Price,
					TotalTickets: c.Quantity,
					Booked:       0,
					Held:         0,
					Available:    c.Quantity,
				})
			}

			entries = append(entries, entry)
		}

		p.SlotData[date] = entries
	}

	return p
}
