package upstream

import "encoding/json"

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	EventTypeID string `json:"event_type_id,omitempty"`
}

type EventType struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ExtraData arrives either as a JSON object or as a JSON-encoded string of
// that object, depending on which backend version wrote the row. Malformed
// content degrades to the zero value, never an error.
type ExtraData struct {
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

func (e *ExtraData) UnmarshalJSON(data []byte) error {
	type plain ExtraData

	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*e = ExtraData(obj)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &obj); err == nil {
			*e = ExtraData(obj)
		}
		// unparsable string content degrades to defaults
		return nil
	}

	*e = ExtraData{}
	return nil
}

// HashTags arrives as a JSON array or as a JSON-encoded string of one.
type HashTags []string

func (h *HashTags) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*h = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			*h = arr
			return nil
		}
	}

	*h = nil
	return nil
}

type EventDetail struct {
	ID                string    `json:"event_id"`
	Title             string    `json:"event_title"`
	CategoryID        string    `json:"category_id"`
	SubcategoryID     string    `json:"subcategory_id"`
	CustomSubcategory string    `json:"custom_subcategory_name"`
	EventType         string    `json:"event_type"`
	ExtraData         ExtraData `json:"extra_data"`
	HashTags          HashTags  `json:"hash_tags"`
	CardImage         string    `json:"card_image"`
	BannerImage       string    `json:"banner_image"`
	ExtraImages       []string  `json:"event_extra_images"`
	EventDates        []string  `json:"event_dates"`
}

type SlotSeatCategory struct {
	SeatCategoryID string  `json:"seat_category_id"`
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	TotalTickets   int     `json:"totalTickets"`
}

type SlotRecord struct {
	Time           string             `json:"time"`     // "hh:mm AM/PM"
	Duration       string             `json:"duration"` // "<N> hour(s) <N> minute(s)"
	SeatCategories []SlotSeatCategory `json:"seatCategories"`
}

type SlotBundle struct {
	EventDates []string                `json:"event_dates"`
	SlotData   map[string][]SlotRecord `json:"slot_data"`
}
