package wizard

// TicketCategory is one seat class inside a time slot. Price and Quantity
// are expected to be >= 0; revenue (price * quantity) is derived on demand
// and never stored.
type TicketCategory struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// TimeSlot holds a start/end pair as 24-hour "HH:MM" strings. Duration is
// derived and recomputed whenever either time changes; it stays "" while the
// pair is incomplete or reversed.
type TimeSlot struct {
	StartTime      string           `json:"startTime"`
	EndTime        string           `json:"endTime"`
	Duration       string           `json:"duration"`
	Capacity       int              `json:"capacity"`
	SeatCategories []TicketCategory `json:"seatCategories"`
}

// ImageRef points at an event image: either bytes uploaded into the session
// or a URL already stored upstream. Remote images are never re-uploaded.
type ImageRef struct {
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
	RemoteURL   string `json:"remoteUrl,omitempty"`
}

func (i ImageRef) Local() bool {
	return len(i.Data) > 0
}

func (i ImageRef) Empty() bool {
	return len(i.Data) == 0 && i.RemoteURL == ""
}

// FormData is the wizard's root aggregate. SelectedDates is always a subset
// of DatesBetween(StartDate, EndDate); TimeSlots keys for deselected dates
// are tolerated and not pruned, so reselecting a date resurrects its slots.
type FormData struct {
	Title             string `json:"title"`
	CategoryID        string `json:"categoryId"`
	SubcategoryID     string `json:"subcategoryId"`
	CustomSubcategory string `json:"customSubcategory"`
	EventTypeID       string `json:"eventTypeId"`

	OrganizerName    string `json:"organizerName"`
	OrganizerContact string `json:"organizerContact"`
	OrganizerEmail   string `json:"organizerEmail"`

	Description    string `json:"description"`
	AddressLine    string `json:"addressLine"`
	AddressCity    string `json:"addressCity"`
	AddressState   string `json:"addressState"`
	AddressPincode string `json:"addressPincode"`
	EventDuration  string `json:"eventDuration"`
	Language       string `json:"language"`
	AgeRestriction string `json:"ageRestriction"`
	AdditionalInfo string `json:"additionalInfo"`
	HashtagsRaw    string `json:"hashtags"`

	CardImage     ImageRef   `json:"cardImage"`
	BannerImage   ImageRef   `json:"bannerImage"`
	GalleryImages []ImageRef `json:"galleryImages"`

	StartDate        string                `json:"startDate"`
	EndDate          string                `json:"endDate"`
	SelectedDates    []string              `json:"selectedDates"`
	TimeSlots        map[string][]TimeSlot `json:"timeSlots"`
	CustomCategories []string              `json:"customCategories"`
}

// Clone deep-copies the aggregate so transitions can hand back a fresh state
// tree with no slices or maps shared with the old one.
func (f FormData) Clone() FormData {
	out := f

	out.SelectedDates = append([]string(nil), f.SelectedDates...)
	out.CustomCategories = append([]string(nil), f.CustomCategories...)
	out.GalleryImages = append([]ImageRef(nil), f.GalleryImages...)
	out.TimeSlots = cloneTimeSlots(f.TimeSlots)

	return out
}

func cloneTimeSlots(in map[string][]TimeSlot) map[string][]TimeSlot {
	if in == nil {
		return nil
	}

	out := make(map[string][]TimeSlot, len(in))
	for date, slots := range in {
		out[date] = cloneSlotList(slots)
	}

	return out
}

func cloneSlotList(in []TimeSlot) []TimeSlot {
	out := make([]TimeSlot, len(in))
	for i, s := range in {
		out[i] = cloneSlot(s)
	}

	return out
}

func cloneSlot(s TimeSlot) TimeSlot {
	out := s
	out.SeatCategories = append([]TicketCategory(nil), s.SeatCategories...)

	return out
}

func (f FormData) slotsFor(date string) []TimeSlot {
	if f.TimeSlots == nil {
		return nil
	}

	return f.TimeSlots[date]
}

// HasSelected reports whether date is currently in the calendar selection.
func (f FormData) HasSelected(date string) bool {
	for _, d := range f.SelectedDates {
		if d == date {
			return true
		}
	}

	return false
}
