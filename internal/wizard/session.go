package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/ticketlane/eventwizard/internal/timeutil"
)

// Session is one operator's in-progress wizard run: mode, current step and
// the form aggregate. The operator id is injected at creation from the
// verified token and never read from ambient state.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Mode      Mode      `json:"mode"`
	EventID   string    `json:"eventId,omitempty"`
	Step      Step      `json:"step"`
	Form      FormData  `json:"form"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSession(userID string, mode Mode, eventID string) (*Session, error) {
	if !mode.IsValid() {
		return nil, ErrInvalidMode
	}

	if mode != ModeCreate && eventID == "" {
		return nil, ErrEventIDRequired
	}

	now := time.Now().UTC()

	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Mode:      mode,
		EventID:   eventID,
		Step:      FirstStep(mode),
		Form:      FormData{TimeSlots: make(map[string][]TimeSlot)},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns an independent copy, form state included.
func (s *Session) Clone() *Session {
	out := *s
	out.Form = s.Form.Clone()

	return &out
}

func (s *Session) slotsEditable() bool {
	return s.Mode != ModeEditEvent
}

func (s *Session) metadataEditable() bool {
	return s.Mode != ModeEditSlots
}

// MetadataPatch carries partial updates of the basic-info and details
// fields. Nil pointers mean "leave unchanged".
type MetadataPatch struct {
	Title             *string `json:"title"`
	CategoryID        *string `json:"categoryId"`
	SubcategoryID     *string `json:"subcategoryId"`
	CustomSubcategory *string `json:"customSubcategory"`
	EventTypeID       *string `json:"eventTypeId"`
	OrganizerName     *string `json:"organizerName"`
	OrganizerContact  *string `json:"organizerContact"`
	OrganizerEmail    *string `json:"organizerEmail" binding:"omitempty,email"`
	Description       *string `json:"description"`
	AddressLine       *string `json:"addressLine"`
	AddressCity       *string `json:"addressCity"`
	AddressState      *string `json:"addressState"`
	AddressPincode    *string `json:"addressPincode"`
	EventDuration     *string `json:"eventDuration"`
	Language          *string `json:"language"`
	AgeRestriction    *string `json:"ageRestriction"`
	AdditionalInfo    *string `json:"additionalInfo"`
	Hashtags          *string `json:"hashtags"`
}

func applyPatch(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// PatchMetadata updates the metadata fields. Rejected in slots-only mode.
func (s *Session) PatchMetadata(p MetadataPatch) error {
	if !s.metadataEditable() {
		return ErrMetadataLocked
	}

	form := s.Form.Clone()

	applyPatch(&form.Title, p.Title)
	applyPatch(&form.CategoryID, p.CategoryID)
	applyPatch(&form.SubcategoryID, p.SubcategoryID)
	applyPatch(&form.CustomSubcategory, p.CustomSubcategory)
	applyPatch(&form.EventTypeID, p.EventTypeID)
	applyPatch(&form.OrganizerName, p.OrganizerName)
	applyPatch(&form.OrganizerContact, p.OrganizerContact)
	applyPatch(&form.OrganizerEmail, p.OrganizerEmail)
	applyPatch(&form.Description, p.Description)
	applyPatch(&form.AddressLine, p.AddressLine)
	applyPatch(&form.AddressCity, p.AddressCity)
	applyPatch(&form.AddressState, p.AddressState)
	applyPatch(&form.AddressPincode, p.AddressPincode)
	applyPatch(&form.EventDuration, p.EventDuration)
	applyPatch(&form.Language, p.Language)
	applyPatch(&form.AgeRestriction, p.AgeRestriction)
	applyPatch(&form.AdditionalInfo, p.AdditionalInfo)
	applyPatch(&form.HashtagsRaw, p.Hashtags)

	s.Form = form
	s.touch()

	return nil
}

// SetDates replaces the calendar bounds and selection, enforcing that every
// selected date falls inside the bounds. Slot entries for dates dropped from
// the selection are kept as-is; reselecting the date later brings its slots
// back.
func (s *Session) SetDates(startDate, endDate string, selected []string) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	valid := make(map[string]struct{})
	for _, d := range timeutil.DatesBetween(startDate, endDate) {
		valid[d] = struct{}{}
	}

	for _, d := range selected {
		if _, ok := valid[d]; !ok {
			return ErrDateOutOfRange
		}
	}

	form := s.Form.Clone()
	form.StartDate = startDate
	form.EndDate = endDate
	form.SelectedDates = append([]string(nil), selected...)

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) SetImages(card, banner *ImageRef, gallery []ImageRef) error {
	if !s.metadataEditable() {
		return ErrMetadataLocked
	}

	form := s.Form.Clone()
	if card != nil {
		form.CardImage = *card
	}
	if banner != nil {
		form.BannerImage = *banner
	}
	if gallery != nil {
		form.GalleryImages = append([]ImageRef(nil), gallery...)
	}

	s.Form = form
	s.touch()

	return nil
}

// AddSlot appends an empty slot to a date. The date must be in the current
// selection: slot editors only exist for selected dates, so anything else is
// a stale or forged reference.
func (s *Session) AddSlot(date string) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	if !s.Form.HasSelected(date) {
		return ErrDateOutOfRange
	}

	s.Form = AddTimeSlot(s.Form, date)
	s.touch()

	return nil
}

func (s *Session) UpdateSlot(date string, index int, field SlotField, value string) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	form, err := UpdateTimeSlot(s.Form, date, index, field, value)
	if err != nil {
		return err
	}

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) RemoveSlot(date string, index int) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	form, err := RemoveTimeSlot(s.Form, date, index)
	if err != nil {
		return err
	}

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) AddCategory(date string, slotIndex int, c TicketCategory) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	form, err := AddTicketCategory(s.Form, date, slotIndex, c)
	if err != nil {
		return err
	}

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) UpdateCategory(date string, slotIndex, catIndex int, field CategoryField, value string) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	form, err := UpdateTicketCategory(s.Form, date, slotIndex, catIndex, field, value)
	if err != nil {
		return err
	}

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) RemoveCategory(date string, slotIndex, catIndex int) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	form, err := RemoveTicketCategory(s.Form, date, slotIndex, catIndex)
	if err != nil {
		return err
	}

	s.Form = form
	s.touch()

	return nil
}

func (s *Session) ApplySlotTemplate(tpl TimeSlot) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	s.Form = ApplySlotToAllDates(s.Form, tpl)
	s.touch()

	return nil
}

func (s *Session) ApplyCategoryTemplates(templates []TicketCategory) error {
	if !s.slotsEditable() {
		return ErrSlotsLocked
	}

	s.Form = ApplyCategoriesToAllSlots(s.Form, templates)
	s.touch()

	return nil
}

func (s *Session) Next() error {
	next, err := NextStep(s.Form, s.Mode, s.Step)
	if err != nil {
		return err
	}

	s.Step = next
	s.touch()

	return nil
}

func (s *Session) Prev() {
	s.Step = PrevStep(s.Mode, s.Step)
	s.touch()
}

func (s *Session) Goto(target Step) error {
	step, err := JumpStep(s.Mode, s.Step, target)
	if err != nil {
		return err
	}

	s.Step = step
	s.touch()

	return nil
}

// StepValid reports the gate for the session's current step.
func (s *Session) StepValid() bool {
	return IsStepValid(s.Form, s.Step, s.Mode)
}

// ReadyToSubmit requires every step of the sequence to be valid, not just
// the current one.
func (s *Session) ReadyToSubmit() bool {
	for _, step := range StepsFor(s.Mode) {
		if !IsStepValid(s.Form, step, s.Mode) {
			return false
		}
	}

	return true
}
