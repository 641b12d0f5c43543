package wizard

import "errors"

var (
	ErrInvalidMode      = errors.New("invalid wizard mode")
	ErrSlotIndex        = errors.New("time slot index out of range")
	ErrCategoryIndex    = errors.New("ticket category index out of range")
	ErrUnknownField     = errors.New("unknown field")
	ErrBadFieldValue    = errors.New("bad field value")
	ErrSlotsLocked      = errors.New("slots are read-only in this mode")
	ErrMetadataLocked   = errors.New("event metadata is read-only in this mode")
	ErrDateOutOfRange   = errors.New("selected date outside the calendar bounds")
	ErrStepInvalid      = errors.New("current step is incomplete")
	ErrStepOutOfBounds  = errors.New("step outside this mode's sequence")
	ErrForwardJump      = errors.New("cannot jump forward past the current step")
	ErrEventIDRequired  = errors.New("event id required for edit modes")
)
