package wizard

// Mode selects which step sequence and submission endpoints a session uses.
// It is fixed at session creation and never changes afterwards.
type Mode string

const (
	// ModeCreate walks all six steps and ends in a create submission.
	ModeCreate Mode = "create"
	// ModeEditEvent edits core metadata only; dates and slots stay untouched.
	ModeEditEvent Mode = "edit-event"
	// ModeEditSlots edits only dates, slots and categories of an existing event.
	ModeEditSlots Mode = "edit-slots"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeCreate, ModeEditEvent, ModeEditSlots:
		return true
	default:
		return false
	}
}

type Step int

const (
	StepBasicInfo Step = iota + 1
	StepDetails
	StepImages
	StepDates
	StepSlots
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic-info"
	case StepDetails:
		return "details"
	case StepImages:
		return "images"
	case StepDates:
		return "dates"
	case StepSlots:
		return "slots"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// StepsFor returns the ordered step sequence for a mode. Step ids are shared
// across modes so the same step components can be reused; the edit flows
// simply elide the steps they do not own. The metadata edit flow goes
// straight from images to review.
func StepsFor(m Mode) []Step {
	switch m {
	case ModeEditEvent:
		return []Step{StepBasicInfo, StepDetails, StepImages, StepReview}
	case ModeEditSlots:
		return []Step{StepDates, StepSlots, StepReview}
	default:
		return []Step{StepBasicInfo, StepDetails, StepImages, StepDates, StepSlots, StepReview}
	}
}

func FirstStep(m Mode) Step {
	return StepsFor(m)[0]
}

func stepPos(m Mode, s Step) int {
	for i, step := range StepsFor(m) {
		if step == s {
			return i
		}
	}

	return -1
}

// IsStepValid is the boolean gate behind the Next control. There is no
// separate error state: incomplete data just keeps the gate closed.
// Steps 1-3 validate the same way in every mode; 4 and 5 are the
// calendar/slot predicates.
func IsStepValid(f FormData, s Step, m Mode) bool {
	switch s {
	case StepBasicInfo:
		if f.Title == "" || f.CategoryID == "" || f.EventTypeID == "" {
			return false
		}
		if f.SubcategoryID == "other" && f.CustomSubcategory == "" {
			return false
		}
		return true

	case StepDetails:
		return f.Description != "" && f.OrganizerName != "" && f.OrganizerContact != ""

	case StepImages:
		// only the create flow insists on a card image; edit flows may keep
		// whatever the event already has
		if m != ModeCreate {
			return true
		}
		return !f.CardImage.Empty()

	case StepDates:
		return len(f.SelectedDates) > 0

	case StepSlots:
		if len(f.SelectedDates) == 0 {
			return false
		}
		for _, date := range f.SelectedDates {
			slots := f.slotsFor(date)
			if len(slots) == 0 {
				return false
			}
			for _, slot := range slots {
				if slot.StartTime == "" || slot.EndTime == "" || slot.Duration == "" {
					return false
				}
			}
		}
		return true

	case StepReview:
		return true

	default:
		return false
	}
}

// NextStep advances only when the current step's data is complete.
func NextStep(f FormData, m Mode, cur Step) (Step, error) {
	seq := StepsFor(m)
	pos := stepPos(m, cur)
	if pos < 0 {
		return cur, ErrStepOutOfBounds
	}
	if pos == len(seq)-1 {
		return cur, nil
	}
	if !IsStepValid(f, cur, m) {
		return cur, ErrStepInvalid
	}

	return seq[pos+1], nil
}

// PrevStep is always permitted, clamped at the sequence's first step.
func PrevStep(m Mode, cur Step) Step {
	pos := stepPos(m, cur)
	if pos <= 0 {
		return FirstStep(m)
	}

	return StepsFor(m)[pos-1]
}

// JumpStep follows the step-indicator rule: any step at or before the
// current one is reachable directly, skipping forward is not.
func JumpStep(m Mode, cur, target Step) (Step, error) {
	curPos := stepPos(m, cur)
	targetPos := stepPos(m, target)

	if curPos < 0 || targetPos < 0 {
		return cur, ErrStepOutOfBounds
	}
	if targetPos > curPos {
		return cur, ErrForwardJump
	}

	return target, nil
}
