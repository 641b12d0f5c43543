package wizard

import "testing"

func completeForm() FormData {
	return FormData{
		Title:            "Summer Jazz Night",
		CategoryID:       "cat-1",
		SubcategoryID:    "sub-1",
		EventTypeID:      "type-1",
		Description:      "An evening of live jazz",
		OrganizerName:    "Blue Note Co",
		OrganizerContact: "9876543210",
		CardImage:        ImageRef{RemoteURL: "https://cdn/card.jpg"},
		StartDate:        "2025-07-01",
		EndDate:          "2025-07-02",
		SelectedDates:    []string{"2025-07-01", "2025-07-02"},
		TimeSlots: map[string][]TimeSlot{
			"2025-07-01": {{StartTime: "10:00", EndTime: "12:00", Duration: "2h"}},
			"2025-07-02": {{StartTime: "10:00", EndTime: "12:00", Duration: "2h"}},
		},
	}
}

func TestStepsFor(t *testing.T) {
	cases := []struct {
		mode Mode
		want []Step
	}{
		{ModeCreate, []Step{StepBasicInfo, StepDetails, StepImages, StepDates, StepSlots, StepReview}},
		{ModeEditEvent, []Step{StepBasicInfo, StepDetails, StepImages, StepReview}},
		{ModeEditSlots, []Step{StepDates, StepSlots, StepReview}},
	}

	for _, tc := range cases {
		got := StepsFor(tc.mode)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.mode, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: expected %v, got %v", tc.mode, tc.want, got)
			}
		}
	}
}

func TestIsStepValid_Dates(t *testing.T) {
	f := completeForm()

	if !IsStepValid(f, StepDates, ModeCreate) {
		t.Fatalf("expected step 4 valid with selected dates")
	}

	f.SelectedDates = nil
	if IsStepValid(f, StepDates, ModeCreate) {
		t.Fatalf("expected step 4 invalid with no selected dates")
	}
}

func TestIsStepValid_Slots(t *testing.T) {
	f := completeForm()
	if !IsStepValid(f, StepSlots, ModeCreate) {
		t.Fatalf("expected step 5 valid")
	}

	// a selected date with no slots
	f.SelectedDates = append(f.SelectedDates, "2025-07-03")
	if IsStepValid(f, StepSlots, ModeCreate) {
		t.Fatalf("expected step 5 invalid with slotless selected date")
	}

	// a slot missing its end time
	f = completeForm()
	f.TimeSlots["2025-07-02"] = append(f.TimeSlots["2025-07-02"], TimeSlot{StartTime: "14:00"})
	if IsStepValid(f, StepSlots, ModeCreate) {
		t.Fatalf("expected step 5 invalid with incomplete slot")
	}
}

func TestIsStepValid_BasicInfoCustomSubcategory(t *testing.T) {
	f := completeForm()
	f.SubcategoryID = "other"
	f.CustomSubcategory = ""

	if IsStepValid(f, StepBasicInfo, ModeCreate) {
		t.Fatalf(`expected invalid with subcategory "other" and no custom name`)
	}

	f.CustomSubcategory = "Open Mic"
	if !IsStepValid(f, StepBasicInfo, ModeCreate) {
		t.Fatalf("expected valid with custom name set")
	}
}

func TestIsStepValid_ImagesOnlyRequiredOnCreate(t *testing.T) {
	f := completeForm()
	f.CardImage = ImageRef{}

	if IsStepValid(f, StepImages, ModeCreate) {
		t.Fatalf("expected step 3 invalid without a card image in create mode")
	}

	if !IsStepValid(f, StepImages, ModeEditEvent) {
		t.Fatalf("expected step 3 valid in edit mode regardless of images")
	}
}

func TestNextStep_GatedByValidity(t *testing.T) {
	f := completeForm()
	f.SelectedDates = nil

	if _, err := NextStep(f, ModeCreate, StepDates); err != ErrStepInvalid {
		t.Fatalf("expected ErrStepInvalid, got %v", err)
	}

	f = completeForm()
	next, err := NextStep(f, ModeCreate, StepDates)
	if err != nil {
		t.Fatalf("NextStep: %v", err)
	}
	if next != StepSlots {
		t.Fatalf("expected StepSlots, got %v", next)
	}
}

func TestNextStep_StaysAtLast(t *testing.T) {
	f := completeForm()

	next, err := NextStep(f, ModeCreate, StepReview)
	if err != nil {
		t.Fatalf("NextStep at last step: %v", err)
	}
	if next != StepReview {
		t.Fatalf("expected to stay at review, got %v", next)
	}
}

func TestPrevStep_ClampedPerMode(t *testing.T) {
	if got := PrevStep(ModeCreate, StepBasicInfo); got != StepBasicInfo {
		t.Fatalf("create: expected clamp at step 1, got %v", got)
	}

	// edit-slots starts at step 4, back does not reach 1
	if got := PrevStep(ModeEditSlots, StepDates); got != StepDates {
		t.Fatalf("edit-slots: expected clamp at step 4, got %v", got)
	}
	if got := PrevStep(ModeEditSlots, StepSlots); got != StepDates {
		t.Fatalf("edit-slots: expected step 4, got %v", got)
	}

	// edit-event review steps back to images
	if got := PrevStep(ModeEditEvent, StepReview); got != StepImages {
		t.Fatalf("edit-event: expected step 3, got %v", got)
	}
}

func TestJumpStep(t *testing.T) {
	if _, err := JumpStep(ModeCreate, StepImages, StepSlots); err != ErrForwardJump {
		t.Fatalf("expected ErrForwardJump, got %v", err)
	}

	got, err := JumpStep(ModeCreate, StepSlots, StepDetails)
	if err != nil {
		t.Fatalf("JumpStep: %v", err)
	}
	if got != StepDetails {
		t.Fatalf("expected StepDetails, got %v", got)
	}

	// step 2 is not part of the edit-slots sequence
	if _, err := JumpStep(ModeEditSlots, StepSlots, StepDetails); err != ErrStepOutOfBounds {
		t.Fatalf("expected ErrStepOutOfBounds, got %v", err)
	}
}
