package upstream

import "testing"

func TestHydrateForm(t *testing.T) {
	detail := EventDetail{
		ID:            "ev-1",
		Title:         "Jazz Night",
		CategoryID:    "c1",
		SubcategoryID: "s1",
		EventType:     "t1",
		ExtraData: ExtraData{
			Address:     "MG Road, Bengaluru",
			Description: "desc",
			Organizer:   "Blue Note",
			Contact:     "999",
		},
		HashTags:    HashTags{"#jazz", "#live"},
		CardImage:   "https://cdn/card.jpg",
		BannerImage: "https://cdn/banner.jpg",
		ExtraImages: []string{"https://cdn/g1.jpg"},
	}

	bundle := SlotBundle{
		EventDates: []string{"2025-07-01", "2025-07-02"},
		SlotData: map[string][]SlotRecord{
			"2025-07-01": {{
				Time:     "10:00 AM",
				Duration: "2 hours",
				SeatCategories: []SlotSeatCategory{
					{SeatCategoryID: "vip_1000_1", Label: "VIP", Price: 50, TotalTickets: 20},
				},
			}},
		},
	}

	f := HydrateForm(detail, bundle)

	if f.Title != "Jazz Night" || f.OrganizerName != "Blue Note" {
		t.Fatalf("metadata not hydrated: %+v", f)
	}
	if f.HashtagsRaw != "#jazz, #live" {
		t.Fatalf("hashtags raw wrong: %q", f.HashtagsRaw)
	}
	if f.CardImage.RemoteURL != "https://cdn/card.jpg" || f.CardImage.Local() {
		t.Fatalf("card image should be remote: %+v", f.CardImage)
	}
	if f.StartDate != "2025-07-01" || f.EndDate != "2025-07-02" {
		t.Fatalf("calendar bounds wrong: %s..%s", f.StartDate, f.EndDate)
	}

	slots := f.TimeSlots["2025-07-01"]
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].StartTime != "10:00" || slots[0].EndTime != "12:00" {
		t.Fatalf("slot times wrong: %+v", slots[0])
	}
	if slots[0].Duration != "2h" {
		t.Fatalf("expected compact duration 2h, got %q", slots[0].Duration)
	}
	if slots[0].SeatCategories[0].Quantity != 20 {
		t.Fatalf("category not hydrated: %+v", slots[0].SeatCategories[0])
	}
}

func TestHydrateForm_BadSlotDataDegrades(t *testing.T) {
	bundle := SlotBundle{
		EventDates: []string{"2025-07-01"},
		SlotData: map[string][]SlotRecord{
			"2025-07-01": {{Time: "sometime", Duration: "a while"}},
		},
	}

	f := HydrateForm(EventDetail{}, bundle)

	slot := f.TimeSlots["2025-07-01"][0]
	if slot.StartTime != "" || slot.EndTime != "" || slot.Duration != "" {
		t.Fatalf("expected incomplete slot from bad data, got %+v", slot)
	}
}
