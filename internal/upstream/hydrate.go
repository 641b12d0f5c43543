package upstream

import (
	"github.com/ticketlane/eventwizard/internal/timeutil"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

// HydrateForm rebuilds wizard form state from an existing event so edit
// sessions start from what is stored upstream. Slot times come back in
// 12-hour form with spelled-out durations; both are converted to the
// wizard's internal 24-hour representation. Unparsable slot data degrades
// to an incomplete slot instead of failing the whole hydration.
func HydrateForm(detail EventDetail, slots SlotBundle) wizard.FormData {
	f := wizard.FormData{
		Title:             detail.Title,
		CategoryID:        detail.CategoryID,
		SubcategoryID:     detail.SubcategoryID,
		CustomSubcategory: detail.CustomSubcategory,
		EventTypeID:       detail.EventType,

		OrganizerName:    detail.ExtraData.Organizer,
		OrganizerContact: detail.ExtraData.Contact,
		OrganizerEmail:   detail.ExtraData.Email,
		Description:      detail.ExtraData.Description,
		AddressLine:      detail.ExtraData.Address,
		EventDuration:    detail.ExtraData.Duration,
		Language:         detail.ExtraData.Language,
		AgeRestriction:   detail.ExtraData.AgeRestriction,
		AdditionalInfo:   detail.ExtraData.AdditionalInfo,
		HashtagsRaw:      joinTags(detail.HashTags),

		TimeSlots: make(map[string][]wizard.TimeSlot),
	}

	if detail.CardImage != "" {
		f.CardImage = wizard.ImageRef{RemoteURL: detail.CardImage}
	}
	if detail.BannerImage != "" {
		f.BannerImage = wizard.ImageRef{RemoteURL: detail.BannerImage}
	}
	for _, u := range detail.ExtraImages {
		f.GalleryImages = append(f.GalleryImages, wizard.ImageRef{RemoteURL: u})
	}

	dates := slots.EventDates
	if len(dates) == 0 {
		dates = detail.EventDates
	}

	f.SelectedDates = append([]string(nil), dates...)
	if len(dates) > 0 {
		f.StartDate = dates[0]
		f.EndDate = dates[len(dates)-1]
	}

	for date, records := range slots.SlotData {
		list := make([]wizard.TimeSlot, 0, len(records))
		for _, rec := range records {
			list = append(list, hydrateSlot(rec))
		}
		f.TimeSlots[date] = list
	}

	return f
}

func hydrateSlot(rec SlotRecord) wizard.TimeSlot {
	start := timeutil.To24Hour(rec.Time)
	end := ""

	if mins := timeutil.ParseLongDuration(rec.Duration); start != "" && mins > 0 {
		end = timeutil.AddMinutes(start, mins)
	}

	slot := wizard.TimeSlot{
		StartTime: start,
		EndTime:   end,
		Duration:  timeutil.Duration(start, end),
	}

	for _, c := range rec.SeatCategories {
		slot.SeatCategories = append(slot.SeatCategories, wizard.TicketCategory{
			ID:       c.SeatCategoryID,
			Name:     c.Label,
			Price:    c.Price,
			Quantity: c.TotalTickets,
		})
	}

	return slot
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}

	return out
}
