package payload

import (
	"github.com/shopspring/decimal"
	"github.com/ticketlane/eventwizard/internal/wizard"
)

// DateSummary aggregates one selected date for the review step.
type DateSummary struct {
	Date       string          `json:"date"`
	Slots      int             `json:"slots"`
	Seats      int             `json:"seats"`
	Revenue    decimal.Decimal `json:"revenue"`
	Categories int             `json:"categories"`
}

// Summary is the review-step rollup. Revenue is price x quantity summed with
// decimal arithmetic; it is derived here and never stored on the form.
type Summary struct {
	Dates        []DateSummary   `json:"dates"`
	TotalSlots   int             `json:"totalSlots"`
	TotalSeats   int             `json:"totalSeats"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

func Summarize(f wizard.FormData) Summary {
	out := Summary{TotalRevenue: decimal.Zero}

	for _, date := range f.SelectedDates {
		ds := DateSummary{Date: date, Revenue: decimal.Zero}

		for _, slot := range f.TimeSlots[date] {
			ds.Slots++
			for _, c := range slot.SeatCategories {
				ds.Categories++
				ds.Seats += c.Quantity
				ds.Revenue = ds.Revenue.Add(
					decimal.NewFromFloat(c.Price).Mul(decimal.NewFromInt(int64(c.Quantity))),
				)
			}
		}

		out.Dates = append(out.Dates, ds)
		out.TotalSlots += ds.Slots
		out.TotalSeats += ds.Seats
		out.TotalRevenue = out.TotalRevenue.Add(ds.Revenue)
	}

	return out
}
