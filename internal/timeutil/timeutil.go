package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DatesBetween returns every calendar date from start to end inclusive,
// as "YYYY-MM-DD" strings. start == end yields a single element.
// start > end or malformed input yields an empty slice, never an error.
func DatesBetween(start, end string) []string {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil
	}

	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil
	}

	if from.After(to) {
		return nil
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}

	return dates
}

// Minutes parses a 24-hour "HH:MM" string into minutes since midnight.
func Minutes(hm string) (int, bool) {
	h, m, ok := splitHM(hm)
	if !ok {
		return 0, false
	}

	return h*60 + m, true
}

func splitHM(hm string) (int, int, bool) {
	hs, ms, found := strings.Cut(hm, ":")
	if !found {
		return 0, 0, false
	}

	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}

	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}

	return h, m, true
}

// Duration renders the gap between two "HH:MM" times on the same day as a
// compact human string: "2h", "45m", "1h 30m". Returns "" when either time
// is missing, malformed, or end <= start. Slots crossing midnight are not
// supported.
func Duration(startHM, endHM string) string {
	startMin, ok := Minutes(startHM)
	if !ok {
		return ""
	}

	endMin, ok := Minutes(endHM)
	if !ok {
		return ""
	}

	if endMin <= startMin {
		return ""
	}

	total := endMin - startMin
	h := total / 60
	m := total % 60

	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// To12Hour converts "13:05" to "1:05 PM". Malformed input returns "".
func To12Hour(hm string) string {
	h, m, ok := splitHM(hm)
	if !ok {
		return ""
	}

	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// To24Hour converts "1:05 PM" back to "13:05". Malformed input returns "".
func To24Hour(s string) string {
	s = strings.TrimSpace(s)

	clock, period, found := strings.Cut(s, " ")
	if !found {
		return ""
	}

	period = strings.ToUpper(strings.TrimSpace(period))
	if period != "AM" && period != "PM" {
		return ""
	}

	hs, ms, found := strings.Cut(clock, ":")
	if !found {
		return ""
	}

	h, err := strconv.Atoi(hs)
	if err != nil || h < 1 || h > 12 {
		return ""
	}

	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 {
		return ""
	}

	if period == "AM" {
		if h == 12 {
			h = 0
		}
	} else if h != 12 {
		h += 12
	}

	return fmt.Sprintf("%02d:%02d", h, m)
}

// LongDuration is the spelled-out form of Duration used on the wire:
// "2 hours", "1 hour 30 minutes". Same "" contract as Duration.
func LongDuration(startHM, endHM string) string {
	startMin, ok := Minutes(startHM)
	if !ok {
		return ""
	}

	endMin, ok := Minutes(endHM)
	if !ok {
		return ""
	}

	if endMin <= startMin {
		return ""
	}

	return SpellMinutes(endMin - startMin)
}

// SpellMinutes renders a positive minute count in long form.
func SpellMinutes(total int) string {
	if total <= 0 {
		return ""
	}

	h := total / 60
	m := total % 60

	var parts []string
	if h == 1 {
		parts = append(parts, "1 hour")
	} else if h > 1 {
		parts = append(parts, fmt.Sprintf("%d hours", h))
	}

	if m == 1 {
		parts = append(parts, "1 minute")
	} else if m > 1 {
		parts = append(parts, fmt.Sprintf("%d minutes", m))
	}

	return strings.Join(parts, " ")
}

// ParseLongDuration inverts SpellMinutes ("1 hour 30 minutes" -> 90).
// Used when loading existing slots back off the wire. Unrecognized input
// yields 0.
func ParseLongDuration(s string) int {
	fields := strings.Fields(strings.ToLower(s))
	total := 0

	for i := 0; i+1 < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return 0
		}

		unit := strings.TrimSuffix(fields[i+1], "s")

		switch unit {
		case "hour", "hr":
			total += n * 60
		case "minute", "min":
			total += n
		default:
			return 0
		}
	}

	return total
}

// AddMinutes offsets a "HH:MM" time forward, clamped to the same day.
func AddMinutes(hm string, mins int) string {
	start, ok := Minutes(hm)
	if !ok {
		return ""
	}

	end := start + mins
	if end > 23*60+59 {
		end = 23*60 + 59
	}

	return fmt.Sprintf("%02d:%02d", end/60, end%60)
}
