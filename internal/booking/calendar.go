package booking

import (
	"sort"
	"time"

	"github.com/lmorales/espacios-api/internal/domain"
)

// The week timeline renders the fixed band 08:00–22:00, one row per hour,
// MinutesPerHour vertical units each. Placement is proportional to minutes;
// the literal unit (pixels, points) is the renderer's business.
const (
	TimelineStartHour = 8
	TimelineEndHour   = 22
	MinutesPerHour    = 60
)

// CalendarDay is one cell of a month or week grid: a calendar date with
// time-of-day zeroed, a flag telling the month view whether the cell belongs
// to the anchor month, and the day's reservations sorted by start time.
// Grids are rebuilt on every navigation and never persisted.
type CalendarDay struct {
	Date           time.Time            `json:"date"`
	IsCurrentMonth bool                 `json:"isCurrentMonth"`
	Reservations   []domain.Reservation `json:"reservations"`
}

// Placement is a reservation's vertical position on the hourly timeline.
type Placement struct {
	Top    int `json:"top"`
	Height int `json:"height"`
}

// BuildMonthGrid returns the day cells for the month containing anchor,
// padded backward to the most recent Sunday and forward to the closest
// Saturday so the result is always whole weeks (35 or 42 cells, typically).
// Leading and trailing cells from adjacent months carry IsCurrentMonth=false.
//
// Each reservation is bucketed into the single cell matching its start
// date, read in UTC, and each bucket is sorted by start time ascending.
func BuildMonthGrid(anchor time.Time, reservations []domain.Reservation) []CalendarDay {
	anchor = anchor.UTC()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, newCalendarDay(d, d.Month() == anchor.Month(), reservations))
	}
	return days
}

// BuildWeekGrid returns exactly 7 day cells, Sunday through Saturday, for the
// week containing anchor. The week view does not distinguish month
// membership, so IsCurrentMonth is true for every cell.
func BuildWeekGrid(anchor time.Time, reservations []domain.Reservation) []CalendarDay {
	anchor = anchor.UTC()
	start := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	days := make([]CalendarDay, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, newCalendarDay(start.AddDate(0, 0, i), true, reservations))
	}
	return days
}

// newCalendarDay buckets the reservations whose start date (in UTC) falls on
// date, sorted by start time ascending.
func newCalendarDay(date time.Time, isCurrentMonth bool, reservations []domain.Reservation) CalendarDay {
	var dayReservations []domain.Reservation
	for _, r := range reservations {
		s := r.StartTime.UTC()
		if s.Year() == date.Year() && s.Month() == date.Month() && s.Day() == date.Day() {
			dayReservations = append(dayReservations, r)
		}
	}
	sort.Slice(dayReservations, func(i, j int) bool {
		return dayReservations[i].StartTime.Before(dayReservations[j].StartTime)
	})

	return CalendarDay{
		Date:           date,
		IsCurrentMonth: isCurrentMonth,
		Reservations:   dayReservations,
	}
}

// Place computes a reservation's vertical offset and height on the hourly
// timeline. Both reads use UTC, the same representation the bucketing uses.
//
// Reservations starting before 08:00 or ending after 22:00 are not clamped:
// they produce offsets outside the visible band, which the renderer accepts
// as-is.
func Place(r domain.Reservation) Placement {
	start := r.StartTime.UTC()
	end := r.EndTime.UTC()

	startMinutes := start.Hour()*MinutesPerHour + start.Minute()
	endMinutes := end.Hour()*MinutesPerHour + end.Minute()

	return Placement{
		Top:    (start.Hour()-TimelineStartHour)*MinutesPerHour + start.Minute(),
		Height: endMinutes - startMinutes,
	}
}

// NextMonth advances the anchor by one whole month, pinning the day of month
// to 1 so month-length skew cannot skip a month.
func NextMonth(anchor time.Time) time.Time {
	anchor = anchor.UTC()
	return time.Date(anchor.Year(), anchor.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// PrevMonth retreats the anchor by one whole month, pinned to day 1.
// The move is a no-op when the previous month lies entirely before today:
// navigating below the current date is disallowed.
func PrevMonth(anchor, today time.Time) time.Time {
	anchor = anchor.UTC()
	prev := time.Date(anchor.Year(), anchor.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	lastOfPrev := prev.AddDate(0, 1, -1)
	if lastOfPrev.Before(startOfDay(today)) {
		return anchor
	}
	return prev
}

// NextWeek advances the anchor by exactly 7 days.
func NextWeek(anchor time.Time) time.Time {
	return anchor.UTC().AddDate(0, 0, 7)
}

// PrevWeek retreats the anchor by exactly 7 days, as a no-op when the
// candidate week ends before today.
func PrevWeek(anchor, today time.Time) time.Time {
	anchor = anchor.UTC()
	prev := anchor.AddDate(0, 0, -7)

	sunday := time.Date(prev.Year(), prev.Month(), prev.Day(), 0, 0, 0, 0, time.UTC)
	sunday = sunday.AddDate(0, 0, -int(sunday.Weekday()))
	saturday := sunday.AddDate(0, 0, 6)
	if saturday.Before(startOfDay(today)) {
		return anchor
	}
	return prev
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
