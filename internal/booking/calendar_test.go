package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmorales/espacios-api/internal/booking"
	"github.com/lmorales/espacios-api/internal/domain"
)

// reservation builds a reservation on the given UTC date between the given
// hours, at space 1.
func reservation(id int64, year int, month time.Month, day, startHour, startMin, endHour, endMin int) domain.Reservation {
	return domain.Reservation{
		ID:        id,
		SpaceID:   1,
		Cedula:    "123",
		StartTime: time.Date(year, month, day, startHour, startMin, 0, 0, time.UTC),
		EndTime:   time.Date(year, month, day, endHour, endMin, 0, 0, time.UTC),
	}
}

// ---- BuildMonthGrid --------------------------------------------------------

func TestBuildMonthGrid_WholeWeeks(t *testing.T) {
	// Check a spread of anchors: months starting on every weekday, leap
	// February, and a 28-day month starting on Sunday (exactly 4 weeks).
	anchors := []time.Time{
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),  // June 2025 starts Sunday
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),   // Feb 2025, 28 days
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),  // leap February
		time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),  // August 2025 starts Friday
		time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), // December 2025 starts Monday
	}

	for _, anchor := range anchors {
		t.Run(anchor.Format("2006-01"), func(t *testing.T) {
			days := booking.BuildMonthGrid(anchor, nil)

			require.NotEmpty(t, days)
			assert.Zero(t, len(days)%7, "grid length %d is not whole weeks", len(days))
			assert.Equal(t, time.Sunday, days[0].Date.Weekday())
			assert.Equal(t, time.Saturday, days[len(days)-1].Date.Weekday())
		})
	}
}

func TestBuildMonthGrid_CurrentMonthFlags(t *testing.T) {
	anchor := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	days := booking.BuildMonthGrid(anchor, nil)

	byDate := make(map[string]booking.CalendarDay, len(days))
	for _, d := range days {
		byDate[d.Date.Format("2006-01-02")] = d
	}

	// The 1st and last day of August are present and flagged current.
	first, ok := byDate["2025-08-01"]
	require.True(t, ok, "first of month missing from grid")
	assert.True(t, first.IsCurrentMonth)

	last, ok := byDate["2025-08-31"]
	require.True(t, ok, "last of month missing from grid")
	assert.True(t, last.IsCurrentMonth)

	// The immediately adjacent out-of-month days are flagged false.
	before, ok := byDate["2025-07-31"]
	require.True(t, ok, "leading day missing from grid")
	assert.False(t, before.IsCurrentMonth)

	after, ok := byDate["2025-09-01"]
	require.True(t, ok, "trailing day missing from grid")
	assert.False(t, after.IsCurrentMonth)
}

// TestBuildMonthGrid_ExactlyFourWeeks covers the rare month that needs no
// padding at all: February 2026 starts on a Sunday and ends on a Saturday.
func TestBuildMonthGrid_ExactlyFourWeeks(t *testing.T) {
	days := booking.BuildMonthGrid(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), nil)

	assert.Len(t, days, 28)
	for _, d := range days {
		assert.True(t, d.IsCurrentMonth, "day %s should belong to February", d.Date)
	}
}

// TestBuildMonthGrid_Bucketing verifies the round-trip property: each
// reservation lands in exactly one bucket, the one matching its start date,
// sorted ascending within the bucket.
func TestBuildMonthGrid_Bucketing(t *testing.T) {
	rs := []domain.Reservation{
		reservation(2, 2025, 6, 10, 14, 0, 15, 0),
		reservation(1, 2025, 6, 10, 9, 0, 10, 0),
		reservation(3, 2025, 6, 11, 9, 0, 10, 0),
	}

	days := booking.BuildMonthGrid(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), rs)

	var total int
	for _, d := range days {
		total += len(d.Reservations)
		switch d.Date.Day() {
		case 10:
			if d.Date.Month() == 6 {
				require.Len(t, d.Reservations, 2)
				assert.Equal(t, int64(1), d.Reservations[0].ID, "bucket must be sorted by start time")
				assert.Equal(t, int64(2), d.Reservations[1].ID)
			}
		case 11:
			if d.Date.Month() == 6 {
				require.Len(t, d.Reservations, 1)
				assert.Equal(t, int64(3), d.Reservations[0].ID)
			}
		}
	}
	assert.Equal(t, 3, total, "every reservation appears in exactly one bucket")
}

// TestBuildMonthGrid_LeadingDayReservation verifies reservations on padded
// out-of-month days are still bucketed — the grid shows them greyed out, not
// dropped.
func TestBuildMonthGrid_LeadingDayReservation(t *testing.T) {
	rs := []domain.Reservation{reservation(1, 2025, 7, 31, 9, 0, 10, 0)}

	days := booking.BuildMonthGrid(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), rs)

	var found bool
	for _, d := range days {
		if len(d.Reservations) > 0 {
			found = true
			assert.False(t, d.IsCurrentMonth)
			assert.Equal(t, 31, d.Date.Day())
		}
	}
	assert.True(t, found)
}

// ---- BuildWeekGrid ---------------------------------------------------------

func TestBuildWeekGrid_SevenDaysFromSunday(t *testing.T) {
	// Wednesday anchor.
	anchor := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	days := booking.BuildWeekGrid(anchor, nil)

	require.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Date.Weekday())
	assert.Equal(t, 1, days[0].Date.Day(), "week containing Jun 4 2025 starts Jun 1")
	for i, d := range days {
		assert.True(t, d.IsCurrentMonth, "week view never grays out days")
		assert.Equal(t, days[0].Date.AddDate(0, 0, i), d.Date, "days must be consecutive")
	}
}

func TestBuildWeekGrid_SundayAnchorIsItsOwnStart(t *testing.T) {
	anchor := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	days := booking.BuildWeekGrid(anchor, nil)

	require.Len(t, days, 7)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC), days[6].Date)
}

func TestBuildWeekGrid_Bucketing(t *testing.T) {
	rs := []domain.Reservation{
		reservation(1, 2025, 6, 3, 9, 0, 10, 0),
		reservation(2, 2025, 6, 3, 8, 0, 8, 45),
		reservation(3, 2025, 6, 20, 9, 0, 10, 0), // outside the week, dropped
	}

	days := booking.BuildWeekGrid(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), rs)

	require.Len(t, days[2].Reservations, 2, "Tuesday bucket")
	assert.Equal(t, int64(2), days[2].Reservations[0].ID)
	assert.Equal(t, int64(1), days[2].Reservations[1].ID)

	var total int
	for _, d := range days {
		total += len(d.Reservations)
	}
	assert.Equal(t, 2, total)
}

// ---- Place -----------------------------------------------------------------

func TestPlace_BandStart(t *testing.T) {
	p := booking.Place(reservation(1, 2025, 6, 2, 8, 0, 9, 0))

	assert.Equal(t, 0, p.Top)
	assert.Equal(t, 60, p.Height)
}

func TestPlace_MinuteOffsets(t *testing.T) {
	p := booking.Place(reservation(1, 2025, 6, 2, 10, 15, 11, 45))

	assert.Equal(t, (10-8)*60+15, p.Top)
	assert.Equal(t, 90, p.Height)
}

// TestPlace_Linearity pins the proportionality contract: doubling duration
// doubles height, shifting the start by an hour shifts top by 60 units.
func TestPlace_Linearity(t *testing.T) {
	base := booking.Place(reservation(1, 2025, 6, 2, 9, 0, 10, 0))
	doubled := booking.Place(reservation(2, 2025, 6, 2, 9, 0, 11, 0))
	shifted := booking.Place(reservation(3, 2025, 6, 2, 10, 0, 11, 0))

	assert.Equal(t, 2*base.Height, doubled.Height)
	assert.Equal(t, base.Top+60, shifted.Top)
}

// TestPlace_OutsideBandNotClamped pins the accepted edge case: starts before
// 08:00 render at a negative offset, no correction applied.
func TestPlace_OutsideBandNotClamped(t *testing.T) {
	p := booking.Place(reservation(1, 2025, 6, 2, 7, 0, 8, 0))

	assert.Equal(t, -60, p.Top)
	assert.Equal(t, 60, p.Height)
}

// ---- navigation ------------------------------------------------------------

func TestNextMonth_PinsDayOne(t *testing.T) {
	// Jan 31 + 1 month must land on Feb 1, not skip to March.
	got := booking.NextMonth(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPrevMonth_AllowedWhenRangeTouchesToday(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	got := booking.PrevMonth(anchor, today)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPrevMonth_NoOpBelowToday(t *testing.T) {
	today := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// May 2025 lies entirely before June 15: navigation stays put.
	got := booking.PrevMonth(anchor, today)

	assert.Equal(t, anchor, got)
}

func TestNextWeek_AddsSevenDays(t *testing.T) {
	anchor := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, anchor.AddDate(0, 0, 7), booking.NextWeek(anchor))
}

func TestPrevWeek_AllowedWhenWeekTouchesToday(t *testing.T) {
	// Today is Wednesday Jun 4; anchor in the following week. The previous
	// week (Jun 1–7) still contains today, so the move is allowed.
	today := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	got := booking.PrevWeek(anchor, today)

	assert.Equal(t, anchor.AddDate(0, 0, -7), got)
}

func TestPrevWeek_NoOpBelowToday(t *testing.T) {
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	// The candidate week Jun 1–7 ends before Jun 10: stay put.
	got := booking.PrevWeek(anchor, today)

	assert.Equal(t, anchor, got)
}
