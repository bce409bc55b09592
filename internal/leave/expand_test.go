package leave

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-timeoff/internal/schedule"
)

func weekdayCalendar(holidays ...time.Time) schedule.Resolved {
	s := &schedule.Schedule{
		ID:     uuid.New(),
		Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true,
	}
	hs := make([]schedule.BankHoliday, len(holidays))
	for i, d := range holidays {
		hs[i] = schedule.BankHoliday{ID: uuid.New(), Name: "holiday", Date: d}
	}
	return schedule.NewResolved(s, hs)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLeave(start, end time.Time, partStart, partEnd string) *Leave {
	return &Leave{
		ID:           uuid.New(),
		DateStart:    start,
		DateEnd:      end,
		DayPartStart: partStart,
		DayPartEnd:   partEnd,
	}
}

func TestExpand(t *testing.T) {
	cal := weekdayCalendar()

	t.Run("full working week yields five whole days", func(t *testing.T) {
		// 2025-06-02 is a Monday.
		l := testLeave(day(2025, 6, 2), day(2025, 6, 6), DayPartAllDay, DayPartAllDay)

		var units []DayUnit
		for u := range Expand(l, cal) {
			units = append(units, u)
		}

		assert.Len(t, units, 5)
		for _, u := range units {
			assert.True(t, u.Morning)
			assert.True(t, u.Afternoon)
		}
		assert.True(t, DeductedDays(l, cal).Equal(decimal.NewFromInt(5)))
	})

	t.Run("weekend days inside the range are skipped", func(t *testing.T) {
		// Thursday through Tuesday spans a weekend.
		l := testLeave(day(2025, 6, 5), day(2025, 6, 10), DayPartAllDay, DayPartAllDay)

		var dates []time.Time
		for u := range Expand(l, cal) {
			dates = append(dates, u.Date)
		}

		assert.Equal(t, []time.Time{
			day(2025, 6, 5), day(2025, 6, 6), day(2025, 6, 9), day(2025, 6, 10),
		}, dates)
	})

	t.Run("weekend-only range yields nothing", func(t *testing.T) {
		l := testLeave(day(2025, 6, 7), day(2025, 6, 8), DayPartAllDay, DayPartAllDay)

		count := 0
		for range Expand(l, cal) {
			count++
		}

		assert.Zero(t, count)
		assert.True(t, DeductedDays(l, cal).IsZero())
	})

	t.Run("first and last day carry their day parts", func(t *testing.T) {
		l := testLeave(day(2025, 6, 2), day(2025, 6, 4), DayPartAfternoon, DayPartMorning)

		var units []DayUnit
		for u := range Expand(l, cal) {
			units = append(units, u)
		}

		assert.Len(t, units, 3)
		assert.False(t, units[0].Morning)
		assert.True(t, units[0].Afternoon)
		assert.True(t, units[1].Morning)
		assert.True(t, units[1].Afternoon)
		assert.True(t, units[2].Morning)
		assert.False(t, units[2].Afternoon)
		assert.True(t, DeductedDays(l, cal).Equal(decimal.NewFromInt(2)))
	})

	t.Run("single day with conflicting halves collapses to the start half", func(t *testing.T) {
		l := testLeave(day(2025, 6, 2), day(2025, 6, 2), DayPartMorning, DayPartAfternoon)

		var units []DayUnit
		for u := range Expand(l, cal) {
			units = append(units, u)
		}

		assert.Len(t, units, 1)
		assert.True(t, units[0].Morning)
		assert.False(t, units[0].Afternoon)
		assert.True(t, DeductedDays(l, cal).Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("single day all_day start defers to the end part", func(t *testing.T) {
		l := testLeave(day(2025, 6, 2), day(2025, 6, 2), DayPartAllDay, DayPartAfternoon)

		var units []DayUnit
		for u := range Expand(l, cal) {
			units = append(units, u)
		}

		assert.Len(t, units, 1)
		assert.False(t, units[0].Morning)
		assert.True(t, units[0].Afternoon)
	})

	t.Run("bank holiday drops the day entirely", func(t *testing.T) {
		withHoliday := weekdayCalendar(day(2025, 6, 3))
		l := testLeave(day(2025, 6, 2), day(2025, 6, 4), DayPartAllDay, DayPartAllDay)

		assert.True(t, DeductedDays(l, withHoliday).Equal(decimal.NewFromInt(2)))
	})
}

func TestDeductedDaysWithin(t *testing.T) {
	cal := weekdayCalendar()

	// 2025-12-29 (Mon) through 2026-01-02 (Fri) straddles the year boundary.
	l := testLeave(day(2025, 12, 29), day(2026, 1, 2), DayPartAllDay, DayPartAllDay)

	in2025 := DeductedDaysWithin(l, cal, day(2025, 1, 1), day(2025, 12, 31))
	in2026 := DeductedDaysWithin(l, cal, day(2026, 1, 1), day(2026, 12, 31))

	assert.True(t, in2025.Equal(decimal.NewFromInt(3)), "got %s", in2025)
	assert.True(t, in2026.Equal(decimal.NewFromInt(2)), "got %s", in2026)
	assert.True(t, in2025.Add(in2026).Equal(DeductedDays(l, cal)))
}
