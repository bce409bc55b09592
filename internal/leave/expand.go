package leave

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"go-timeoff/internal/schedule"
)

// DayUnit is one calendar day of a leave, split into halves. A unit with
// only one half set weighs 0.5 days.
type DayUnit struct {
	Date      time.Time
	Morning   bool
	Afternoon bool
}

var (
	weightFull = decimal.NewFromInt(1)
	weightHalf = decimal.NewFromFloat(0.5)
)

func (u DayUnit) Weight() decimal.Decimal {
	if u.Morning && u.Afternoon {
		return weightFull
	}
	if u.Morning || u.Afternoon {
		return weightHalf
	}
	return decimal.Zero
}

func halves(part string) (morning, afternoon bool) {
	switch part {
	case DayPartMorning:
		return true, false
	case DayPartAfternoon:
		return false, true
	default:
		return true, true
	}
}

// Expand yields one DayUnit per working day covered by the leave, in date
// order. Non-working days are skipped entirely. The first day carries the
// start day part, the last the end day part, and days in between are full.
// A single-day leave whose start and end parts name different halves
// collapses to the start's half.
func Expand(l *Leave, cal schedule.Resolved) iter.Seq[DayUnit] {
	return func(yield func(DayUnit) bool) {
		start := truncateToDay(l.DateStart)
		end := truncateToDay(l.DateEnd)

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !cal.IsWorkingDay(d) {
				continue
			}

			unit := DayUnit{Date: d, Morning: true, Afternoon: true}
			first := d.Equal(start)
			last := d.Equal(end)

			switch {
			case first && last:
				if l.DayPartStart != DayPartAllDay {
					unit.Morning, unit.Afternoon = halves(l.DayPartStart)
				} else if l.DayPartEnd != DayPartAllDay {
					unit.Morning, unit.Afternoon = halves(l.DayPartEnd)
				}
			case first:
				unit.Morning, unit.Afternoon = halves(l.DayPartStart)
			case last:
				unit.Morning, unit.Afternoon = halves(l.DayPartEnd)
			}

			if !yield(unit) {
				return
			}
		}
	}
}

// DeductedDays is the total day weight of a leave against the employee's
// work calendar.
func DeductedDays(l *Leave, cal schedule.Resolved) decimal.Decimal {
	total := decimal.Zero
	for unit := range Expand(l, cal) {
		total = total.Add(unit.Weight())
	}
	return total
}

// DeductedDaysWithin counts only the day units that fall inside [from, to],
// both inclusive. Used for leaves straddling a year boundary.
func DeductedDaysWithin(l *Leave, cal schedule.Resolved, from, to time.Time) decimal.Decimal {
	from = truncateToDay(from)
	to = truncateToDay(to)
	total := decimal.Zero
	for unit := range Expand(l, cal) {
		if unit.Date.Before(from) || unit.Date.After(to) {
			continue
		}
		total = total.Add(unit.Weight())
	}
	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
