package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent      Status = "PRESENT"
	StatusAbsent       Status = "ABSENT"
	StatusLate         Status = "LATE"
	StatusEarlyLeave   Status = "EARLY_LEAVE"
	StatusHalfDay      Status = "HALF_DAY"
	StatusOnLeave      Status = "ON_LEAVE"
	StatusHoliday      Status = "HOLIDAY"
	StatusWorkFromHome Status = "WFH"

	// StatusNotCheckedIn is a synthetic label for the today-status view when
	// no record exists yet. It is never persisted.
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
)

// TimeOfDay is seconds since midnight in the organization timezone. All
// shift comparisons happen on this type, never on full instants, because a
// workday never crosses midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayOf projects an instant onto its local clock face. The caller is
// responsible for handing in a time already in the organization location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// HoursBetween returns the span from from to to in fractional hours,
// clamped to zero so clock skew can never yield negative hours.
func HoursBetween(from, to TimeOfDay) decimal.Decimal {
	secs := int(to) - int(from)
	if secs < 0 {
		secs = 0
	}
	return decimal.NewFromInt(int64(secs)).
		Div(decimal.NewFromInt(3600)).
		Round(6)
}

// Policy holds the standard shift boundaries and the grace period. The grace
// window applies to lateness on check-in and earliness on check-out; it does
// NOT move the overtime boundary, which starts strictly at shift end. That
// asymmetry mirrors the organization's existing rules.
type Policy struct {
	ShiftStart TimeOfDay
	ShiftEnd   TimeOfDay
	Grace      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		ShiftStart: NewTimeOfDay(8, 0, 0),
		ShiftEnd:   NewTimeOfDay(17, 0, 0),
		Grace:      15 * time.Minute,
	}
}

// IsLate reports whether a check-in is past shift start plus grace.
// Checking in at exactly 08:15:00 is still on time.
func (p Policy) IsLate(checkIn TimeOfDay) bool {
	return checkIn.After(p.ShiftStart.Add(p.Grace))
}

// IsEarlyLeave reports whether a check-out is before shift end minus grace.
func (p Policy) IsEarlyLeave(checkOut TimeOfDay) bool {
	return checkOut.Before(p.ShiftEnd.Add(-p.Grace))
}

// OvertimeHours is the span past shift end, zero at or before it. No grace
// on this side.
func (p Policy) OvertimeHours(checkOut TimeOfDay) decimal.Decimal {
	if !checkOut.After(p.ShiftEnd) {
		return decimal.Zero
	}
	return HoursBetween(p.ShiftEnd, checkOut)
}

// LateMinutes counts minutes past shift start, ignoring grace. Deductions
// are measured from the boundary itself, the grace window only suppresses
// the LATE status.
func (p Policy) LateMinutes(checkIn TimeOfDay) int {
	if !checkIn.After(p.ShiftStart) {
		return 0
	}
	return (int(checkIn) - int(p.ShiftStart) + 59) / 60
}

func (p Policy) EarlyLeaveMinutes(checkOut TimeOfDay) int {
	if !checkOut.Before(p.ShiftEnd) {
		return 0
	}
	return (int(p.ShiftEnd) - int(checkOut) + 59) / 60
}

// DeriveStatus is the whole state machine: a pure function of the existing
// status, the recorded times and the shift boundaries. It is evaluated and
// persisted at write time, never re-derived on read.
//
// Calendar statuses (ON_LEAVE, HOLIDAY, WFH) stick: a check-in on a day
// already marked as one of those does not demote it to PRESENT.
func (p Policy) DeriveStatus(existing Status, checkIn, checkOut *TimeOfDay) Status {
	switch existing {
	case StatusOnLeave, StatusHoliday, StatusWorkFromHome:
		return existing
	}
	if checkIn == nil {
		return existing
	}

	status := StatusPresent
	if p.IsLate(*checkIn) {
		status = StatusLate
	}

	if checkOut != nil && p.IsEarlyLeave(*checkOut) {
		if status == StatusLate {
			return StatusHalfDay
		}
		return StatusEarlyLeave
	}
	return status
}
