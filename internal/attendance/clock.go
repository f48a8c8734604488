package attendance

import (
	"os"
	"strconv"
	"time"
)

// Clock supplies "now" already shifted into the organization timezone.
// Substitutable so tests can pin the instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

const defaultTZOffsetHours = 7 // WIB

// OrgLocation resolves the organization timezone from ORG_TZ_OFFSET_HOURS,
// falling back to UTC+7. A fixed offset, not a named zone: the single-shift
// model has no DST concerns.
func OrgLocation() *time.Location {
	offset := defaultTZOffsetHours
	if v := os.Getenv("ORG_TZ_OFFSET_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	return time.FixedZone("ORG", offset*3600)
}

type fixedClock struct {
	t time.Time
}

// NewFixedClock returns a clock frozen at t, for tests.
func NewFixedClock(t time.Time) Clock {
	return &fixedClock{t: t}
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
