// Package service contains the business logic for the fulfillment service.
package service

import "time"

// DefaultTimezone is the IANA timezone used for store-hours checks when no
// timezone is configured. Store opening hours are interpreted in this zone,
// never in the host's local zone.
const DefaultTimezone = "America/Sao_Paulo"

// Clock supplies the current time for availability checks. Injecting it keeps
// the availability predicate pure and testable.
type Clock interface {
	Now() time.Time
}

// zoneClock is the production clock, pinned to a fixed IANA timezone.
type zoneClock struct {
	loc *time.Location
}

// NewZoneClock returns a clock that reports the current time in the given
// IANA timezone. An empty name selects DefaultTimezone.
func NewZoneClock(timezone string) (Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

// NewFixedClock returns a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{Time: t}
}

func (c *FixedClock) Now() time.Time {
	return c.Time
}
