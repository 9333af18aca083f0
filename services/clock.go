package services

import "time"

// Clock fixes "now" and the reference location for day boundaries.
type Clock struct {
	Location *time.Location
	NowFunc  func() time.Time
}

func (c Clock) Now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc().UTC()
	}
	return time.Now().UTC()
}

func (c Clock) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
