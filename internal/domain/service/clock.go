package service

import "time"

// Clock supplies the current time. Token expiry decisions read it, so tests swap it out.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
