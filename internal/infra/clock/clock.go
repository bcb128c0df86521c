// Package clock provides the wall clock used outside tests.
package clock

import (
	"time"

	"notes/internal/domain/service"
)

type systemClock struct{}

// New returns a clock reading UTC wall time.
func New() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
