// Package clock provides an injectable time source so time-dependent
// logic stays deterministic under test.
package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock yields the current instant. Implementations must return UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
