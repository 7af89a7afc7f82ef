package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current instant. Services take it instead of calling
// time.Now so policy decisions are testable.
type Clock interface {
	Now() time.Time
}

// Module provides the system clock.
var Module = fx.Provide(NewSystemClock)

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
