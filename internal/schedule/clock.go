package schedule

import "time"

// Clock supplies the current instant. Evaluation captures a single instant per
// pass, so tests can substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
