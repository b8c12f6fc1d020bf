package types

import "time"

// Clock abstracts the process clock so time-based logic (expiration matching,
// grace-window math) stays deterministic under test. All timestamps produced
// through a Clock are in UTC.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock returns a Clock backed by the system clock.
func NewRealClock() Clock {
	return realClock{}
}
