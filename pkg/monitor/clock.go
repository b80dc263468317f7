package monitor

import "time"

// Clock supplies the timestamp for each sample.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

// Now returns time.Now, which carries a monotonic reading.
func (wallClock) Now() time.Time { return time.Now() }

// WallClock is the default Clock.
var WallClock Clock = wallClock{}
