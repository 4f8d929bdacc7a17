package render

import "time"

// DefaultPeriod is the time taken by one full turn of an animated scene.
const DefaultPeriod = 10 * time.Second

// Clock supplies wall-clock time to a Session.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Angle maps elapsed time onto a looping rotation:
//
//	(elapsed mod period) / period × 360
//
// The result is in [0, 360).  A non-positive period yields 0.
func Angle(elapsedMillis, periodMillis int64) float32 {
	if periodMillis <= 0 {
		return 0
	}
	e := elapsedMillis % periodMillis
	if e < 0 {
		e += periodMillis
	}
	return float32(e) / float32(periodMillis) * 360
}
