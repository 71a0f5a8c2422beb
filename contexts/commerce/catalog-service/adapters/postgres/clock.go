package postgresadapter

import "time"

// SystemClock satisfies ports.Clock for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
