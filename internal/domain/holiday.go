package domain

import "time"

// Holiday is a non-working day shaded on the tick row.
type Holiday struct {
	Day  time.Time
	Name string
}
