package event

import "time"

type Details struct {
	Title        string
	Hosts        []string
	StartsAt     time.Time
	VenueName    string
	VenueAddress string
}

// Countdown is the time left until the event starts, split into display units.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Started bool
}
