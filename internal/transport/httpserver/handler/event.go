package handler

import (
	"net/http"
	"time"
)

type eventResponse struct {
	Title     string            `json:"title"`
	Hosts     []string          `json:"hosts"`
	StartsAt  time.Time         `json:"starts_at"`
	Timezone  string            `json:"timezone"`
	Venue     venueResponse     `json:"venue"`
	Countdown countdownResponse `json:"countdown"`
}

type venueResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type countdownResponse struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Started bool `json:"started"`
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	details := h.Event.Details()
	countdown := h.Event.Countdown()

	hosts := details.Hosts
	if hosts == nil {
		hosts = []string{}
	}

	writeJSON(w, http.StatusOK, eventResponse{
		Title:    details.Title,
		Hosts:    hosts,
		StartsAt: details.StartsAt,
		Timezone: h.location.String(),
		Venue: venueResponse{
			Name:    details.VenueName,
			Address: details.VenueAddress,
		},
		Countdown: countdownResponse{
			Days:    countdown.Days,
			Hours:   countdown.Hours,
			Minutes: countdown.Minutes,
			Seconds: countdown.Seconds,
			Started: countdown.Started,
		},
	})
}
