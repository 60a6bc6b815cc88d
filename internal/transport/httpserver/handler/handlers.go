package handler

import (
	"time"

	eventdomain "invite-app-go/internal/domain/event"
	guestsdomain "invite-app-go/internal/domain/guests"
	songsdomain "invite-app-go/internal/domain/songs"
	"invite-app-go/internal/metrics"
	"invite-app-go/pkg/logger"
)

type Handlers struct {
	Directory *guestsdomain.Directory
	Songs     *songsdomain.Service
	Event     *eventdomain.Service
	metrics   *metrics.Recorder
	location  *time.Location
	log       logger.Logger
}

// New wires the HTTP handlers. location is the zone used when timestamps are
// rendered for people (CSV export); JSON always carries RFC 3339 in UTC.
func New(directory *guestsdomain.Directory, songs *songsdomain.Service, event *eventdomain.Service, recorder *metrics.Recorder, location *time.Location, log logger.Logger) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		Directory: directory,
		Songs:     songs,
		Event:     event,
		metrics:   recorder,
		location:  location,
		log:       log,
	}
}
