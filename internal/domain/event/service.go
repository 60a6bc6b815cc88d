package event

import "time"

type Service struct {
	details Details
	now     func() time.Time
}

func NewService(details Details) *Service {
	return &Service{details: details, now: time.Now}
}

func (s *Service) Details() Details {
	return s.details
}

func (s *Service) Countdown() Countdown {
	return CountdownAt(s.details.StartsAt, s.now())
}

// CountdownAt truncates to whole seconds and reports Started once now reaches startsAt.
func CountdownAt(startsAt, now time.Time) Countdown {
	remaining := startsAt.Sub(now)
	if remaining <= 0 {
		return Countdown{Started: true}
	}

	total := int64(remaining / time.Second)
	return Countdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}
