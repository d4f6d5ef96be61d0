package model

import (
	"math"
	"time"
)

const (
	DefaultNoticeDays = 30
	MinNoticeDays     = 1
	MaxNoticeDays     = 365

	hoursPerDay = 24
)

// Notice is the vacate notice of an occupant. Its expiry is derived and never stored.
type Notice struct {
	SubmittedDate time.Time
	PeriodDays    int
}

func (n Notice) ExpireDate() time.Time {
	return n.SubmittedDate.AddDate(0, 0, n.PeriodDays)
}

func (n Notice) InNotice(now time.Time) bool {
	return now.Before(n.ExpireDate())
}

func (n Notice) DaysRemaining(now time.Time) int {
	return DaysUntil(n.ExpireDate(), now)
}

// DaysUntil rounds partial days up and never goes below zero.
func DaysUntil(deadline, now time.Time) int {
	left := deadline.Sub(now)
	if left <= 0 {
		return 0
	}

	return int(math.Ceil(left.Hours() / hoursPerDay))
}
