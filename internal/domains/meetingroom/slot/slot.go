// Package slot turns a room's opening hours into bookable time slots and
// answers which of them are taken. It works on plain strings and has no I/O.
//
// Slots are rendered as "HH:MM - HH:MM" in 24 hour time. Opening hours are
// accepted either in 12 hour form ("09:00 AM") or 24 hour form ("09:00").
package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	DefaultOpen  = "09:00 AM"
	DefaultClose = "06:30 PM"

	// NonMemberClose is where one hour slots stop so the last one still ends inside the default hours.
	NonMemberClose = "06:00 PM"

	MemberMinutes    = 30
	NonMemberMinutes = 60

	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour

	separator = " - "
)

var (
	ErrInvalidClock    = errors.New("invalid clock time")
	ErrInvalidSlot     = errors.New("invalid time slot")
	ErrInvalidDuration = errors.New("slot duration must be positive")
)

// Interval is a half open range of minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

func (i Interval) Minutes() int {
	return i.End - i.Start
}

func (i Interval) String() string {
	return clock(i.Start) + separator + clock(i.End)
}

// Reservation is what an existing booking occupies on a date.
type Reservation struct {
	WholeDay bool
	Slots    []string
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// parseClock reads "06:30 PM", "6:30pm" or "18:30" into minutes since midnight.
func parseClock(value string) (int, error) {
	value = strings.ToUpper(strings.TrimSpace(value))

	meridiem := ""
	if strings.HasSuffix(value, "AM") || strings.HasSuffix(value, "PM") {
		meridiem = value[len(value)-2:]
		value = strings.TrimSpace(value[:len(value)-2])
	}

	hourPart, minutePart, found := strings.Cut(value, ":")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute >= minutesPerHour {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}

		if hour == 12 {
			hour = 0
		}

		if meridiem == "PM" {
			hour += 12
		}
	}

	return hour*minutesPerHour + minute, nil
}

// To24Hour converts "06:30 PM" to "18:30". 24 hour input is returned normalized.
func To24Hour(value string) (string, error) {
	minutes, err := parseClock(value)
	if err != nil {
		return "", err
	}

	return clock(minutes), nil
}

// Generate lists the slots of the given length starting at openTime. A slot that
// would end after closeTime is dropped, so every slot fits inside the opening hours.
func Generate(openTime, closeTime string, minutes int) ([]string, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}

	start, err := parseClock(openTime)
	if err != nil {
		return nil, err
	}

	end, err := parseClock(closeTime)
	if err != nil {
		return nil, err
	}

	slots := []string{}

	for from := start; from+minutes <= end && from+minutes <= minutesPerDay; from += minutes {
		slots = append(slots, Interval{Start: from, End: from + minutes}.String())
	}

	return slots, nil
}

// Normalize drops every whitespace so "09:00 - 09:30" and "09:00-09:30" compare equal.
func Normalize(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, value)
}

func Parse(value string) (Interval, error) {
	from, to, found := strings.Cut(Normalize(value), "-")
	if !found {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
	}

	start, err := parseClock(from)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
	}

	end, err := parseClock(to)
	if err != nil || end <= start {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidSlot, value)
	}

	return Interval{Start: start, End: end}, nil
}

type occupancy struct {
	wholeDay  bool
	intervals []Interval
	raw       map[string]struct{}
}

func occupy(reservations []Reservation) occupancy {
	occ := occupancy{raw: map[string]struct{}{}}

	for _, reservation := range reservations {
		if reservation.WholeDay {
			occ.wholeDay = true

			continue
		}

		for _, value := range reservation.Slots {
			if interval, err := Parse(value); err == nil {
				occ.intervals = append(occ.intervals, interval)

				continue
			}

			occ.raw[Normalize(value)] = struct{}{}
		}
	}

	return occ
}

func (o occupancy) empty() bool {
	return !o.wholeDay && len(o.intervals) == 0 && len(o.raw) == 0
}

func (o occupancy) taken(value string) bool {
	if o.wholeDay {
		return true
	}

	interval, err := Parse(value)
	if err != nil {
		_, ok := o.raw[Normalize(value)]

		return ok
	}

	for _, other := range o.intervals {
		if interval.Overlaps(other) {
			return true
		}
	}

	return false
}

// Partition splits candidates into available and booked slots, keeping their
// order. Every candidate lands in exactly one of the two lists.
func Partition(candidates []string, reservations []Reservation) (available, booked []string) {
	occ := occupy(reservations)

	available = []string{}
	booked = []string{}

	for _, candidate := range candidates {
		if occ.taken(candidate) {
			booked = append(booked, candidate)
		} else {
			available = append(available, candidate)
		}
	}

	return available, booked
}

// Conflicts returns the requested slots that collide with existing reservations.
// A whole day request collides with anything booked that day and reports the
// existing slots instead.
func Conflicts(requested []string, wholeDay bool, existing []Reservation) []string {
	occ := occupy(existing)
	if occ.empty() {
		return nil
	}

	if wholeDay {
		if occ.wholeDay {
			return []string{"Whole Day"}
		}

		taken := []string{}
		for _, reservation := range existing {
			taken = append(taken, reservation.Slots...)
		}

		return taken
	}

	conflicts := []string{}

	for _, value := range requested {
		if occ.taken(value) {
			conflicts = append(conflicts, value)
		}
	}

	if len(conflicts) == 0 {
		return nil
	}

	return conflicts
}

// OnGrid reports whether value is one of the slots Generate produces for the given hours.
func OnGrid(value, openTime, closeTime string, minutes int) bool {
	slots, err := Generate(openTime, closeTime, minutes)
	if err != nil {
		return false
	}

	normalized := Normalize(value)
	for _, candidate := range slots {
		if Normalize(candidate) == normalized {
			return true
		}
	}

	return false
}

// Month splits the days of a calendar month into free and booked dates
// ("2006-01-02"), based on the set of dates that already carry a booking.
func Month(year int, month time.Month, bookedDates map[string]struct{}) (free, booked []string) {
	free = []string{}
	booked = []string{}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		date := day.Format(time.DateOnly)

		if _, ok := bookedDates[date]; ok {
			booked = append(booked, date)
		} else {
			free = append(free, date)
		}
	}

	return free, booked
}
