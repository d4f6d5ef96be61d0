package model

import "strings"

type BookingType string

const (
	BookingTypeHourly   BookingType = "Hourly"
	BookingTypeWholeDay BookingType = "Whole Day"
)

func (t BookingType) Valid() bool {
	return t == BookingTypeHourly || t == BookingTypeWholeDay
}

type MemberType string

const (
	MemberTypeMember    MemberType = "Member"
	MemberTypeNonMember MemberType = "Non-Member"
)

func (t MemberType) Valid() bool {
	return t == MemberTypeMember || t == MemberTypeNonMember
}

func (t MemberType) IsMember() bool {
	return t == MemberTypeMember
}

type Duration string

const (
	DurationHalfHour Duration = "30 Minutes"
	DurationHour     Duration = "1 Hour"
)

func (d Duration) Valid() bool {
	return d == DurationHalfHour || d == DurationHour
}

func (d Duration) Minutes() int {
	switch d {
	case DurationHalfHour:
		return 30
	case DurationHour:
		return 60
	default:
		return 0
	}
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusRejected  Status = "Rejected"
)

// ActiveStatuses are the statuses that hold a slot.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))

	return ok
}

// ParseStatus accepts the spellings clients send for a verification decision.
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, true
	case "confirm", "confirmed":
		return StatusConfirmed, true
	case "reject", "rejected":
		return StatusRejected, true
	default:
		return "", false
	}
}

// CanTransition reports whether a booking in s may move to next.
func (s Status) CanTransition(next Status) bool {
	return s == StatusPending && (next == StatusConfirmed || next == StatusRejected)
}

var (
	RoomTypes    = []string{"4-6 Seater", "10-12 Seater"}
	BookingTypes = []BookingType{BookingTypeHourly, BookingTypeWholeDay}
	MemberTypes  = []MemberType{MemberTypeMember, MemberTypeNonMember}
	Amenities    = []string{"Tea", "Coffee"}
)
