// Package pricing holds the GST arithmetic shared by spaces and meeting rooms.
// All amounts are rounded half away from zero to two decimals.
package pricing

import (
	"math"

	"cowork/shared/constant"
)

const minutesPerHour = 60

func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func WithGST(amount float64) float64 {
	return Round2(amount * constant.GSTRate)
}

// SpaceFinalPrice is the GST inclusive monthly price stored on a space.
func SpaceFinalPrice(price float64) float64 {
	return WithGST(price)
}

// HourlyTotal charges the hourly rate for the booked time and applies GST once on the total.
func HourlyTotal(hourlyRate float64, slots, slotMinutes int) float64 {
	hours := float64(slots*slotMinutes) / minutesPerHour

	return WithGST(hourlyRate * hours)
}

// DayTotal returns the day rate as is, it already includes GST.
func DayTotal(dayRate float64) float64 {
	return Round2(dayRate)
}

// RoomRates is the rate card of a meeting room.
type RoomRates struct {
	Hourly       float64
	MemberHourly float64
	Day          float64
	MemberDay    float64
}

// Rate selects the base rate for a booking kind.
func (r RoomRates) Rate(wholeDay, member bool) float64 {
	switch {
	case wholeDay && member:
		return r.MemberDay
	case wholeDay:
		return r.Day
	case member:
		return r.MemberHourly
	default:
		return r.Hourly
	}
}

// RoomTotal prices a meeting room booking. Whole day rates are returned untouched,
// hourly bookings are charged per slot with GST applied to the sum.
func RoomTotal(rate float64, wholeDay bool, slots, slotMinutes int) float64 {
	if wholeDay {
		return DayTotal(rate)
	}

	return HourlyTotal(rate, slots, slotMinutes)
}
