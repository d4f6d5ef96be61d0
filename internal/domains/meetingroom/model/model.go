package model

import (
	"time"

	"cowork/shared/model"
	"cowork/shared/pricing"

	"github.com/lib/pq"
)

const (
	TableMeetingRoom  = "meeting_rooms"
	EntityMeetingRoom = "meeting_room"

	TableRoomBooking  = "room_bookings"
	EntityRoomBooking = "room_booking"

	FieldID               = "id"
	FieldName             = "name"
	FieldCapacityType     = "capacity_type"
	FieldHourlyRate       = "hourly_rate"
	FieldMemberHourlyRate = "member_hourly_rate"
	FieldDayRate          = "day_rate"
	FieldMemberDayRate    = "member_day_rate"
	FieldOpenTime         = "open_time"
	FieldCloseTime        = "close_time"

	FieldMeetingRoomID     = "meeting_room_id"
	FieldUserID            = "user_id"
	FieldBookingDate       = "booking_date"
	FieldBookingType       = "booking_type"
	FieldMemberType        = "member_type"
	FieldStatus            = "status"
	FieldRemarks           = "remarks"
	FieldPaymentScreenshot = "payment_screenshot"
	FieldIDProof           = "id_proof"
	FieldCOI               = "certificate_of_incorporation"
)

type MeetingRoom struct {
	ID               string  `db:"id"`
	Name             string  `db:"name"`
	CapacityType     string  `db:"capacity_type"`
	HourlyRate       float64 `db:"hourly_rate"`
	MemberHourlyRate float64 `db:"member_hourly_rate"`
	DayRate          float64 `db:"day_rate"`
	MemberDayRate    float64 `db:"member_day_rate"`
	OpenTime         string  `db:"open_time"`
	CloseTime        string  `db:"close_time"`
	model.Metadata
}

func (m MeetingRoom) Rates() pricing.RoomRates {
	return pricing.RoomRates{
		Hourly:       m.HourlyRate,
		MemberHourly: m.MemberHourlyRate,
		Day:          m.DayRate,
		MemberDay:    m.MemberDayRate,
	}
}

type RoomBooking struct {
	ID                         string         `db:"id"`
	MeetingRoomID              string         `db:"meeting_room_id"`
	UserID                     string         `db:"user_id"`
	Username                   string         `db:"username"`
	Email                      string         `db:"email"`
	Mobile                     string         `db:"mobile"`
	BookingDate                time.Time      `db:"booking_date"`
	TimeSlots                  pq.StringArray `db:"time_slots"`
	Duration                   Duration       `db:"duration"`
	BookingType                BookingType    `db:"booking_type"`
	MemberType                 MemberType     `db:"member_type"`
	TotalAmount                float64        `db:"total_amount"`
	Status                     Status         `db:"status"`
	Notes                      string         `db:"notes"`
	GSTNumber                  string         `db:"gst_number"`
	PaymentScreenshot          string         `db:"payment_screenshot"`
	IDProof                    string         `db:"id_proof"`
	CertificateOfIncorporation string         `db:"certificate_of_incorporation"`
	Remarks                    string         `db:"remarks"`
	model.Metadata
}

func (b RoomBooking) IsWholeDay() bool {
	return b.BookingType == BookingTypeWholeDay
}
