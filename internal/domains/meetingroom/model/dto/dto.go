package dto

import (
	"mime/multipart"

	"cowork/internal/domains/meetingroom/model"
	"cowork/internal/domains/meetingroom/slot"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type CreateMeetingRoomRequest struct {
	Name             string  `json:"name"               validate:"required,max=100"`
	CapacityType     string  `json:"capacity_type"      validate:"required,max=50"`
	HourlyRate       float64 `json:"hourly_rate"        validate:"gte=0"`
	MemberHourlyRate float64 `json:"member_hourly_rate" validate:"gte=0"`
	DayRate          float64 `json:"day_rate"           validate:"gte=0"`
	MemberDayRate    float64 `json:"member_day_rate"    validate:"gte=0"`
	OpenTime         string  `json:"open_time"          validate:"omitempty,max=10"`
	CloseTime        string  `json:"close_time"         validate:"omitempty,max=10"`
}

func (c *CreateMeetingRoomRequest) ToModel(user string) model.MeetingRoom {
	openTime := c.OpenTime
	if openTime == constant.Empty {
		openTime = slot.DefaultOpen
	}

	closeTime := c.CloseTime
	if closeTime == constant.Empty {
		closeTime = slot.DefaultClose
	}

	return model.MeetingRoom{
		ID:               uuid.NewString(),
		Name:             c.Name,
		CapacityType:     c.CapacityType,
		HourlyRate:       c.HourlyRate,
		MemberHourlyRate: c.MemberHourlyRate,
		DayRate:          c.DayRate,
		MemberDayRate:    c.MemberDayRate,
		OpenTime:         openTime,
		CloseTime:        closeTime,
		Metadata:         gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateMeetingRoomRequest struct {
	Name             string   `db:"name"               json:"name"               validate:"omitempty,max=100"`
	HourlyRate       *float64 `db:"hourly_rate"        json:"hourly_rate"        validate:"omitempty,gte=0"`
	MemberHourlyRate *float64 `db:"member_hourly_rate" json:"member_hourly_rate" validate:"omitempty,gte=0"`
	DayRate          *float64 `db:"day_rate"           json:"day_rate"           validate:"omitempty,gte=0"`
	MemberDayRate    *float64 `db:"member_day_rate"    json:"member_day_rate"    validate:"omitempty,gte=0"`
	OpenTime         string   `db:"open_time"          json:"open_time"          validate:"omitempty,max=10"`
	CloseTime        string   `db:"close_time"         json:"close_time"         validate:"omitempty,max=10"`
}

type MeetingRoomResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	CapacityType     string  `json:"capacity_type"`
	HourlyRate       float64 `json:"hourly_rate"`
	MemberHourlyRate float64 `json:"member_hourly_rate"`
	DayRate          float64 `json:"day_rate"`
	MemberDayRate    float64 `json:"member_day_rate"`
	OpenTime         string  `json:"open_time"`
	CloseTime        string  `json:"close_time"`
	gDto.Metadata
}

func (r *MeetingRoomResponse) FromModel(m model.MeetingRoom) {
	r.ID = m.ID
	r.Name = m.Name
	r.CapacityType = m.CapacityType
	r.HourlyRate = m.HourlyRate
	r.MemberHourlyRate = m.MemberHourlyRate
	r.DayRate = m.DayRate
	r.MemberDayRate = m.MemberDayRate
	r.OpenTime = m.OpenTime
	r.CloseTime = m.CloseTime
	r.Metadata.FromModel(m.Metadata)
}

type GetMeetingRoomsResponse struct {
	MeetingRooms []MeetingRoomResponse `json:"meeting_rooms"`
}

func (r *GetMeetingRoomsResponse) FromModels(models []model.MeetingRoom) {
	r.MeetingRooms = make([]MeetingRoomResponse, len(models))
	for i, m := range models {
		r.MeetingRooms[i].FromModel(m)
	}
}

type CatalogResponse struct {
	RoomTypes    []string            `json:"room_types,omitempty"`
	BookingTypes []model.BookingType `json:"booking_types,omitempty"`
	MemberTypes  []model.MemberType  `json:"member_types,omitempty"`
	Amenities    []string            `json:"amenities,omitempty"`
}

type PricingRequest struct {
	CapacityType string            `json:"capacity_type" validate:"required"`
	BookingType  model.BookingType `json:"booking_type"  validate:"required,enum"`
	MemberType   model.MemberType  `json:"member_type"   validate:"required,enum"`
}

type PricingResponse struct {
	Price             float64           `json:"price"`
	PricePerThirtyMin *float64          `json:"price_per_thirty_min,omitempty"`
	OpenTime          string            `json:"open_time"`
	CloseTime         string            `json:"close_time"`
	BookingType       model.BookingType `json:"booking_type"`
	MemberType        model.MemberType  `json:"member_type"`
	CapacityType      string            `json:"capacity_type"`
	IncludesGST       bool              `json:"includes_gst"`
	Note              string            `json:"note"`
}

type AvailableSlotsRequest struct {
	CapacityType string           `json:"capacity_type" validate:"required"`
	Date         string           `json:"date"          validate:"required,datetime=2006-01-02"`
	MemberType   model.MemberType `json:"member_type"   validate:"omitempty,enum"`
}

type AvailableSlotsResponse struct {
	Date           string           `json:"date"`
	CapacityType   string           `json:"capacity_type"`
	MemberType     model.MemberType `json:"member_type"`
	OpenTime       string           `json:"open_time"`
	CloseTime      string           `json:"close_time"`
	SlotDuration   string           `json:"slot_duration"`
	AvailableSlots []string         `json:"available_slots"`
	BookedSlots    []string         `json:"booked_slots"`
}

type AvailableDaysRequest struct {
	CapacityType string `json:"capacity_type" validate:"required"`
	Year         int    `json:"year"          validate:"required,min=1970,max=9999"`
	Month        int    `json:"month"         validate:"required,min=1,max=12"`
}

type AvailableDaysResponse struct {
	RoomID       string   `json:"room_id"`
	CapacityType string   `json:"capacity_type"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	FreeDates    []string `json:"free_dates"`
	BookedDates  []string `json:"booked_dates"`
}

type BookRoomRequest struct {
	CapacityType      string                `json:"capacity_type"      validate:"required"`
	BookingDate       string                `json:"booking_date"       validate:"required,datetime=2006-01-02"`
	TimeSlots         []string              `json:"time_slots"         validate:"required_if=BookingType Hourly,omitempty,max=48,dive,required"`
	Duration          model.Duration        `json:"duration"           validate:"required_if=BookingType Hourly,omitempty,enum"`
	BookingType       model.BookingType     `json:"booking_type"       validate:"required,enum"`
	MemberType        model.MemberType      `json:"member_type"        validate:"required,enum"`
	Notes             string                `json:"notes"              validate:"omitempty,max=1000"`
	GSTNumber         string                `json:"gst_number"         validate:"omitempty,max=20"`
	IDProof           *multipart.FileHeader `json:"id_proof"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	PaymentScreenshot *multipart.FileHeader `json:"payment_screenshot" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	COI               *multipart.FileHeader `json:"coi"                validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

// ToModel builds the booking for a resolved room. Uploaded document URLs are filled in by the caller.
func (b *BookRoomRequest) ToModel(room model.MeetingRoom, user Booker, total float64, status model.Status) model.RoomBooking {
	bookingDate, _ := timezone.Parse(constant.DayFormat, b.BookingDate)

	booking := model.RoomBooking{
		ID:            uuid.NewString(),
		MeetingRoomID: room.ID,
		UserID:        user.ID,
		Username:      user.Username,
		Email:         user.Email,
		Mobile:        user.Mobile,
		BookingDate:   bookingDate,
		BookingType:   b.BookingType,
		MemberType:    b.MemberType,
		TotalAmount:   total,
		Status:        status,
		Notes:         b.Notes,
		GSTNumber:     b.GSTNumber,
		Metadata:      gModel.NewMetadata(user.ID, timezone.Now()),
	}

	if b.BookingType == model.BookingTypeHourly {
		booking.TimeSlots = b.TimeSlots
		booking.Duration = b.Duration
	}

	return booking
}

// Booker is the authenticated user a booking is made for.
type Booker struct {
	ID       string
	Username string
	Email    string
	Mobile   string
}

type VerifyRoomBookingRequest struct {
	Status  string `json:"status"  validate:"required"`
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

type RoomBookingResponse struct {
	ID                         string            `json:"id"`
	MeetingRoomID              string            `json:"meeting_room_id"`
	UserID                     string            `json:"user_id"`
	Username                   string            `json:"username"`
	Email                      string            `json:"email"`
	Mobile                     string            `json:"mobile"`
	BookingDate                string            `json:"booking_date"`
	TimeSlots                  []string          `json:"time_slots"`
	Duration                   model.Duration    `json:"duration,omitempty"`
	BookingType                model.BookingType `json:"booking_type"`
	MemberType                 model.MemberType  `json:"member_type"`
	TotalAmount                float64           `json:"total_amount"`
	Status                     model.Status      `json:"status"`
	Notes                      string            `json:"notes,omitempty"`
	GSTNumber                  string            `json:"gst_number,omitempty"`
	PaymentScreenshot          string            `json:"payment_screenshot,omitempty"`
	IDProof                    string            `json:"id_proof,omitempty"`
	CertificateOfIncorporation string            `json:"certificate_of_incorporation,omitempty"`
	Remarks                    string            `json:"remarks,omitempty"`
	gDto.Metadata
}

func (r *RoomBookingResponse) FromModel(m model.RoomBooking) {
	r.ID = m.ID
	r.MeetingRoomID = m.MeetingRoomID
	r.UserID = m.UserID
	r.Username = m.Username
	r.Email = m.Email
	r.Mobile = m.Mobile
	r.BookingDate = m.BookingDate.Format(constant.DayFormat)
	r.TimeSlots = m.TimeSlots
	r.Duration = m.Duration
	r.BookingType = m.BookingType
	r.MemberType = m.MemberType
	r.TotalAmount = m.TotalAmount
	r.Status = m.Status
	r.Notes = m.Notes
	r.GSTNumber = m.GSTNumber
	r.PaymentScreenshot = m.PaymentScreenshot
	r.IDProof = m.IDProof
	r.CertificateOfIncorporation = m.CertificateOfIncorporation
	r.Remarks = m.Remarks
	r.Metadata.FromModel(m.Metadata)
}

type BookRoomResponse struct {
	Booking     RoomBookingResponse `json:"booking"`
	RoomName    string              `json:"room_name"`
	RoomType    string              `json:"room_type"`
	TotalAmount float64             `json:"total_amount"`
	Status      model.Status        `json:"status"`
}

type GetRoomBookingsResponse struct {
	Bookings  []RoomBookingResponse `json:"bookings"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetRoomBookingsResponse) FromModels(models []model.RoomBooking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]RoomBookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}
