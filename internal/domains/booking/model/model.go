package model

import (
	"strings"
	"time"

	"cowork/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldUserID              = "user_id"
	FieldSpaceID             = "space_id"
	FieldDate                = "date"
	FieldStartDate           = "start_date"
	FieldEndDate             = "end_date"
	FieldAmount              = "amount"
	FieldPaymentScreenshot   = "payment_screenshot"
	FieldStatus              = "status"
	FieldNoticeGiven         = "notice_given"
	FieldNoticeSubmittedDate = "notice_submitted_date"
	FieldNoticePeriodDays    = "notice_period_days"
	FieldNoticePDF           = "notice_pdf"
	FieldRemarks             = "remarks"
)

type Status string

const (
	StatusPending     Status = "Pending"
	StatusConfirm     Status = "Confirm"
	StatusRejected    Status = "Rejected"
	StatusNoticeGiven Status = "Notice Given"
)

var (
	// ActiveStatuses keep a space occupied or reserved.
	ActiveStatuses = []string{string(StatusPending), string(StatusConfirm), string(StatusNoticeGiven)}
	// HoldingStatuses belong to occupants that moved in.
	HoldingStatuses = []string{string(StatusConfirm), string(StatusNoticeGiven)}
)

func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, true
	case "confirm", "confirmed":
		return StatusConfirm, true
	case "reject", "rejected":
		return StatusRejected, true
	case "notice given", "notice_given":
		return StatusNoticeGiven, true
	default:
		return "", false
	}
}

// CanVerify reports whether an admin may still decide on the booking.
func (s Status) CanVerify() bool {
	return s == StatusPending
}

type Booking struct {
	ID                  string     `db:"id"`
	UserID              string     `db:"user_id"`
	SpaceID             string     `db:"space_id"`
	Date                time.Time  `db:"date"`
	StartDate           time.Time  `db:"start_date"`
	EndDate             time.Time  `db:"end_date"`
	Amount              float64    `db:"amount"`
	PaymentScreenshot   string     `db:"payment_screenshot"`
	Status              Status     `db:"status"`
	NoticeGiven         bool       `db:"notice_given"`
	NoticeSubmittedDate *time.Time `db:"notice_submitted_date"`
	NoticePeriodDays    int        `db:"notice_period_days"`
	NoticePDF           string     `db:"notice_pdf"`
	Remarks             string     `db:"remarks"`
	model.Metadata
}

// Notice returns the notice of the booking, if one was submitted.
func (b Booking) Notice() (Notice, bool) {
	if !b.NoticeGiven || b.NoticeSubmittedDate == nil {
		return Notice{}, false
	}

	return Notice{SubmittedDate: *b.NoticeSubmittedDate, PeriodDays: b.NoticePeriodDays}, true
}
