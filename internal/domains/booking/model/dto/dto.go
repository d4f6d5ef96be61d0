package dto

import (
	"mime/multipart"
	"time"

	"cowork/internal/domains/booking/model"
	spaceDto "cowork/internal/domains/space/model/dto"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpaceID   string  `json:"space_id"   validate:"required,uuid"`
	Date      string  `json:"date"       validate:"omitempty,datetime=2006-01-02"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Amount    float64 `json:"amount"     validate:"required,gt=0"`
}

// ToModel fails when a date cannot be parsed. The booking date defaults to today.
func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	date := timezone.Today()

	if c.Date != constant.Empty {
		parsed, err := timezone.Parse(constant.DayFormat, c.Date)
		if err != nil {
			return model.Booking{}, err
		}

		date = parsed
	}

	startDate, err := timezone.Parse(constant.DayFormat, c.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	endDate, err := timezone.Parse(constant.DayFormat, c.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:               uuid.NewString(),
		UserID:           user,
		SpaceID:          c.SpaceID,
		Date:             date,
		StartDate:        startDate,
		EndDate:          endDate,
		Amount:           c.Amount,
		Status:           model.StatusPending,
		NoticePeriodDays: model.DefaultNoticeDays,
		Metadata:         gModel.NewMetadata(user, timezone.Now()),
	}, nil
}

type UploadPaymentRequest struct {
	PaymentScreenshot *multipart.FileHeader `json:"payment_screenshot" validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
}

type VerifyBookingRequest struct {
	Status  string `json:"status"  validate:"required"`
	Remarks string `json:"remarks" validate:"omitempty,max=500"`
}

type SubmitNoticeRequest struct {
	NoticeSubmittedDate string                `json:"notice_submitted_date" validate:"omitempty,datetime=2006-01-02"`
	NoticePeriodDays    int                   `json:"notice_period_days"    validate:"omitempty,min=1,max=365"`
	NoticePDF           *multipart.FileHeader `json:"notice_pdf"            validate:"omitempty,mimetypes=application/pdf,maxfilesize=5"`
}

type NoticeResponse struct {
	SubmittedDate string `json:"notice_submitted_date"`
	PeriodDays    int    `json:"notice_period_days"`
	ExpireDate    string `json:"expire_date"`
	InNotice      bool   `json:"is_in_notice"`
	DaysRemaining int    `json:"days_remaining"`
	NoticePDF     string `json:"notice_pdf,omitempty"`
}

type BookingResponse struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	SpaceID           string          `json:"space_id"`
	Date              string          `json:"date"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	Amount            float64         `json:"amount"`
	PaymentScreenshot string          `json:"payment_screenshot,omitempty"`
	Status            model.Status    `json:"status"`
	NoticeGiven       bool            `json:"notice_given"`
	Notice            *NoticeResponse `json:"notice,omitempty"`
	Remarks           string          `json:"remarks,omitempty"`
	gDto.Metadata
}

// FromModel fills the response, deriving the notice countdown at now.
func (r *BookingResponse) FromModel(m model.Booking, now time.Time) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.SpaceID = m.SpaceID
	r.Date = m.Date.Format(constant.DayFormat)
	r.StartDate = m.StartDate.Format(constant.DayFormat)
	r.EndDate = m.EndDate.Format(constant.DayFormat)
	r.Amount = m.Amount
	r.PaymentScreenshot = m.PaymentScreenshot
	r.Status = m.Status
	r.NoticeGiven = m.NoticeGiven
	r.Remarks = m.Remarks
	r.Metadata.FromModel(m.Metadata)

	if notice, ok := m.Notice(); ok {
		r.Notice = &NoticeResponse{
			SubmittedDate: notice.SubmittedDate.Format(constant.DayFormat),
			PeriodDays:    notice.PeriodDays,
			ExpireDate:    notice.ExpireDate().Format(constant.DayFormat),
			InNotice:      m.Status == model.StatusNoticeGiven && notice.InNotice(now),
			DaysRemaining: notice.DaysRemaining(now),
			NoticePDF:     m.NoticePDF,
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, now)
	}
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

type KycSummary struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type BookingDetailsResponse struct {
	Booking BookingResponse         `json:"booking"`
	Space   *spaceDto.SpaceResponse `json:"space,omitempty"`
	User    *UserSummary            `json:"user,omitempty"`
	Kyc     *KycSummary             `json:"kyc,omitempty"`
}
