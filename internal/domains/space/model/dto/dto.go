package dto

import (
	"encoding/json"
	"mime/multipart"
	"strings"
	"time"

	"cowork/internal/domains/space/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/pricing"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type CreateSpaceRequest struct {
	RoomNumber     string                  `json:"room_number"     validate:"omitempty,max=20"`
	CabinNumber    string                  `json:"cabin_number"    validate:"omitempty,max=20"`
	SpaceName      string                  `json:"space_name"      validate:"required,max=100"`
	Seater         int                     `json:"seater"          validate:"omitempty,min=0"`
	Price          float64                 `json:"price"           validate:"required,gt=0"`
	Availability   model.Availability      `json:"availability"    validate:"omitempty,max=20"`
	AvailableDates []string                `json:"available_dates" validate:"omitempty,dive,datetime=2006-01-02"`
	Images         []*multipart.FileHeader `json:"images"          validate:"required,min=1,max=5,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateSpaceRequest) ToModel(user string, images []string) model.Space {
	return model.Space{
		ID:           uuid.NewString(),
		RoomNumber:   c.RoomNumber,
		CabinNumber:  c.CabinNumber,
		SpaceName:    c.SpaceName,
		Seater:       c.Seater,
		Price:        c.Price,
		GST:          model.GSTPercent,
		FinalPrice:   pricing.SpaceFinalPrice(c.Price),
		Availability: c.Availability.OrDefault(),
		Images:       images,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateSpaceRequest struct {
	RoomNumber     string                  `db:"room_number"  json:"room_number"     validate:"omitempty,max=20"`
	CabinNumber    string                  `db:"cabin_number" json:"cabin_number"    validate:"omitempty,max=20"`
	SpaceName      string                  `db:"space_name"   json:"space_name"      validate:"omitempty,max=100"`
	Seater         *int                    `db:"seater"       json:"seater"          validate:"omitempty,min=0"`
	Price          *float64                `db:"price"        json:"price"           validate:"omitempty,gt=0"`
	Availability   model.Availability      `db:"availability" json:"availability"    validate:"omitempty,max=20"`
	AvailableDates *[]string               `json:"available_dates" validate:"omitempty,dive,datetime=2006-01-02"`
	Images         []*multipart.FileHeader `json:"images"          validate:"omitempty,max=5,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

// ParseDates accepts a JSON array or a comma separated list of dates.
func ParseDates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == constant.Empty {
		return []string{}
	}

	var values []string
	if strings.HasPrefix(raw, "[") && json.Unmarshal([]byte(raw), &values) == nil {
		return values
	}

	values = strings.Split(raw, constant.Comma)
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	return values
}

// NewAvailableDates parses YYYY-MM-DD values, skipping anything unparsable and duplicates.
func NewAvailableDates(spaceID, user string, values []string) []model.AvailableDate {
	now := timezone.Now()
	seen := make(map[string]struct{}, len(values))
	dates := make([]model.AvailableDate, 0, len(values))

	for _, value := range values {
		date, err := timezone.Parse(constant.DayFormat, value)
		if err != nil {
			continue
		}

		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}

		dates = append(dates, model.AvailableDate{
			ID:       uuid.NewString(),
			SpaceID:  spaceID,
			Date:     date,
			Metadata: gModel.NewMetadata(user, now),
		})
	}

	return dates
}

type SpaceResponse struct {
	ID             string             `json:"id"`
	RoomNumber     string             `json:"room_number"`
	CabinNumber    string             `json:"cabin_number"`
	SpaceName      string             `json:"space_name"`
	Seater         int                `json:"seater"`
	Price          float64            `json:"price"`
	GST            float64            `json:"gst"`
	FinalPrice     float64            `json:"final_price"`
	Availability   model.Availability `json:"availability"`
	Images         []string           `json:"images"`
	AvailableDates []string           `json:"available_dates,omitempty"`
	gDto.Metadata
}

func (r *SpaceResponse) FromModel(m model.Space) {
	r.ID = m.ID
	r.RoomNumber = m.RoomNumber
	r.CabinNumber = m.CabinNumber
	r.SpaceName = m.SpaceName
	r.Seater = m.Seater
	r.Price = m.Price
	r.GST = m.GST
	r.FinalPrice = m.FinalPrice
	r.Availability = m.Availability
	r.Images = m.Images
	r.Metadata.FromModel(m.Metadata)

	if r.Images == nil {
		r.Images = []string{}
	}
}

func (r *SpaceResponse) WithDates(dates []model.AvailableDate) {
	r.AvailableDates = make([]string, len(dates))
	for i, date := range dates {
		r.AvailableDates[i] = date.Date.Format(time.DateOnly)
	}
}

type GetSpacesResponse struct {
	Spaces    []SpaceResponse `json:"spaces"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetSpacesResponse) FromModels(models []model.Space, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Spaces = make([]SpaceResponse, len(models))
	for i, mod := range models {
		r.Spaces[i].FromModel(mod)
	}
}
