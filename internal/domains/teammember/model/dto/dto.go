package dto

import (
	"mime/multipart"

	"cowork/internal/domains/teammember/model"
	"cowork/shared"
	gDto "cowork/shared/dto"
	gModel "cowork/shared/model"
	"cowork/shared/timezone"

	"github.com/google/uuid"
)

type AddTeamMemberRequest struct {
	BookingID  string                `json:"booking_id"  validate:"required,uuid"`
	FullName   string                `json:"full_name"   validate:"required,max=100"`
	Email      string                `json:"email"       validate:"required,email"`
	Phone      string                `json:"phone"       validate:"omitempty,max=20"`
	Role       model.Role            `json:"role"        validate:"omitempty,enum"`
	DeskNumber string                `json:"desk_number" validate:"omitempty,max=20"`
	Photo      *multipart.FileHeader `json:"photo"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
}

func (r *AddTeamMemberRequest) ToModel(user, photo string) model.TeamMember {
	role := r.Role
	if !role.Valid() {
		role = model.RoleMember
	}

	return model.TeamMember{
		ID:         uuid.NewString(),
		BookingID:  r.BookingID,
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		Role:       role,
		DeskNumber: r.DeskNumber,
		Photo:      photo,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type TeamMemberResponse struct {
	ID         string     `json:"id"`
	BookingID  string     `json:"booking_id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       model.Role `json:"role"`
	DeskNumber string     `json:"desk_number"`
	Photo      string     `json:"photo,omitempty"`
	gDto.Metadata
}

func (r *TeamMemberResponse) FromModel(m model.TeamMember) {
	r.ID = m.ID
	r.BookingID = m.BookingID
	r.FullName = m.FullName
	r.Email = m.Email
	r.Phone = m.Phone
	r.Role = m.Role
	r.DeskNumber = m.DeskNumber
	r.Photo = m.Photo
	r.Metadata.FromModel(m.Metadata)
}

type GetTeamMembersResponse struct {
	TeamMembers []TeamMemberResponse `json:"team_members"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetTeamMembersResponse) FromModels(models []model.TeamMember, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TeamMembers = make([]TeamMemberResponse, len(models))
	for i, mod := range models {
		r.TeamMembers[i].FromModel(mod)
	}
}
