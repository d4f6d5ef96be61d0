package dto

import (
	kycModel "cowork/internal/domains/kyc/model"
	roomModel "cowork/internal/domains/meetingroom/model"
	"cowork/internal/domains/user/model"
	"cowork/shared"
	"cowork/shared/constant"
	gDto "cowork/shared/dto"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Mobile    string  `json:"mobile"`
	Level     string  `json:"level"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Username = m.Username
	r.Email = m.Email
	r.Mobile = m.Mobile
	r.Level = m.Level
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)

	if m.LastLogin != nil {
		lastLogin := m.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}

type UpdateProfileRequest struct {
	Username string `db:"username" json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `db:"email"    json:"email"    validate:"omitempty,email"`
	Mobile   string `db:"mobile"   json:"mobile"   validate:"omitempty,min=10,max=15"`
}

type KycSummary struct {
	ID     string          `json:"id"`
	Type   kycModel.Type   `json:"type"`
	Status kycModel.Status `json:"status"`
	Name   string          `json:"name"`
}

type ProfileResponse struct {
	User       UserResponse         `json:"user"`
	Kyc        *KycSummary          `json:"kyc,omitempty"`
	KycStatus  kycModel.Status      `json:"kyc_status"`
	MemberType roomModel.MemberType `json:"member_type"`
	TeamSize   int                  `json:"team_size"`
}

// WithKyc fills the KYC part of the profile. A zero kyc means nothing was submitted.
func (r *ProfileResponse) WithKyc(kyc kycModel.Kyc) {
	status, member := kyc.Standing()

	r.KycStatus = status
	r.MemberType = MemberType(member)

	if kyc.ID != constant.Empty {
		r.Kyc = &KycSummary{ID: kyc.ID, Type: kyc.Type, Status: kyc.Status, Name: kyc.DisplayName()}
	}
}

func MemberType(member bool) roomModel.MemberType {
	if member {
		return roomModel.MemberTypeMember
	}

	return roomModel.MemberTypeNonMember
}

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "Active"
	MembershipExpired  MembershipStatus = "Expired"
	MembershipInactive MembershipStatus = "Inactive"
)

type MembershipResponse struct {
	Status        MembershipStatus `json:"status"`
	BookingID     string           `json:"booking_id,omitempty"`
	SpaceID       string           `json:"space_id,omitempty"`
	ValidFrom     string           `json:"valid_from,omitempty"`
	ValidUntil    string           `json:"valid_until,omitempty"`
	DaysRemaining int              `json:"days_remaining"`
	NoticeGiven   bool             `json:"notice_given"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
