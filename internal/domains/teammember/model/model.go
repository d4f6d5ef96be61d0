package model

import (
	"cowork/shared/model"
)

const (
	TableName  = "team_members"
	EntityName = "team_member"

	FieldID         = "id"
	FieldBookingID  = "booking_id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldRole       = "role"
	FieldDeskNumber = "desk_number"
	FieldPhoto      = "photo"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type TeamMember struct {
	ID         string `db:"id"`
	BookingID  string `db:"booking_id"`
	FullName   string `db:"full_name"`
	Email      string `db:"email"`
	Phone      string `db:"phone"`
	Role       Role   `db:"role"`
	DeskNumber string `db:"desk_number"`
	Photo      string `db:"photo"`
	model.Metadata
}
