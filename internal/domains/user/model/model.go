package model

import (
	"time"

	"cowork/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldMobile    = "mobile"
	FieldPassword  = "password"
	FieldLevel     = "level"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

type User struct {
	ID        string     `db:"id"`
	Username  string     `db:"username"`
	Email     string     `db:"email"`
	Mobile    string     `db:"mobile"`
	Password  string     `db:"password"`
	Level     string     `db:"level"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}
