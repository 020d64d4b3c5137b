package model

import (
	"time"

	"litrato/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldLevel     = "level"
	FieldFullName  = "full_name"
	FieldPhone     = "phone"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

// User is an account of the booking site. Customers file booking requests,
// staff run the events and admins manage the catalog and the accounts.
type User struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Level     string     `db:"level"`
	FullName  *string    `db:"full_name"`
	Phone     *string    `db:"phone"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}
