package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        string    `db:"id"` // UUID
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"` // plain unless hash_passwords is set
	Age       int       `db:"age"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserFields are the business fields replaced as a whole on create and update.
type UserFields struct {
	Username string
	Email    string
	Password string
	Age      int
}

// NewUser builds a record with a fresh id. Timestamps are left to the store.
func NewUser(fields UserFields) *User {
	return &User{
		ID:       uuid.New().String(),
		Username: fields.Username,
		Email:    fields.Email,
		Password: fields.Password,
		Age:      fields.Age,
	}
}

// Fields returns the business fields of u.
func (u *User) Fields() UserFields {
	return UserFields{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		Age:      u.Age,
	}
}
