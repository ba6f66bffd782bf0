package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/martijn/usersvc/internal/core/domain"
	"github.com/martijn/usersvc/internal/core/service"
)

// UserRequest is the create and update payload. Pointer fields tell an
// absent or null field apart from a zero value.
type UserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Age      *Age    `json:"age"`
}

// Age holds the age as sent. Browsers post form values as strings, so both
// 30 and "30" are accepted here and parsed during validation.
type Age string

func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Age(s)
		return nil
	}
	*a = Age(data)
	return nil
}

// Input converts the request for the service layer.
func (r UserRequest) Input() service.UserInput {
	in := service.UserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Age != nil {
		s := string(*r.Age)
		in.Age = &s
	}
	return in
}

// UserResponse represents a stored user record
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ToUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = ToUserResponse(user)
	}
	return out
}
