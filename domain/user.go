package domain

import (
	"errors"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) ValidateEmail() error {
	if !emailRegexp.MatchString(u.Email) {
		return errors.New("invalid email address")
	}
	return nil
}
