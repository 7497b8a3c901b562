package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var digitsRegexp = regexp.MustCompile(`^[0-9]+$`)

// DonationReceipt is a write-once donation receipt request. It is persisted
// before any notification attempt so a degraded mail channel never loses it.
type DonationReceipt struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birthDate"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (d DonationReceipt) Validate(phoneDigits int) error {
	if d.Name == "" || d.BirthDate == "" || d.Phone == "" || d.Email == "" {
		return errors.New("all fields are required")
	}
	if len(d.BirthDate) != 8 || !digitsRegexp.MatchString(d.BirthDate) {
		return errors.New("birth date must be 8 digits")
	}
	if len(d.Phone) != phoneDigits || !digitsRegexp.MatchString(d.Phone) {
		return fmt.Errorf("phone number must be %d digits", phoneDigits)
	}
	if !emailRegexp.MatchString(d.Email) {
		return errors.New("invalid email address")
	}
	return nil
}

// Inquiry is a write-once general inquiry submitted from the public site.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (i Inquiry) Validate() error {
	if i.Name == "" || i.Contact == "" || i.Email == "" || i.Message == "" {
		return errors.New("all fields are required")
	}
	if !emailRegexp.MatchString(i.Email) {
		return errors.New("invalid email address")
	}
	return nil
}
