package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"givehope/domain"

	"github.com/google/uuid"
)

// ErrUserExists is returned when the email is already registered.
var ErrUserExists = errors.New("user already exists")

// CreateUser stores an admin user with an already-hashed password.
func (s *Store) CreateUser(email, hashedPassword, name string) (domain.User, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(email) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return domain.User{}, fmt.Errorf("error checking user: %w", err)
	}
	if count != 0 {
		return domain.User{}, ErrUserExists
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec("INSERT INTO users (id, email, password, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		u.ID, u.Email, hashedPassword, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("error inserting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns the user and the stored password hash.
func (s *Store) GetUserByEmail(email string) (domain.User, string, error) {
	var u domain.User
	var hashedPassword string
	row := s.db.QueryRow("SELECT id, email, password, name, created_at, updated_at FROM users WHERE email = ?", email)
	err := row.Scan(&u.ID, &u.Email, &hashedPassword, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, "", ErrNotFound
		}
		return domain.User{}, "", fmt.Errorf("error reading user: %w", err)
	}
	return u, hashedPassword, nil
}

// CountUsers reports how many admin accounts exist; zero means the signup
// bootstrap window is still open.
func (s *Store) CountUsers() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(id) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
