package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"givehope/domain"
)

// ErrNotFound is returned when a mutation targets an id that does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists the site's content collections in sqlite. The *sql.DB handle
// is created once at process start and shared read-only after that.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Attachments are embedded verbatim in their owning record, so they live in a
// JSON column and are replaced wholesale on every update.
func marshalAttachments(attachments []domain.Attachment) (string, error) {
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return "", fmt.Errorf("error encoding attachments: %w", err)
	}
	return string(raw), nil
}

func unmarshalAttachments(raw string) ([]domain.Attachment, error) {
	attachments := []domain.Attachment{}
	if raw == "" {
		return attachments, nil
	}
	if err := json.Unmarshal([]byte(raw), &attachments); err != nil {
		return nil, fmt.Errorf("error decoding attachments: %w", err)
	}
	return attachments, nil
}
