package store

import (
	"fmt"
	"time"

	"givehope/domain"

	"github.com/google/uuid"
)

// seedNotices is inserted exactly once, the first time the collection is
// listed while empty.
var seedNotices = []domain.Notice{
	{Title: "New Year Greetings and 2025 Sponsorship Guide", Date: "2025.01.03", Views: 124},
	{Title: "Year-End Special Sponsorship Campaign", Date: "2024.12.28", Views: 256},
	{Title: "Africa School Construction Project Completed", Date: "2024.12.20", Views: 189},
	{Title: "Winter Emergency Relief Supplies Delivered", Date: "2024.12.15", Views: 203},
	{Title: "Donation Usage Report Published", Date: "2024.12.10", Views: 312},
}

// ListNotices returns all notices, newest first.
func (s *Store) ListNotices() ([]domain.Notice, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(id) FROM notices").Scan(&count); err != nil {
		return nil, fmt.Errorf("error counting notices: %w", err)
	}
	if count == 0 {
		if err := s.seedNotices(); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query("SELECT id, title, content, date, views, attachments FROM notices ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("error querying notices: %w", err)
	}
	defer rows.Close()

	notices := []domain.Notice{}
	for rows.Next() {
		var n domain.Notice
		var attachments string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Date, &n.Views, &attachments); err != nil {
			return nil, fmt.Errorf("error scanning notice: %w", err)
		}
		if n.Attachments, err = unmarshalAttachments(attachments); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (s *Store) seedNotices() error {
	now := time.Now().UTC()
	for i, n := range seedNotices {
		// stagger created_at so the seed keeps its order under DESC listing
		createdAt := now.Add(-time.Duration(i) * time.Second)
		_, err := s.db.Exec("INSERT INTO notices (id, title, content, date, views, attachments, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			uuid.NewString(), n.Title, n.Content, n.Date, n.Views, "[]", createdAt, createdAt)
		if err != nil {
			return fmt.Errorf("error seeding notices: %w", err)
		}
	}
	return nil
}

// CreateNotice assigns identity and timestamps and persists the notice.
func (s *Store) CreateNotice(n domain.Notice) (domain.Notice, error) {
	n.ID = uuid.NewString()
	if n.Attachments == nil {
		n.Attachments = []domain.Attachment{}
	}
	attachments, err := marshalAttachments(n.Attachments)
	if err != nil {
		return domain.Notice{}, err
	}
	now := time.Now().UTC()
	_, err = s.db.Exec("INSERT INTO notices (id, title, content, date, views, attachments, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Content, n.Date, n.Views, attachments, now, now)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("error inserting notice: %w", err)
	}
	return n, nil
}

// UpdateNotice replaces every mutable field of the notice.
func (s *Store) UpdateNotice(id string, n domain.Notice) (domain.Notice, error) {
	if n.Attachments == nil {
		n.Attachments = []domain.Attachment{}
	}
	attachments, err := marshalAttachments(n.Attachments)
	if err != nil {
		return domain.Notice{}, err
	}
	result, err := s.db.Exec("UPDATE notices SET title = ?, content = ?, date = ?, views = ?, attachments = ?, updated_at = ? WHERE id = ?",
		n.Title, n.Content, n.Date, n.Views, attachments, time.Now().UTC(), id)
	if err != nil {
		return domain.Notice{}, fmt.Errorf("error updating notice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Notice{}, err
	}
	if affected == 0 {
		return domain.Notice{}, ErrNotFound
	}
	n.ID = id
	return n, nil
}

// DeleteNotice removes the notice and reports whether a row existed.
func (s *Store) DeleteNotice(id string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM notices WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("error deleting notice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
