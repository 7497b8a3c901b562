package store

import (
	"fmt"
	"time"

	"givehope/domain"

	"github.com/google/uuid"
)

// ListNewsletters returns all newsletters, newest first, drafts included.
// Draft visibility is the caller's concern.
func (s *Store) ListNewsletters() ([]domain.Newsletter, error) {
	rows, err := s.db.Query("SELECT id, title, content, published, attachments, created_at, updated_at FROM newsletters ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("error querying newsletters: %w", err)
	}
	defer rows.Close()

	newsletters := []domain.Newsletter{}
	for rows.Next() {
		var n domain.Newsletter
		var attachments string
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Published, &attachments, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning newsletter: %w", err)
		}
		if n.Attachments, err = unmarshalAttachments(attachments); err != nil {
			return nil, err
		}
		newsletters = append(newsletters, n)
	}
	return newsletters, rows.Err()
}

func (s *Store) CreateNewsletter(n domain.Newsletter) (domain.Newsletter, error) {
	n.ID = uuid.NewString()
	if n.Attachments == nil {
		n.Attachments = []domain.Attachment{}
	}
	attachments, err := marshalAttachments(n.Attachments)
	if err != nil {
		return domain.Newsletter{}, err
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err = s.db.Exec("INSERT INTO newsletters (id, title, content, published, attachments, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Content, n.Published, attachments, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return domain.Newsletter{}, fmt.Errorf("error inserting newsletter: %w", err)
	}
	return n, nil
}

func (s *Store) UpdateNewsletter(id string, n domain.Newsletter) (domain.Newsletter, error) {
	if n.Attachments == nil {
		n.Attachments = []domain.Attachment{}
	}
	attachments, err := marshalAttachments(n.Attachments)
	if err != nil {
		return domain.Newsletter{}, err
	}
	n.UpdatedAt = time.Now().UTC()
	result, err := s.db.Exec("UPDATE newsletters SET title = ?, content = ?, published = ?, attachments = ?, updated_at = ? WHERE id = ?",
		n.Title, n.Content, n.Published, attachments, n.UpdatedAt, id)
	if err != nil {
		return domain.Newsletter{}, fmt.Errorf("error updating newsletter: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Newsletter{}, err
	}
	if affected == 0 {
		return domain.Newsletter{}, ErrNotFound
	}
	n.ID = id
	row := s.db.QueryRow("SELECT created_at FROM newsletters WHERE id = ?", id)
	if err := row.Scan(&n.CreatedAt); err != nil {
		return domain.Newsletter{}, fmt.Errorf("error reading newsletter: %w", err)
	}
	return n, nil
}

func (s *Store) DeleteNewsletter(id string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM newsletters WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("error deleting newsletter: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
