package store

import (
	"fmt"
	"time"

	"givehope/domain"

	"github.com/google/uuid"
)

// CreateDonationReceipt persists a donation receipt request for audit,
// independent of whether the operator notification goes out.
func (s *Store) CreateDonationReceipt(d domain.DonationReceipt) (domain.DonationReceipt, error) {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec("INSERT INTO donation_receipts (id, name, birth_date, phone, email, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		d.ID, d.Name, d.BirthDate, d.Phone, d.Email, d.CreatedAt)
	if err != nil {
		return domain.DonationReceipt{}, fmt.Errorf("error inserting donation receipt: %w", err)
	}
	return d, nil
}

func (s *Store) ListDonationReceipts() ([]domain.DonationReceipt, error) {
	rows, err := s.db.Query("SELECT id, name, birth_date, phone, email, created_at FROM donation_receipts ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("error querying donation receipts: %w", err)
	}
	defer rows.Close()

	receipts := []domain.DonationReceipt{}
	for rows.Next() {
		var d domain.DonationReceipt
		if err := rows.Scan(&d.ID, &d.Name, &d.BirthDate, &d.Phone, &d.Email, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning donation receipt: %w", err)
		}
		receipts = append(receipts, d)
	}
	return receipts, rows.Err()
}

func (s *Store) CreateInquiry(i domain.Inquiry) (domain.Inquiry, error) {
	i.ID = uuid.NewString()
	i.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec("INSERT INTO inquiries (id, name, contact, email, message, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		i.ID, i.Name, i.Contact, i.Email, i.Message, i.CreatedAt)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("error inserting inquiry: %w", err)
	}
	return i, nil
}

func (s *Store) ListInquiries() ([]domain.Inquiry, error) {
	rows, err := s.db.Query("SELECT id, name, contact, email, message, created_at FROM inquiries ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("error querying inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []domain.Inquiry{}
	for rows.Next() {
		var i domain.Inquiry
		if err := rows.Scan(&i.ID, &i.Name, &i.Contact, &i.Email, &i.Message, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning inquiry: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	return inquiries, rows.Err()
}
