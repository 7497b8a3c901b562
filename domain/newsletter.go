package domain

import (
	"time"
)

type Newsletter struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ContentHTML string       `json:"content_html,omitempty"`
	Published   bool         `json:"published"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
