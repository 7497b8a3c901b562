package domain

type Notice struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ContentHTML string       `json:"content_html,omitempty"`
	Date        string       `json:"date"`
	Views       int          `json:"views"`
	Attachments []Attachment `json:"attachments"`
}
