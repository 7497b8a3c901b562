package mailer

import (
	"fmt"
	"time"

	"givehope/domain"

	"gopkg.in/gomail.v2"
)

// Message is a transactional notification for the site operator. ReplyTo is
// the submitter's address so the operator can answer directly.
type Message struct {
	Subject string
	Body    string
	ReplyTo string
}

// SMTP sends operator notifications over SMTP. It is best-effort by design:
// callers persist the submission first and report a failed send as a degraded
// status, never as a lost submission.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewSMTP(host string, port int, username, password, from, to string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (s *SMTP) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", s.to)
	msg.SetHeader("Subject", m.Subject)
	if m.ReplyTo != "" {
		msg.SetHeader("Reply-To", m.ReplyTo)
	}
	msg.SetBody("text/plain", m.Body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error sending mail: %w", err)
	}
	return nil
}

// DonationReceiptMessage formats the operator notification for a donation
// receipt request.
func DonationReceiptMessage(d domain.DonationReceipt) Message {
	body := fmt.Sprintf(`Donation receipt request

Name: %s
Birth date: %s
Phone: %s
Email: %s

Submitted at: %s`,
		d.Name, formatBirthDate(d.BirthDate), formatPhone(d.Phone), d.Email,
		time.Now().Format("2006-01-02 15:04:05"))

	return Message{
		Subject: fmt.Sprintf("Donation receipt request from %s", d.Name),
		Body:    body,
		ReplyTo: d.Email,
	}
}

// InquiryMessage formats the operator notification for a general inquiry.
func InquiryMessage(i domain.Inquiry) Message {
	body := fmt.Sprintf(`New inquiry received.

Name: %s
Contact: %s
Email: %s

Message:
%s

Submitted at: %s`,
		i.Name, i.Contact, i.Email, i.Message,
		time.Now().Format("2006-01-02 15:04:05"))

	return Message{
		Subject: fmt.Sprintf("Sponsorship/business inquiry from %s", i.Name),
		Body:    body,
		ReplyTo: i.Email,
	}
}

// formatBirthDate renders an 8-digit birth date as YYYY-MM-DD.
func formatBirthDate(birthDate string) string {
	if len(birthDate) != 8 {
		return birthDate
	}
	return fmt.Sprintf("%s-%s-%s", birthDate[:4], birthDate[4:6], birthDate[6:])
}

// formatPhone renders an 11-digit number as 3-4-4; anything else is passed
// through untouched.
func formatPhone(phone string) string {
	if len(phone) != 11 {
		return phone
	}
	return fmt.Sprintf("%s-%s-%s", phone[:3], phone[3:7], phone[7:])
}
