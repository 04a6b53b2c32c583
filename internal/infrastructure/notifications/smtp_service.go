package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/you/storefront/domain"
)

// SMTPServiceImpl implements domain.Mailer over a plain SMTP dialer
type SMTPServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPService creates a new SMTP mailer
func NewSMTPService(host string, port int, username, password, from string) domain.Mailer {
	return &SMTPServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendEmail implements domain.Mailer
func (s *SMTPServiceImpl) SendEmail(to, subject, htmlBody string) error {
	// If SMTP is not configured, log instead of sending
	if s.host == "" || s.from == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n%s\n", to, subject, htmlBody)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}
