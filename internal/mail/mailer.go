package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers contact-form messages to the site owner's own inbox.
// The visitor's address goes into Reply-To, never From, so SPF on the
// sending domain stays intact.
type Mailer struct {
	dialer *gomail.Dialer
	owner  string
}

func New(host string, port int, username, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		owner:  username,
	}
}

func (m *Mailer) SendContact(senderEmail, subject, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.owner)
	msg.SetHeader("To", m.owner)
	msg.SetHeader("Reply-To", senderEmail)
	msg.SetHeader("Subject", "Portfolio contact: "+subject)
	msg.SetBody("text/plain", fmt.Sprintf("Visitor: %s\n\nMessage:\n%s", senderEmail, message))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail delivery failed: %w", err)
	}
	return nil
}
