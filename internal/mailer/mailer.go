package mailer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"github.com/handcraftlab/atelier/config"
)

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Mailer sends transactional notifications over SMTP.
type Mailer struct {
	cfg config.SmtpConfig
}

func New(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendContactMessage forwards a contact submission to the shop owner inbox.
func (m *Mailer) SendContactMessage(msg ContactMessage) error {
	if m.cfg.Host == "" || m.cfg.To == "" {
		return errors.New("smtp is not configured")
	}

	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = "New contact message"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", msg.Name)
	fmt.Fprintf(&body, "Email: %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", msg.Phone)
	}
	fmt.Fprintf(&body, "\n%s\n", msg.Message)

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.From)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", fmt.Sprintf("[atelier] %s", subject))
	mail.SetBody("text/plain", body.String())

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(mail); err != nil {
		return errors.Wrap(err, "send contact mail")
	}
	return nil
}
