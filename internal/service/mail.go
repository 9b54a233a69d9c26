package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ovasilenko/shop_api/internal/logging"
	"github.com/ovasilenko/shop_api/internal/mail"
)

// MailService forwards contact-form submissions to a fixed operator address.
type MailService struct {
	Mailer mail.Mailer
	To     string
}

type ContactMail struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func renderContactHTML(in ContactMail) string {
	body := strings.ReplaceAll(html.EscapeString(in.Message), "\n", "<br />")
	return fmt.Sprintf(`<h2>New contact inquiry</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<hr />
<p><strong>Message:</strong></p>
<p>%s</p>`,
		html.EscapeString(in.Name),
		html.EscapeString(in.Email),
		html.EscapeString(in.Subject),
		body,
	)
}

func (s *MailService) SendContact(ctx context.Context, in ContactMail) error {
	msg := mail.Message{
		To:      s.To,
		ReplyTo: in.Email,
		Subject: "[Contact] " + in.Subject,
		HTML:    renderContactHTML(in),
	}

	if err := s.Mailer.Send(ctx, msg); err != nil {
		logging.FromContext(ctx).Error("mail_send_failed", "error", err)
		return err
	}
	return nil
}
