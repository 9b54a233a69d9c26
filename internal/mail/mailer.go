package mail

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/ovasilenko/shop_api/internal/logging"
)

type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   user,
	}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Reply-To", msg.ReplyTo)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}

// LogMailer stands in for SMTP in development and tests.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	logging.FromContext(ctx).Info("mail_logged",
		"to", msg.To, "reply_to", msg.ReplyTo, "subject", msg.Subject)
	return nil
}
