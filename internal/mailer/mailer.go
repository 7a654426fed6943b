// Package mailer wraps SMTP dispatch for report emails.
package mailer

import (
	"errors"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// ErrDisabled is returned by Send when no SMTP host is configured.
var ErrDisabled = errors.New("mailer: no smtp host configured")

// Mailer sends report emails over SMTP.  A zero Host disables sending,
// which keeps local development working without a mail account.
type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func New(host string, port int, user, pass string) *Mailer {
	return &Mailer{Host: host, Port: port, User: user, Pass: pass, From: user}
}

// Enabled reports whether the mailer has an SMTP host configured.
func (m *Mailer) Enabled() bool { return m != nil && m.Host != "" }

// Send delivers one email.  Attachment is optional; when present it is
// attached under attachmentName.
func (m *Mailer) Send(to, subject, body, attachmentName string, attachment []byte) error {
	if !m.Enabled() {
		return ErrDisabled
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if len(attachment) > 0 {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return d.DialAndSend(msg)
}
