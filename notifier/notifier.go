package notifier

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// ErrDeliveryTimeout is returned when the SMTP server does not answer
// within the configured timeout. Treated like any other delivery failure.
var ErrDeliveryTimeout = errors.New("notification delivery timed out")

// Dispatcher is the outbound notification boundary. A failed Send must
// never fail a booking or a status transition; callers log and move on.
type Dispatcher interface {
	Send(to, subject, htmlBody string) error
}

// Mailer sends HTML email over SMTP.
type Mailer struct {
	from    string
	timeout time.Duration

	// send is swapped out in tests.
	send func(m *gomail.Message) error
}

func NewMailer(host string, port int, user, pass string, timeout time.Duration) *Mailer {
	d := gomail.NewDialer(host, port, user, pass)
	return &Mailer{
		from:    user,
		timeout: timeout,
		send:    func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

// Send delivers one message, bounded by the mailer's timeout. A timed-out
// dial is abandoned to its goroutine; gomail closes the connection when the
// dial eventually returns.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()

	select {
	case err := <-done:
		return err
	case <-time.After(m.timeout):
		return fmt.Errorf("sending to %s: %w", to, ErrDeliveryTimeout)
	}
}
