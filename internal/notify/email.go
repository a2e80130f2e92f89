package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamed0406/pingwatch/internal/domain"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Email delivers payloads over SMTP (STARTTLS on the configured port).
type Email struct {
	Config SMTPConfig

	// send is overridable in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(cfg SMTPConfig) *Email {
	if cfg.Host == "" || cfg.From == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Email{Config: cfg, send: smtp.SendMail}
}

func (e *Email) Send(ctx context.Context, p domain.NotificationPayload) error {
	if e == nil || e.Config.Host == "" {
		return errors.New("email disabled")
	}
	if len(p.Recipients) == 0 {
		return errors.New("email: no recipients in payload")
	}

	var auth smtp.Auth
	if e.Config.Username != "" {
		auth = smtp.PlainAuth("", e.Config.Username, e.Config.Password, e.Config.Host)
	}

	addr := net.JoinHostPort(e.Config.Host, strconv.Itoa(e.Config.Port))
	// net/smtp has no context hook; cancellation only skips the dial.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.send(addr, auth, e.Config.From, p.Recipients, e.message(p)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// message renders the payload as a plain-text RFC 5322 message with a
// unique Message-ID so mail clients don't thread separate alerts together.
func (e *Email) message(p domain.NotificationPayload) []byte {
	now := time.Now()

	var b strings.Builder
	write := func(k, v string) { b.WriteString(k + ": " + v + "\r\n") }

	write("From", e.Config.From)
	write("To", strings.Join(p.Recipients, ", "))
	write("Subject", p.Subject)
	write("Date", now.Format(time.RFC1123Z))
	write("Message-ID", fmt.Sprintf("<%s.%d@%s>", uuid.New().String(), now.UnixNano(), e.Config.Host))
	write("MIME-Version", "1.0")
	write("Content-Type", `text/plain; charset="UTF-8"`)

	b.WriteString("\r\n")
	b.WriteString(strings.Join(p.BodyLines, "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
