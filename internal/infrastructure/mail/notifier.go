package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"techpulse/internal/config"
	"techpulse/internal/ports"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Notifier sends digests as plain-text mail through an SMTP relay.
type Notifier struct {
	cfg  config.MailConfig
	send SendFunc
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers the relay settings.
func NewNotifier(cfg config.MailConfig) *Notifier {
	return &Notifier{cfg: cfg, send: smtp.SendMail}
}

// WithSender swaps the transport, mostly for tests.
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.send = send
	return n
}

// PublishDigest mails body to a single recipient.
func (n *Notifier) PublishDigest(ctx context.Context, to, subject, body string) error {
	if !n.cfg.Enabled() || n.send == nil {
		return fmt.Errorf("mail notifier misconfigured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	port := n.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(port))

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{to}, buildMessage(n.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("send digest to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var msg bytes.Buffer
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return msg.Bytes()
}
