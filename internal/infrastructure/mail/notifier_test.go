package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"techpulse/internal/config"
)

func TestPublishDigest(t *testing.T) {
	t.Parallel()

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	n := NewNotifier(config.MailConfig{
		Host:     "smtp.example.com",
		Port:     2525,
		Username: "digest",
		Password: "secret",
		From:     "digest@example.com",
	}).WithSender(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		return nil
	})

	err := n.PublishDigest(context.Background(), "cto@example.com", "TechPulse daily digest", "line one\nline two")
	if err != nil {
		t.Fatalf("PublishDigest error: %v", err)
	}

	if gotAddr != "smtp.example.com:2525" || gotFrom != "digest@example.com" {
		t.Fatalf("unexpected envelope: addr=%s from=%s", gotAddr, gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "cto@example.com" {
		t.Fatalf("unexpected recipients: %v", gotTo)
	}
	if gotAuth == nil {
		t.Fatal("expected plain auth when username is set")
	}
	for _, want := range []string{"To: cto@example.com\r\n", "Subject: TechPulse daily digest\r\n", "Content-Type: text/plain", "\r\n\r\nline one\r\nline two"} {
		if !strings.Contains(gotMsg, want) {
			t.Fatalf("message missing %q:\n%s", want, gotMsg)
		}
	}
}

func TestPublishDigestErrors(t *testing.T) {
	t.Parallel()

	disabled := NewNotifier(config.MailConfig{})
	if err := disabled.PublishDigest(context.Background(), "a@example.com", "s", "b"); err == nil {
		t.Fatal("expected misconfiguration error")
	}

	relayErr := errors.New("550 mailbox unavailable")
	failing := NewNotifier(config.MailConfig{Host: "smtp.example.com", From: "d@example.com"}).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error { return relayErr })
	if err := failing.PublishDigest(context.Background(), "a@example.com", "s", "b"); !errors.Is(err, relayErr) {
		t.Fatalf("expected relay error, got %v", err)
	}

	if err := failing.PublishDigest(context.Background(), "a@example.com\r\nBcc: x@example.com", "s", "b"); err == nil {
		t.Fatal("expected header injection to be rejected")
	}
}
