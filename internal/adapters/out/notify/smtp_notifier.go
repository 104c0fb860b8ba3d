package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"parcellocker/internal/core/ports"
)

var (
	ErrUnknownKind    = errors.New("unknown notification kind")
	ErrInvalidContact = errors.New("invalid email address")
)

const defaultBrand = "Parcel Locker"

// SMTPConfig describes the outgoing mail server. Username may be empty for
// relays that accept unauthenticated mail.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	// Location formats OTP expiry and collection times. Defaults to UTC.
	Location *time.Location
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier renders HTML email and hands it to an SMTP server.
type SMTPNotifier struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
	logger   *slog.Logger
}

func NewSMTPNotifier(cfg SMTPConfig, logger *slog.Logger) *SMTPNotifier {
	return newSMTPNotifier(cfg, smtp.SendMail, logger)
}

func newSMTPNotifier(cfg SMTPConfig, send sendMailFunc, logger *slog.Logger) *SMTPNotifier {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultBrand
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPNotifier{cfg: cfg, sendMail: send, logger: logger.With("component", "smtp_notifier")}
}

func (n *SMTPNotifier) Send(
	ctx context.Context,
	contact string,
	kind ports.NotificationKind,
	payload ports.NotificationPayload,
) (ports.NotificationResult, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ports.NotificationResult{}, nil
	}

	to, err := mail.ParseAddress(contact)
	if err != nil {
		return ports.NotificationResult{}, fmt.Errorf("%w: %v", ErrInvalidContact, err)
	}

	msg, err := render(kind, payload, n.cfg.FromName, n.cfg.Location)
	if err != nil {
		return ports.NotificationResult{}, err
	}

	raw := n.compose(to, payload.ResidentName, msg)

	// net/smtp has no context support; the send keeps running in the
	// background if ctx ends first.
	done := make(chan error, 1)
	go func() {
		done <- n.sendMail(net.JoinHostPort(n.cfg.Host, n.cfg.Port), n.auth(), n.cfg.From, []string{to.Address}, raw)
	}()

	select {
	case <-ctx.Done():
		return ports.NotificationResult{}, ctx.Err()
	case err = <-done:
	}
	if err != nil {
		return ports.NotificationResult{}, fmt.Errorf("send %s email: %w", kind, err)
	}

	n.logger.InfoContext(ctx, "email sent", "kind", string(kind), "locker_number", payload.LockerNumber)
	return ports.NotificationResult{Delivered: true}, nil
}

func (n *SMTPNotifier) auth() smtp.Auth {
	if n.cfg.Username == "" {
		return nil
	}
	return smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
}

func (n *SMTPNotifier) compose(to *mail.Address, name string, msg message) []byte {
	from := mail.Address{Name: n.cfg.FromName, Address: n.cfg.From}
	if to.Name == "" {
		to = &mail.Address{Name: name, Address: to.Address}
	}

	var b strings.Builder
	b.WriteString("From: " + from.String() + "\r\n")
	b.WriteString("To: " + to.String() + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
