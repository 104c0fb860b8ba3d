package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"parcellocker/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestNotifier(t *testing.T, err error) (*SMTPNotifier, *[]sentMail) {
	t.Helper()
	var sent []sentMail
	ist, loadErr := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, loadErr)

	n := newSMTPNotifier(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "lockers",
		Password: "secret",
		From:     "lockers@example.com",
		FromName: "Keyless Cube",
		Location: ist,
	}, func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)})
		return err
	}, discardLogger())
	return n, &sent
}

func depositPayload() ports.NotificationPayload {
	return ports.NotificationPayload{
		ResidentName:   "Asha Sharma",
		FlatNumber:     "A-101",
		TowerName:      "Tower B",
		SocietyName:    "Green Meadows",
		LockerNumber:   5,
		PackageSize:    "medium",
		TrackingNumber: "AWB123",
		Company:        "BlueDart",
		OTP:            "042917",
		OTPExpiresAt:   time.Date(2026, time.March, 16, 4, 0, 0, 0, time.UTC),
		OccurredAt:     time.Date(2026, time.March, 14, 4, 0, 0, 0, time.UTC),
	}
}

func TestSMTPNotifier_Deposit(t *testing.T) {
	n, sent := newTestNotifier(t, nil)

	res, err := n.Send(context.Background(), "asha@example.com", ports.NotificationDeposit, depositPayload())

	require.NoError(t, err)
	assert.True(t, res.Delivered)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.NotNil(t, mail.auth)
	assert.Equal(t, "lockers@example.com", mail.from)
	assert.Equal(t, []string{"asha@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Package Delivered - Locker 5\r\n")
	assert.Contains(t, mail.msg, `To: "Asha Sharma" <asha@example.com>`)
	assert.Contains(t, mail.msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, mail.msg, "042917")
	assert.Contains(t, mail.msg, "Valid until 16 Mar 2026, 09:30 AM", "expiry is shown in the site zone")
	assert.Contains(t, mail.msg, "Tower B, Green Meadows")
}

func TestSMTPNotifier_Collection(t *testing.T) {
	n, sent := newTestNotifier(t, nil)
	payload := depositPayload()
	payload.OTP = ""

	res, err := n.Send(context.Background(), "asha@example.com", ports.NotificationCollection, payload)

	require.NoError(t, err)
	assert.True(t, res.Delivered)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Subject: Package Collection - Locker 5\r\n")
	assert.Contains(t, (*sent)[0].msg, "Collection Confirmed")
	assert.Contains(t, (*sent)[0].msg, "14 Mar 2026, 09:30 AM")
}

func TestSMTPNotifier_EscapesResidentInput(t *testing.T) {
	n, sent := newTestNotifier(t, nil)
	payload := depositPayload()
	payload.ResidentName = "<script>alert(1)</script>"

	_, err := n.Send(context.Background(), "asha@example.com", ports.NotificationDeposit, payload)

	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.NotContains(t, (*sent)[0].msg, "<script>alert(1)</script></strong>")
	assert.Contains(t, (*sent)[0].msg, "&lt;script&gt;")
}

func TestSMTPNotifier_NoContact(t *testing.T) {
	n, sent := newTestNotifier(t, nil)

	res, err := n.Send(context.Background(), "  ", ports.NotificationDeposit, depositPayload())

	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.Empty(t, *sent)
}

func TestSMTPNotifier_Failures(t *testing.T) {
	t.Run("invalid address", func(t *testing.T) {
		n, sent := newTestNotifier(t, nil)
		_, err := n.Send(context.Background(), "not-an-email", ports.NotificationDeposit, depositPayload())
		assert.ErrorIs(t, err, ErrInvalidContact)
		assert.Empty(t, *sent)
	})

	t.Run("unknown kind", func(t *testing.T) {
		n, _ := newTestNotifier(t, nil)
		_, err := n.Send(context.Background(), "asha@example.com", ports.NotificationKind("sms"), depositPayload())
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("server rejects", func(t *testing.T) {
		n, _ := newTestNotifier(t, errors.New("550 mailbox unavailable"))
		res, err := n.Send(context.Background(), "asha@example.com", ports.NotificationDeposit, depositPayload())
		require.Error(t, err)
		assert.False(t, res.Delivered)
		assert.True(t, strings.Contains(err.Error(), "550"))
	})

	t.Run("context already done", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		n := newSMTPNotifier(SMTPConfig{Host: "smtp.example.com", Port: "25", From: "lockers@example.com"},
			func(string, smtp.Auth, string, []string, []byte) error {
				<-block
				return nil
			}, discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := n.Send(ctx, "asha@example.com", ports.NotificationDeposit, depositPayload())
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, res.Delivered)
	})
}

func TestSMTPNotifier_NoAuthWithoutUsername(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "relay.local", Port: "25", From: "lockers@example.com"}, nil)

	assert.Nil(t, n.auth())
	assert.Equal(t, time.UTC, n.cfg.Location)
	assert.Equal(t, defaultBrand, n.cfg.FromName)
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(discardLogger())

	res, err := n.Send(context.Background(), "asha@example.com", ports.NotificationDeposit, depositPayload())

	require.NoError(t, err)
	assert.False(t, res.Delivered)
}
