package ports

import (
	"context"
	"time"
)

// NotificationKind selects the message template.
type NotificationKind string

const (
	NotificationDeposit    NotificationKind = "deposit"
	NotificationCollection NotificationKind = "collection"
)

// NotificationPayload carries the delivery metadata rendered into a message.
type NotificationPayload struct {
	ResidentName   string
	FlatNumber     string
	TowerName      string
	SocietyName    string
	LockerNumber   int
	PackageSize    string
	TrackingNumber string
	Company        string
	OTP            string
	OTPExpiresAt   time.Time
	OccurredAt     time.Time
}

// NotificationResult reports whether the message left the system.
type NotificationResult struct {
	Delivered bool
}

// Notifier sends resident notifications. An empty contact is not an error:
// it yields Delivered=false. Callers never fail an operation on a notifier
// error; they record it and move on.
type Notifier interface {
	Send(ctx context.Context, contact string, kind NotificationKind, payload NotificationPayload) (NotificationResult, error)
}

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function such as time.Now to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
