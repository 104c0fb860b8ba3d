package services

import (
	"time"

	"parcellocker/internal/core/domain/model/delivery"
)

// DefaultMaxOTPAttempts is the number of wrong codes a delivery tolerates.
const DefaultMaxOTPAttempts = 3

// OTPOutcome classifies a collect attempt.
type OTPOutcome int

const (
	OTPUnknown OTPOutcome = iota
	// OTPNoActiveDelivery: the resident has nothing waiting.
	OTPNoActiveDelivery
	// OTPAccepted: Verdict.Delivery may be collected.
	OTPAccepted
	// OTPLockedOut: every open delivery is out of attempts, or the code
	// belongs to one that is.
	OTPLockedOut
	// OTPRejected: wrong or expired code, attempts remain.
	OTPRejected
)

func (o OTPOutcome) String() string {
	switch o {
	case OTPNoActiveDelivery:
		return "no_active_delivery"
	case OTPAccepted:
		return "accepted"
	case OTPLockedOut:
		return "locked_out"
	case OTPRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// OTPVerdict is the result of OTPVerifier.Verify.
type OTPVerdict struct {
	Outcome OTPOutcome
	// Delivery is the matched delivery when Outcome is OTPAccepted.
	Delivery *delivery.Delivery
	// Attempt is the highest attempt counter among the charged deliveries
	// that remain open, or among all of them once none does.
	Attempt int
	// Charged lists the deliveries whose counter was incremented. They must
	// be persisted even though the attempt failed.
	Charged []*delivery.Delivery
}

// OTPVerifier checks a submitted code against a resident's deposited
// deliveries at one location.
//
// Attempts are counted per delivery. A wrong code charges one attempt to
// every delivery still open, because the resident could have meant any of
// them; a delivery stops being charged once it reaches the limit. A correct
// code for a locked out delivery is refused without comparison leaking
// anything beyond "exceeded".
type OTPVerifier struct {
	maxAttempts int
}

// NewOTPVerifier returns a verifier with the given limit, or
// DefaultMaxOTPAttempts when maxAttempts is not positive.
func NewOTPVerifier(maxAttempts int) OTPVerifier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxOTPAttempts
	}
	return OTPVerifier{maxAttempts: maxAttempts}
}

func (v OTPVerifier) MaxAttempts() int {
	return v.maxAttempts
}

// Verify decides the outcome for code at now. deliveries should be ordered
// oldest first; when two open deliveries share a code, the oldest is taken.
func (v OTPVerifier) Verify(deliveries []*delivery.Delivery, code string, now time.Time) (OTPVerdict, error) {
	var (
		deposited []*delivery.Delivery
		open      []*delivery.Delivery
	)
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			return OTPVerdict{}, err
		}
		if d.Status() != delivery.Deposited {
			continue
		}
		deposited = append(deposited, d)
		if !d.IsLockedOut(v.maxAttempts) {
			open = append(open, d)
		}
	}

	if len(deposited) == 0 {
		return OTPVerdict{Outcome: OTPNoActiveDelivery}, nil
	}
	if len(open) == 0 {
		return OTPVerdict{Outcome: OTPLockedOut}, nil
	}

	for _, d := range open {
		if d.OTP().Accepts(code, now) {
			return OTPVerdict{Outcome: OTPAccepted, Delivery: d}, nil
		}
	}

	for _, d := range deposited {
		if d.IsLockedOut(v.maxAttempts) && d.OTP().Equals(code) {
			return OTPVerdict{Outcome: OTPLockedOut}, nil
		}
	}

	return v.charge(open)
}

func (v OTPVerifier) charge(open []*delivery.Delivery) (OTPVerdict, error) {
	verdict := OTPVerdict{Outcome: OTPLockedOut, Charged: make([]*delivery.Delivery, 0, len(open))}
	highestOpen := 0

	for _, d := range open {
		attempt, err := d.RegisterFailedAttempt(v.maxAttempts)
		if err != nil {
			return OTPVerdict{}, err
		}
		verdict.Charged = append(verdict.Charged, d)
		verdict.Attempt = max(verdict.Attempt, attempt)
		if !d.IsLockedOut(v.maxAttempts) {
			verdict.Outcome = OTPRejected
			highestOpen = max(highestOpen, attempt)
		}
	}

	// Only collectable deliveries count toward the reported attempt.
	if verdict.Outcome == OTPRejected {
		verdict.Attempt = highestOpen
	}

	return verdict, nil
}
