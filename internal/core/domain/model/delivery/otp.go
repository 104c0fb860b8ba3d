package delivery

import (
	"crypto/subtle"
	"fmt"
	"regexp"
	"time"

	"parcellocker/internal/pkg/errs"
)

// OTPLength is the number of digits in every one-time password.
const OTPLength = 6

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// ValidateOTPCode checks the shape of a submitted code. Leading zeros are
// significant, so codes are always strings.
func ValidateOTPCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("otp")
	}
	if !otpPattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("otp", fmt.Errorf("must be exactly %d digits", OTPLength))
	}
	return nil
}

// OTP is a delivery's one-time password and the instant it stops being valid.
type OTP struct {
	code      string
	expiresAt time.Time
}

func NewOTP(code string, expiresAt time.Time) (OTP, error) {
	if err := ValidateOTPCode(code); err != nil {
		return OTP{}, err
	}
	if expiresAt.IsZero() {
		return OTP{}, errs.NewValueIsRequiredError("otp expiry")
	}
	return OTP{code: code, expiresAt: expiresAt}, nil
}

func (o OTP) Code() string         { return o.code }
func (o OTP) ExpiresAt() time.Time { return o.expiresAt }

// IsExpired reports whether now is at or past the expiry.
func (o OTP) IsExpired(now time.Time) bool {
	return !now.Before(o.expiresAt)
}

// Equals compares the code in constant time, ignoring expiry.
func (o OTP) Equals(code string) bool {
	return len(code) == len(o.code) && subtle.ConstantTimeCompare([]byte(code), []byte(o.code)) == 1
}

// Accepts reports whether code matches and the OTP is still valid at now.
func (o OTP) Accepts(code string, now time.Time) bool {
	return o.Equals(code) && !o.IsExpired(now)
}

func (o OTP) IsZero() bool {
	return o.code == ""
}
