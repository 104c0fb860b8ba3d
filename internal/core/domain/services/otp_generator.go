package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"parcellocker/internal/core/domain/model/delivery"
)

// DefaultOTPValidity is how long a freshly issued OTP stays valid.
const DefaultOTPValidity = 48 * time.Hour

var otpSpace = big.NewInt(1_000_000)

// OTPGenerator issues uniformly random six digit codes. Codes are not unique
// across deliveries; collection always scopes the lookup to one resident.
type OTPGenerator struct {
	validity time.Duration
	random   io.Reader
}

// NewOTPGenerator returns a generator backed by crypto/rand. A non-positive
// validity falls back to DefaultOTPValidity.
func NewOTPGenerator(validity time.Duration) OTPGenerator {
	return NewOTPGeneratorWithSource(validity, rand.Reader)
}

// NewOTPGeneratorWithSource lets tests supply a deterministic entropy source.
func NewOTPGeneratorWithSource(validity time.Duration, random io.Reader) OTPGenerator {
	if validity <= 0 {
		validity = DefaultOTPValidity
	}
	return OTPGenerator{validity: validity, random: random}
}

func (g OTPGenerator) Validity() time.Duration {
	return g.validity
}

// Generate returns a new OTP expiring validity after now.
func (g OTPGenerator) Generate(now time.Time) (delivery.OTP, error) {
	n, err := rand.Int(g.random, otpSpace)
	if err != nil {
		return delivery.OTP{}, fmt.Errorf("generate otp: %w", err)
	}
	return delivery.NewOTP(fmt.Sprintf("%0*d", delivery.OTPLength, n.Int64()), now.Add(g.validity))
}
