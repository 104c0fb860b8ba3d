package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"parcellocker/internal/pkg/errs"
)

var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Mobile is a ten-digit mobile number starting with 6-9.
type Mobile struct {
	value string
}

// NewMobile validates and wraps a mobile number. Surrounding whitespace is
// ignored.
func NewMobile(s string) (Mobile, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Mobile{}, errs.NewValueIsRequiredError("mobile")
	}
	if !mobilePattern.MatchString(trimmed) {
		return Mobile{}, errs.NewValueIsInvalidErrorWithCause(
			"mobile",
			fmt.Errorf("%q is not a 10 digit number starting with 6-9", trimmed),
		)
	}
	return Mobile{value: trimmed}, nil
}

func (m Mobile) String() string {
	return m.value
}

// Masked hides the middle six digits, e.g. 98XXXXXX10.
func (m Mobile) Masked() string {
	if len(m.value) != 10 {
		return m.value
	}
	return m.value[:2] + "XXXXXX" + m.value[8:]
}

// IsZero reports whether the mobile was never constructed.
func (m Mobile) IsZero() bool {
	return m.value == ""
}
