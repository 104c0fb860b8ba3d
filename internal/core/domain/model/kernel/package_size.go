package kernel

import (
	"fmt"
	"strings"

	"parcellocker/internal/pkg/errs"
)

// PackageSize is the size class shared by packages and lockers. A package is
// only ever placed in a locker of exactly its size.
type PackageSize string

const (
	SizeSmall  PackageSize = "small"
	SizeMedium PackageSize = "medium"
	SizeLarge  PackageSize = "large"
)

// AllPackageSizes lists the sizes in display order.
func AllPackageSizes() []PackageSize {
	return []PackageSize{SizeSmall, SizeMedium, SizeLarge}
}

// ParsePackageSize accepts the size names case-insensitively, ignoring
// surrounding whitespace.
func ParsePackageSize(s string) (PackageSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("package size")
	}

	size := PackageSize(strings.ToLower(trimmed))
	if err := size.Validate(); err != nil {
		return "", err
	}
	return size, nil
}

// Validate rejects anything other than small, medium or large.
func (s PackageSize) Validate() error {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"package size",
			fmt.Errorf("%q must be one of small, medium, large", string(s)),
		)
	}
}

func (s PackageSize) String() string {
	return string(s)
}
