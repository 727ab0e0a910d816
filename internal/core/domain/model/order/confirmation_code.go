package order

import (
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"

	"montarota/internal/pkg/errs"
)

const (
	CodeMin = 100000
	CodeMax = 999999
)

// ConfirmationCode is the 6-digit one-time code the customer tells the courier on delivery.
type ConfirmationCode struct {
	value string
}

// NewConfirmationCode validates a code in [CodeMin, CodeMax].
func NewConfirmationCode(value int) (ConfirmationCode, error) {
	if value < CodeMin || value > CodeMax {
		return ConfirmationCode{}, errs.NewValueIsOutOfRangeError("confirmation_code", value, CodeMin, CodeMax)
	}
	return ConfirmationCode{value: strconv.Itoa(value)}, nil
}

// ParseConfirmationCode restores a code from its stored string form.
func ParseConfirmationCode(s string) (ConfirmationCode, error) {
	n, err := strconv.Atoi(s)
	if err != nil || len(s) != 6 {
		return ConfirmationCode{}, errs.NewValueIsInvalidErrorWithCause("confirmation_code", fmt.Errorf("%q is not a 6-digit code", s))
	}
	return NewConfirmationCode(n)
}

func (c ConfirmationCode) String() string {
	return c.value
}

func (c ConfirmationCode) IsZero() bool {
	return c.value == ""
}

// Matches compares the code entered by a customer in constant time.
func (c ConfirmationCode) Matches(input string) bool {
	if c.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(strings.TrimSpace(input))) == 1
}
