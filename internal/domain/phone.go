package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var msisdnPattern = regexp.MustCompile(`^2547\d{8}$`)

// NormalizeMSISDN cleans a Kenyan mobile number into the 2547XXXXXXXX form
// the payment gateway expects. Accepts 07..., +2547... and 2547... inputs.
func NormalizeMSISDN(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if strings.HasPrefix(number, "0") {
		number = "254" + number[1:]
	}

	if !msisdnPattern.MatchString(number) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return number, nil
}
