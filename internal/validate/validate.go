package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"jerseystore/internal/domain"
)

var (
	// Postal codes: PIN, ZIP, ZIP+4 and most alphanumeric formats.
	reZip   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 -]{1,8}[A-Za-z0-9]$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSize  = regexp.MustCompile(`^[A-Z0-9]{1,6}$`)
	reCat   = regexp.MustCompile(`^[A-Za-z][A-Za-z -]{0,31}$`)
)

const MaxQty = 50

func Zip(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reZip.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a product identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Size normalizes a size label to upper case.
func Size(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reSize.MatchString(s)
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCat.MatchString(s)
}

func Qty(n int) bool { return n >= 1 && n <= MaxQty }

func Rating(n int) bool { return n >= 1 && n <= 5 }

// Text trims s and requires 1..max runes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n == 0 || n > max {
		return "", false
	}
	return s, true
}

// Comment is like Text but may be empty.
func Comment(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) <= max
}

// PaymentMethod maps loose client labels onto the canonical ones.
func PaymentMethod(s string) (string, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "upi":
		return domain.PaymentUPI, true
	case "credit card", "card", "creditcard":
		return domain.PaymentCreditCard, true
	case "cash on delivery", "cod":
		return domain.PaymentCashOnDelivery, true
	}
	return "", false
}

// Password enforces the admin password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
