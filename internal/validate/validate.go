package validate

import (
	"regexp"
	"strconv"
	"strings"

	"stitchpos/internal/domain"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reBarcode = regexp.MustCompile(`^[0-9]{13}$`)
	rePhone   = regexp.MustCompile(`^[0-9+() -]{7,20}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	} // optional
	return s, rePhone.MatchString(s)
}

// Category validates the product category enum.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case domain.CategoryService, domain.CategoryThread, domain.CategoryBlank, domain.CategorySupply:
		return s, true
	}
	return "", false
}

// Price parses a non-negative decimal.
func Price(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// Stock parses a non-negative integer.
func Stock(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func Unit(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "item"
	}
	return s, len(s) <= 20
}

// Barcode validates the shape only; the check digit is the barcode package's
// business.
func Barcode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	} // optional
	return s, reBarcode.MatchString(s)
}

// Password enforces a simple strength window for login checks.
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
