package barcode

import (
	"strings"

	"stitchpos/internal/domain"
)

// MinLength is the shortest buffer a scanner flush will accept; anything
// shorter is treated as stray keystrokes.
const MinLength = 4

// Scanner accumulates keystrokes from a wedge-style barcode scanner. The
// device types the code and terminates with Enter; a pause in input also ends
// a scan, which the caller signals with Flush.
type Scanner struct {
	buf strings.Builder
}

// Append adds one keystroke. A terminator ("\n", "\r" or "Enter") completes
// the scan and returns the buffered code.
func (s *Scanner) Append(key string) (code string, done bool) {
	if key == "\n" || key == "\r" || key == "Enter" {
		return s.take(0), true
	}
	if len(key) == 1 {
		s.buf.WriteString(key)
	}
	return "", false
}

// Flush ends the current scan on input pause, returning the code only when
// the buffer reached the minimum length.
func (s *Scanner) Flush() (code string, ok bool) {
	c := s.take(MinLength)
	return c, c != ""
}

func (s *Scanner) take(min int) string {
	c := s.buf.String()
	s.buf.Reset()
	if len(c) < min {
		return ""
	}
	return c
}

// Resolve matches a scanned code against the inventory: exact id first, then
// case-insensitive name substring. Returns nil when nothing matches.
func Resolve(code string, inventory []domain.Product) *domain.Product {
	lower := strings.ToLower(code)
	for i := range inventory {
		if inventory[i].ID == code ||
			inventory[i].Barcode == code ||
			strings.Contains(strings.ToLower(inventory[i].Name), lower) {
			p := inventory[i]
			return &p
		}
	}
	return nil
}
