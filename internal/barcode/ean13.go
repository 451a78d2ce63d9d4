// Package barcode implements EAN-13 generation and the scan-buffer handling
// used by the register.
package barcode

import (
	"math/rand"
	"strings"
)

// CheckDigit computes the EAN-13 check digit for a 12-digit sequence using
// the modulo-10 weighted checksum, weights alternating 1,3 starting at the
// first digit. Returns -1 on malformed input.
func CheckDigit(digits string) int {
	if len(digits) != 12 {
		return -1
	}
	sum := 0
	for i, r := range digits {
		if r < '0' || r > '9' {
			return -1
		}
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

// Generate produces a random 13-digit EAN-13 code: 12 random digits plus the
// check digit.
func Generate() string {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	digits := b.String()
	return digits + string(byte('0'+CheckDigit(digits)))
}

// Valid reports whether code is a well-formed EAN-13 barcode.
func Valid(code string) bool {
	if len(code) != 13 {
		return false
	}
	cd := CheckDigit(code[:12])
	return cd >= 0 && code[12] == byte('0'+cd)
}
