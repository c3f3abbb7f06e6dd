// Package money converts between decimal amount strings and integer cents.
// Amounts carry two implied fractional digits end to end; nothing here ever
// goes through a binary float.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents parses strings like "500", "6000000.00" or "12.5" into cents.
// At most two fractional digits are accepted; negatives are rejected.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}

	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: at most 2 decimal places", ErrInvalidAmount)
	}
	// Both parts must be bare ASCII digits. ParseInt alone is too loose: it
	// admits a sign, so "0.-1" would slip through as negative cents.
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if w > (1<<62)/100 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	f := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	return w*100 + f, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatCents renders cents as a decimal string with two fractional digits.
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
