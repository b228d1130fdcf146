package model

import (
	"database/sql/driver"
	"strings"

	"github.com/shopspring/decimal"
)

// FundDetails currency-formatted fund figures as entered by the submitter,
// e.g. "Rs. 1,20,000".
type FundDetails struct {
	Allocated string `json:"allocated"`
	Released  string `json:"released"`
	Utilized  string `json:"utilized"`
	Remaining string `json:"remaining"`
}

// Scan decodes the JSONB column.
func (f *FundDetails) Scan(src interface{}) error {
	if src == nil {
		*f = FundDetails{}
		return nil
	}
	return scanJSON(src, f, "FundDetails")
}

// Value encodes the JSONB column.
func (f FundDetails) Value() (driver.Value, error) {
	return valueJSON(f)
}

// DerivedRemaining computes allocated - utilized. ok is false when either figure
// has no digits.
func (f FundDetails) DerivedRemaining() (string, bool) {
	allocated, ok := ParseAmount(f.Allocated)
	if !ok {
		return "", false
	}
	utilized, ok := ParseAmount(f.Utilized)
	if !ok {
		return "", false
	}
	return FormatAmount(allocated.Sub(utilized)), true
}

// ParseAmount strips everything except digits, the decimal point and a leading
// minus sign before parsing. "Rs. 1,20,000" parses as 120000.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSpace(s)

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" || clean == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders an amount as "Rs. 1,234,567" (western grouping, as the
// field tablets' toLocaleString produced).
func FormatAmount(d decimal.Decimal) string {
	neg := d.IsNegative()
	abs := d.Abs()
	s := abs.StringFixed(0)
	if !abs.IsInteger() {
		s = abs.StringFixed(2)
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "Rs. "
	if neg {
		out += "-"
	}
	return out + b.String() + frac
}
