package receipt

import (
	"strconv"
	"strings"
)

// Amount is a monetary value in dollars with cent precision. All currency
// arithmetic in this package goes through Amount so the representation can
// later move to fixed-point decimal without touching the algorithms. It is
// binary floating point underneath: proportional tax and tip splits can
// carry sub-cent error.
type Amount float64

// ParseAmount reads a monetary value from user- or OCR-supplied text.
// It strips a leading dollar sign and thousands separators. Anything that
// still fails to parse is treated as zero; edit surfaces are never shown
// a numeric error.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Amount(v)
}

// Split divides the amount evenly between n people. n must be positive.
func (a Amount) Split(n int) Amount {
	return a / Amount(n)
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
