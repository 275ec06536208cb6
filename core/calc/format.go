package calc

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f with the shortest digits that round-trip. Values in
// [1e-4, 1e16) use positional notation and always carry a decimal point
// ("10.0", "0.5"); others use exponent notation ("1e+16", "1e-05").
func FormatFloat(f float64) string {
	if s, ok := special(f); ok {
		return s
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatFixed renders f with prec digits after the decimal point.
func FormatFixed(f float64, prec int) string {
	if s, ok := special(f); ok {
		return s
	}
	return strconv.FormatFloat(f, 'f', prec, 64)
}

func special(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "nan", true
	case math.IsInf(f, 1):
		return "inf", true
	case math.IsInf(f, -1):
		return "-inf", true
	}
	return "", false
}
