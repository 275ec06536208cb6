package ops

import (
	"strconv"
	"strings"
)

// parseNumber accepts either "," or "." as the decimal separator.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// parseArgs splits args on whitespace and parses the first n fields.
// ok is false when fewer than n fields are present; extra fields are ignored.
func parseArgs(args string, n int) (vals []float64, ok bool, err error) {
	fields := strings.Fields(args)
	if len(fields) < n {
		return nil, false, nil
	}
	vals = make([]float64, n)
	for i := 0; i < n; i++ {
		if vals[i], err = parseNumber(fields[i]); err != nil {
			return nil, true, err
		}
	}
	return vals, true, nil
}
