package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NumberPrefix returns the shared prefix of all invoice numbers issued in a
// given year, e.g. "INV-2026-".
func NumberPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s-%d-", prefix, year)
}

// FormatNumber renders a full invoice number, e.g. "INV-2026-0007".
func FormatNumber(prefix string, year, sequence, width int) string {
	return fmt.Sprintf("%s%0*d", NumberPrefix(prefix, year), width, sequence)
}

// SequenceFromNumber extracts the numeric sequence from an invoice number
// issued under the given year prefix. It returns 0 when the number does not
// belong to that prefix or the suffix is not numeric.
func SequenceFromNumber(number, prefix string, year int) int {
	suffix, ok := strings.CutPrefix(number, NumberPrefix(prefix, year))
	if !ok {
		return 0
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}
