package common

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDecimals is the number of decimals of one coin (atomic units per coin = 10^12)
const DefaultDecimals = 12

// FormatAmount converts a signed amount of atomic units to a decimal string
// without float precision loss.
// Example: FormatAmount(-1500000000000, 12) = "-1.500000000000"
func FormatAmount(atomic int64, decimals int) string {
	if atomic < 0 {
		// two's complement negation is exact for MinInt64 as uint64
		return "-" + formatWithDecimals(uint64(-atomic), decimals)
	}
	return formatWithDecimals(uint64(atomic), decimals)
}

// FormatUnsigned converts atomic units (fees, unconfirmed amounts) to a decimal string
func FormatUnsigned(atomic uint64, decimals int) string {
	return formatWithDecimals(atomic, decimals)
}

// ParseAmount converts a decimal string to signed atomic units. Digits past
// decimals are truncated.
func ParseAmount(s string, decimals int) (int64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	v, err := parseWithDecimals(s, decimals)
	if err != nil {
		return 0, err
	}
	if negative {
		if v > uint64(math.MaxInt64)+1 {
			return 0, fmt.Errorf("amount out of range")
		}
		return int64(-v), nil
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("amount out of range")
	}
	return int64(v), nil
}

// CompareAmounts compares two decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals int) (int, error) {
	aVal, err := ParseAmount(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseAmount(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)
	if decimals <= 0 {
		return s
	}

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("0.024981836", 9) = 24981836
func parseWithDecimals(s string, decimals int) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty string")
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(frac, ".") {
		return 0, errors.New("invalid decimal format")
	}
	if whole == "" {
		whole = "0"
	}
	if strings.HasPrefix(frac, "+") || strings.HasPrefix(frac, "-") {
		return 0, errors.New("invalid decimal format")
	}

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	return strconv.ParseUint(whole+frac, 10, 64)
}
