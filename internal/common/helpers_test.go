package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		atomic   int64
		decimals int
		want     string
	}{
		{0, 12, "0.000000000000"},
		{1, 12, "0.000000000001"},
		{1_500_000_000_000, 12, "1.500000000000"},
		{-1_500_000_000_000, 12, "-1.500000000000"},
		{24981836, 9, "0.024981836"},
		{42, 0, "42"},
		{math.MinInt64, 0, "-9223372036854775808"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.atomic, tt.decimals))
	}
	assert.Equal(t, "18446744.073709551615", FormatUnsigned(math.MaxUint64, 12))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		decimals int
		want     int64
	}{
		{"1", 12, 1_000_000_000_000},
		{"1.5", 12, 1_500_000_000_000},
		{" -0.000000000001 ", 12, -1},
		{".25", 2, 25},
		{"0.024981836", 9, 24981836},
		{"1.999", 2, 199},
		{"-9223372036854775808", 0, math.MinInt64},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in, tt.decimals)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "-", "abc", "1.2.3", "1.-2", "9223372036854775808", "99999999999"} {
		_, err := ParseAmount(bad, 12)
		assert.Error(t, err, bad)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 7, -7, 123456789012345, -987654321} {
		got, err := ParseAmount(FormatAmount(v, DefaultDecimals), DefaultDecimals)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestCompareAmounts(t *testing.T) {
	cmp, err := CompareAmounts("1.5", "2", DefaultDecimals)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareAmounts("2.000", "2", DefaultDecimals)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareAmounts("-1", "-3", DefaultDecimals)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = CompareAmounts("x", "1", DefaultDecimals)
	assert.Error(t, err)
}
