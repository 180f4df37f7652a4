package amount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larahfelipe/tronbridge/internal/apperr"
)

func TestToPrecision(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"whole native amount", "10", 6, "10000000"},
		{"fractional amount", "10.5", 6, "10500000"},
		{"sub-unit amount", "0.000001", 6, "1"},
		{"defaults to native decimals", "1", 0, "1000000"},
		{"negative decimals fall back to native", "1", -3, "1000000"},
		{"token decimals", "2", 18, "2000000000000000000"},
		{"truncates excess precision", "1.9999999", 6, "1999999"},
		{"zero short-circuits", "0", 6, "0"},
		{"zero with fraction short-circuits", "0.0", 6, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToPrecision(tt.amount, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToPrecision_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"-1", "-0.5", "", "1.2.3", "abc"} {
		t.Run(amount, func(t *testing.T) {
			_, err := ToPrecision(amount, 6)
			assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
		})
	}
}

func TestFromPrecision(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals int
		want     string
	}{
		{"whole result", "10000000", 6, "10"},
		{"fractional result", "10500000", 6, "10.5"},
		{"sub-unit result", "1", 6, "0.000001"},
		{"defaults to native decimals", "1000000", 0, "1"},
		{"large value beyond int64", "123456789012345678901234567890", 6, "123456789012345678901234.56789"},
		{"zero short-circuits", "0", 6, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromPrecision(tt.raw, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromPrecision_InvalidAmount(t *testing.T) {
	for _, raw := range []string{"-1", "", "not-a-number"} {
		t.Run(raw, func(t *testing.T) {
			_, err := FromPrecision(raw, 6)
			assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, amount := range []string{"1", "10.5", "0.000001", "987654321.123456"} {
		t.Run(amount, func(t *testing.T) {
			raw, err := ToPrecision(amount, 6)
			require.NoError(t, err)

			back, err := FromPrecision(raw, 6)
			require.NoError(t, err)
			assert.Equal(t, amount, back)
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "1234567", Display("1234567", "0"))
	assert.Equal(t, "10.5", Display("10.5", "0"))
	assert.Equal(t, "0", Display("0", "0"))
	assert.Equal(t, "0", Display("-5", "0"))
	assert.Equal(t, "0", Display("", "0"))
	assert.Equal(t, "0", Display("garbage", "0"))
	assert.Equal(t, "fallback", Display("0", "fallback"))
}

func TestDisplayInt(t *testing.T) {
	assert.Equal(t, "1234567", DisplayInt(1234567, "0"))
	assert.Equal(t, "0", DisplayInt(0, "0"))
	assert.Equal(t, "0", DisplayInt(-42, "0"))
}
