// Package amount converts asset amounts between human-decimal and
// integer-precision representations. All math is done on decimal strings
// and math/big so values beyond the native integer range never lose
// precision, and output is always a plain non-grouped decimal string.
package amount

import (
	"math/big"
	"strings"

	"github.com/larahfelipe/tronbridge/internal/apperr"
)

// NativeDecimals is the decimal count of the chain's native coin (1 TRX = 1e6 sun).
const NativeDecimals = 6

// NativeSymbol is the native coin ticker, used as the asset id fallback.
const NativeSymbol = "TRX"

// ToPrecision converts a human-decimal amount to its integer base-unit
// representation, e.g. "10.5" at 6 decimals -> "10500000". Non-positive
// decimals fall back to the native coin's. A zero amount short-circuits
// to "0" without scaling.
func ToPrecision(amount string, decimals int) (string, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" || strings.HasPrefix(amount, "-") {
		return "", apperr.ErrInvalidAmount
	}
	if decimals <= 0 {
		decimals = NativeDecimals
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return "", apperr.ErrInvalidAmount
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	// Pad or truncate the fractional part to the asset's decimal count.
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else {
		frac = frac[:decimals]
	}

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		return "0", nil
	}

	result, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return "", apperr.ErrInvalidAmount
	}

	return result.String(), nil
}

// FromPrecision converts an integer base-unit amount back to its
// human-decimal representation, e.g. "10500000" at 6 decimals -> "10.5".
func FromPrecision(raw string, decimals int) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "-") {
		return "", apperr.ErrInvalidAmount
	}
	if decimals <= 0 {
		decimals = NativeDecimals
	}

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return "", apperr.ErrInvalidAmount
	}
	if value.Sign() == 0 {
		return "0", nil
	}

	str := value.String()
	if len(str) <= decimals {
		str = strings.Repeat("0", decimals-len(str)+1) + str
	}

	insertAt := len(str) - decimals
	whole := str[:insertAt]
	frac := strings.TrimRight(str[insertAt:], "0")

	if frac == "" {
		return whole, nil
	}
	return whole + "." + frac, nil
}

// Display renders a raw numeric string as a plain non-grouped decimal
// string, or returns the fallback when the value is empty, unparsable or
// non-positive. Every {raw, fmt} pair in the API responses goes through
// this single path.
func Display(raw string, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	value, ok := new(big.Float).SetString(raw)
	if !ok || value.Sign() <= 0 {
		return fallback
	}

	return strings.TrimPrefix(raw, "+")
}

// DisplayInt is Display for int64 inputs.
func DisplayInt(raw int64, fallback string) string {
	if raw <= 0 {
		return fallback
	}
	return big.NewInt(raw).String()
}
