package token

import (
	"math/big"
	"strings"
)

// DefaultDecimals is used when the token's decimals are not yet known.
const DefaultDecimals = 18

// ParseAmount converts a human-readable decimal string into the token's
// base units. "1.5" with decimals=18 becomes 1500000000000000000.
//
// The string must be a non-negative decimal number with at most decimals
// fractional digits. Empty, negative, or otherwise malformed input returns
// ErrInvalidAmount. Zero is valid; whether a zero-value call is meaningful
// is the contract's decision, not this layer's.
func ParseAmount(s string, decimals int) (*big.Int, error) {
	if s == "" || decimals < 0 {
		return nil, ErrInvalidAmount
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, ErrInvalidAmount
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, ErrInvalidAmount
	}
	if len(frac) > decimals {
		return nil, ErrInvalidAmount
	}

	// Scale: whole*10^decimals + frac padded to decimals digits.
	padded := frac + strings.Repeat("0", decimals-len(frac))

	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, ErrInvalidAmount
	}
	n.Mul(n, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	if padded != "" {
		f, ok := new(big.Int).SetString(padded, 10)
		if !ok {
			return nil, ErrInvalidAmount
		}
		n.Add(n, f)
	}
	return n, nil
}

// FormatAmount renders a base-unit value as a decimal string, trimming
// trailing fractional zeros. The inverse of ParseAmount.
func FormatAmount(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	if decimals <= 0 {
		return v.String()
	}

	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(v, div, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	fs := frac.String()
	if len(fs) < decimals {
		fs = strings.Repeat("0", decimals-len(fs)) + fs
	}
	fs = strings.TrimRight(fs, "0")
	return whole.String() + "." + fs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
