package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparseableAmount is returned alongside a zero value when a monetary scalar cannot be read.
var ErrUnparseableAmount = errors.New("valor monetário não reconhecido")

var (
	misscaleThreshold = decimal.NewFromInt(1_000_000)
	misscaleCeiling   = decimal.NewFromInt(10_000)
	hundred           = decimal.NewFromInt(100)
)

// Normalize converts a raw scalar written in Brazilian ("1.234,56") or US ("1,234.56")
// convention into a decimal. It never panics: empty input yields zero with a nil error,
// and unreadable input yields zero with an error wrapping ErrUnparseableAmount that
// callers report as a warning.
func Normalize(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, nil
		}
		return *v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case string:
		return normalizeString(v)
	case fmt.Stringer:
		return normalizeString(v.String())
	}
	return decimal.Zero, fmt.Errorf("%w: tipo %T", ErrUnparseableAmount, raw)
}

func normalizeFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) {
		return decimal.Zero, nil
	}
	if math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnparseableAmount, f)
	}
	return decimal.NewFromFloat(f), nil
}

func normalizeString(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	// vírgula única seguida de até dois dígitos: formato brasileiro
	if strings.Count(s, ",") == 1 {
		intPart, frac, _ := strings.Cut(s, ",")
		if frac != "" && len(frac) <= 2 && isDigits(frac) {
			digits := keepDigits(intPart)
			if digits == "" {
				digits = "0"
			}
			if d, err := decimal.NewFromString(digits + "." + frac); err == nil {
				return d, nil
			}
		}
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, s)
	if keepDigits(cleaned) == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseableAmount, raw)
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(cleaned, ".") > strings.LastIndex(cleaned, ",") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	if strings.HasSuffix(cleaned, ".") {
		cleaned += "0"
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseableAmount, raw)
	}

	// centavos lidos como unidades inteiras
	if d.GreaterThan(misscaleThreshold) && strings.Contains(s, ",") {
		if last := s[strings.LastIndex(s, ",")+1:]; len(last) <= 2 {
			if scaled := d.Div(hundred); scaled.LessThan(misscaleCeiling) {
				return scaled, nil
			}
		}
	}
	return d, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func keepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatAmount renders d with two fraction digits and a decimal comma ("1234,56").
func FormatAmount(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
