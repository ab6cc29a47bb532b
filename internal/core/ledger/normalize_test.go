package ledger

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Formats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"brazilian thousands", "1.234,56", "1234.56"},
		{"us thousands", "1,234.56", "1234.56"},
		{"brazilian round", "1.000,00", "1000"},
		{"currency prefix", "R$ 1.234,56", "1234.56"},
		{"single decimal comma", "1234,5", "1234.5"},
		{"plain dot decimal", "1234.5", "1234.5"},
		{"millions brazilian", "1.234.567,89", "1234567.89"},
		{"millions us", "1,234,567.89", "1234567.89"},
		{"comma with three digits", "12,345", "12.345"},
		{"trailing dot", "5.", "5"},
		{"leading dot", ".5", "0.5"},
		{"surrounding spaces", "  100,00 ", "100"},
		{"int", 7, "7"},
		{"int64", int64(42), "42"},
		{"float", 12.5, "12.5"},
		{"decimal", decimal.RequireFromString("3.14"), "3.14"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tc.raw)
			require.NoError(t, err)
			want := decimal.RequireFromString(tc.want)
			require.Truef(t, want.Equal(got), "Normalize(%v) = %s, want %s", tc.raw, got, want)
		})
	}
}

func TestNormalize_EmptyIsZero(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{"", "   ", nil, math.NaN()} {
		got, err := Normalize(raw)
		require.NoError(t, err)
		require.True(t, got.IsZero())
	}
}

func TestNormalize_UnparseableDegradesToZero(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{"abc", "R$ -", math.Inf(1), struct{}{}} {
		got, err := Normalize(raw)
		require.ErrorIs(t, err, ErrUnparseableAmount)
		require.True(t, got.IsZero())
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1234,50", FormatAmount(decimal.RequireFromString("1234.5")))
	require.Equal(t, "0,00", FormatAmount(decimal.Zero))
	require.Equal(t, "100,00", FormatAmount(decimal.NewFromInt(100)))
	require.Equal(t, "0,13", FormatAmount(decimal.RequireFromString("0.125")))
}
