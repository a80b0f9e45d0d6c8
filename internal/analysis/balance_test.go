package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		valid   bool
		wantErr bool
	}{
		{"plain integer", "1000", "1000", true, false},
		{"decimal", "1234.56", "1234.56", true, false},
		{"thousands separators", "1,234,567.89", "1234567.89", true, false},
		{"currency sign", "$500.25", "500.25", true, false},
		{"accountant negative", "(750.10)", "-750.1", true, false},
		{"surrounding space", "  42  ", "42", true, false},
		{"empty is null not error", "", "", false, false},
		{"garbage errors", "n/a", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got.Valid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"integral drops point", "1000.00", "1000"},
		{"one trailing zero stripped", "1000.50", "1000.5"},
		{"two decimals kept", "1000.12", "1000.12"},
		{"rounded to two decimals", "99.999", "100"},
		{"negative integral", "-250.00", "-250"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			got := FormatBalance(decimal.NullDecimal{Decimal: d, Valid: true})
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("null renders as zero", func(t *testing.T) {
		assert.Equal(t, "0", FormatBalance(decimal.NullDecimal{}))
	})
}

func TestFormatBalanceString(t *testing.T) {
	assert.Equal(t, "1234", FormatBalanceString("1,234.00"))
	assert.Equal(t, "1000.5", FormatBalanceString("1000.50"))
	// Unparseable values pass through untouched.
	assert.Equal(t, "pending", FormatBalanceString("pending"))
}

func TestFormatBalanceIdempotent(t *testing.T) {
	for _, in := range []string{"1000.00", "1000.50", "1000.12", "1,234.00"} {
		once := FormatBalanceString(in)
		assert.Equal(t, once, FormatBalanceString(once), "format(%q) not idempotent", in)
	}
}
