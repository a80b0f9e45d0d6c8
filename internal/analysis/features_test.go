package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"advancecli/internal/fiscal"
	"advancecli/pkg/contracts/domain"
)

// fy25q2 puts the reporting cutoff at 2025-03-31 with the fiscal year
// running 2024-10-01 through 2025-09-30.
func fy25q2(component string) Config {
	return Config{Component: component, Period: fiscal.Period{Year: 2025, Quarter: 2}}
}

func TestPoPExpired(t *testing.T) {
	cfg := fy25q2("WMD")

	tests := []struct {
		name string
		pop  *time.Time
		want domain.PoPExpired
	}{
		{"missing date", nil, domain.PoPDateMissing},
		{"ends on cutoff is not expired", day(2025, time.March, 31), domain.PoPNotExpired},
		{"ends after cutoff", day(2025, time.April, 1), domain.PoPNotExpired},
		{"ends before cutoff", day(2025, time.March, 30), domain.PoPExpiredYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.PoPExpired(domain.AdvanceRecord{PoPEndDate: tt.pop})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysSincePoPExpired(t *testing.T) {
	cfg := fy25q2("WMD")

	t.Run("not expired yields empty", func(t *testing.T) {
		rec := domain.AdvanceRecord{PoPEndDate: day(2025, time.June, 1)}
		assert.Empty(t, cfg.DaysSincePoPExpired(rec, domain.PoPNotExpired))
	})

	t.Run("recent expiry yields empty", func(t *testing.T) {
		rec := domain.AdvanceRecord{PoPEndDate: day(2024, time.December, 1)}
		assert.Empty(t, cfg.DaysSincePoPExpired(rec, domain.PoPExpiredYes))
	})

	t.Run("aged expiry reports day count", func(t *testing.T) {
		pop := day(2022, time.January, 1)
		rec := domain.AdvanceRecord{PoPEndDate: pop}
		days := int(cfg.Cutoff().Sub(*pop).Hours() / 24)
		want := fmt.Sprintf("The Period of Performance Expired %d Days ago", days)
		assert.Equal(t, want, cfg.DaysSincePoPExpired(rec, domain.PoPExpiredYes))
		assert.Greater(t, days, 720)
	})
}

func TestInvoicedRecently(t *testing.T) {
	cfg := fy25q2("WMD")
	threshold := cfg.Cutoff().AddDate(0, 0, -361)

	tests := []struct {
		name string
		last *time.Time
		want domain.InvoiceRecency
	}{
		{"missing date", nil, domain.RecencyMissing},
		{"on threshold counts as recent", &threshold, domain.RecencyTrue},
		{"after threshold", day(2025, time.January, 15), domain.RecencyTrue},
		{"before threshold", day(2024, time.January, 15), domain.RecencyFalse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.InvoicedRecently(domain.AdvanceRecord{LastActivityDate: tt.last})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActivityStatus(t *testing.T) {
	assert.Equal(t, domain.ActiveAdvance, ActivityStatus(domain.RecencyTrue))
	assert.Equal(t, domain.InactiveAdvance, ActivityStatus(domain.RecencyFalse))
	assert.Equal(t, domain.NoActivityReported, ActivityStatus(domain.RecencyMissing))
}

func TestAbnormalBalance(t *testing.T) {
	tests := []struct {
		name      string
		component string
		balance   decimal.NullDecimal
		want      domain.AbnormalBalance
	}{
		{"null balance", "WMD", decimal.NullDecimal{}, domain.BalanceNotProvided},
		{"zero balance", "WMD", amt("0"), domain.ZeroBalance},
		{"WMD positive is abnormal", "WMD", amt("10.00"), domain.AbnormalYes},
		{"WMD negative is normal", "WMD", amt("-10.00"), domain.AbnormalNo},
		{"other component inverts positive", "CBP", amt("10.00"), domain.AbnormalNo},
		{"other component inverts negative", "CBP", amt("-10.00"), domain.AbnormalYes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fy25q2(tt.component)
			got := cfg.AbnormalBalance(domain.AdvanceRecord{Balance: tt.balance})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentYearAdvance(t *testing.T) {
	cfg := fy25q2("WMD")

	tests := []struct {
		name string
		date *time.Time
		want domain.CurrentYearAdvance
	}{
		{"missing date", nil, domain.CYDateMissing},
		{"on fiscal year start is not current year", day(2024, time.October, 1), domain.CYAdvanceNo},
		{"after fiscal year start", day(2024, time.October, 2), domain.CYAdvanceYes},
		{"prior fiscal year", day(2023, time.May, 1), domain.CYAdvanceNo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.CurrentYearAdvance(domain.AdvanceRecord{AdvanceDate: tt.date})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveFeaturesOrder(t *testing.T) {
	cfg := fy25q2("WMD")
	rec := domain.AdvanceRecord{
		TAS:              "70-0530",
		DocumentNumber:   "D1",
		Status:           "1",
		Advance:          amt("1000.00"),
		Balance:          amt("-5.00"),
		PoPEndDate:       day(2025, time.June, 30),
		LastActivityDate: day(2025, time.February, 1),
		AdvanceDate:      day(2024, time.March, 1),
	}

	d := cfg.DeriveFeatures(rec, CurrentPeriod)
	assert.Equal(t, "70-0530D11000", d.JoinKey)
	assert.Equal(t, domain.PoPNotExpired, d.PoPExpired)
	assert.Empty(t, d.DaysSincePoPExpired)
	assert.Equal(t, domain.ActiveAdvance, d.ActivityStatus)
	assert.Equal(t, domain.AbnormalNo, d.AbnormalBalance)
	assert.Equal(t, domain.CYAdvanceNo, d.CurrentYearAdvance)
}
