package analysis

import (
	"fmt"
	"time"

	"advancecli/pkg/contracts/domain"
)

// Single-period feature derivation. Each function is total: business data
// never produces an error, only a sentinel classification.

// PoPExpired tests the period-of-performance end date against the reporting
// cutoff. The boundary is inclusive on the non-expired side: a PoP ending
// exactly on the cutoff has not expired.
func (c Config) PoPExpired(rec domain.AdvanceRecord) domain.PoPExpired {
	if rec.PoPEndDate == nil {
		return domain.PoPDateMissing
	}
	if !rec.PoPEndDate.Before(c.Cutoff()) {
		return domain.PoPNotExpired
	}
	return domain.PoPExpiredYes
}

// DaysSincePoPExpired returns the aged-expiry message for advances whose PoP
// expired more than 720 days before the cutoff, and "" otherwise.
func (c Config) DaysSincePoPExpired(rec domain.AdvanceRecord, expired domain.PoPExpired) string {
	if expired != domain.PoPExpiredYes {
		return ""
	}
	days := daysBetween(*rec.PoPEndDate, c.Cutoff())
	if days <= 720 {
		return ""
	}
	return fmt.Sprintf("The Period of Performance Expired %d Days ago", days)
}

// InvoicedRecently tests the last activity date against cutoff − 361 days.
func (c Config) InvoicedRecently(rec domain.AdvanceRecord) domain.InvoiceRecency {
	if rec.LastActivityDate == nil {
		return domain.RecencyMissing
	}
	threshold := c.Cutoff().AddDate(0, 0, -361)
	if !rec.LastActivityDate.Before(threshold) {
		return domain.RecencyTrue
	}
	return domain.RecencyFalse
}

// ActivityStatus maps the recency tri-state onto the active/inactive
// classification.
func ActivityStatus(recency domain.InvoiceRecency) domain.ActivityStatus {
	switch recency {
	case domain.RecencyTrue:
		return domain.ActiveAdvance
	case domain.RecencyFalse:
		return domain.InactiveAdvance
	default:
		return domain.NoActivityReported
	}
}

// AbnormalBalance classifies the sign of the secondary balance. For
// component "WMD" a positive balance is abnormal; for every other component
// the mapping is inverted.
func (c Config) AbnormalBalance(rec domain.AdvanceRecord) domain.AbnormalBalance {
	if !rec.Balance.Valid {
		return domain.BalanceNotProvided
	}
	sign := rec.Balance.Decimal.Sign()
	if sign == 0 {
		return domain.ZeroBalance
	}
	positive := sign > 0
	if c.Component != "WMD" {
		positive = !positive
	}
	if positive {
		return domain.AbnormalYes
	}
	return domain.AbnormalNo
}

// CurrentYearAdvance reports whether the advance date falls strictly after
// the fiscal year start.
func (c Config) CurrentYearAdvance(rec domain.AdvanceRecord) domain.CurrentYearAdvance {
	if rec.AdvanceDate == nil {
		return domain.CYDateMissing
	}
	if rec.AdvanceDate.After(c.FYStart()) {
		return domain.CYAdvanceYes
	}
	return domain.CYAdvanceNo
}

// DeriveFeatures computes the single-period derived fields for one record,
// in dependency order, including the join key.
func (c Config) DeriveFeatures(rec domain.AdvanceRecord, side PeriodSide) domain.Derived {
	var d domain.Derived
	d.JoinKey = BuildJoinKey(rec, c.Component, side)
	d.PoPExpired = c.PoPExpired(rec)
	d.DaysSincePoPExpired = c.DaysSincePoPExpired(rec, d.PoPExpired)
	d.InvoicedRecently = c.InvoicedRecently(rec)
	d.ActivityStatus = ActivityStatus(d.InvoicedRecently)
	d.AbnormalBalance = c.AbnormalBalance(rec)
	d.CurrentYearAdvance = c.CurrentYearAdvance(rec)
	return d
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
