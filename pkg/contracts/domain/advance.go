package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceRecord is one normalized row from a "4-Advance Analysis" ledger
// extract. Identifying and free-text fields keep their raw (trimmed) string
// values; monetary and date fields are coerced during normalization, with
// nil / invalid marking a value the extract did not provide.
type AdvanceRecord struct {
	TAS              string `json:"tas"`
	SGL              string `json:"sgl"`
	DocumentNumber   string `json:"dhs_doc_no"`
	WCFIndicator     string `json:"wcf_indicator"`
	Status           string `json:"status"`
	Comments         string `json:"comments"`
	Vendor           string `json:"vendor"`
	TradingPartnerID string `json:"trading_partner_id"`
	AdvanceType      string `json:"advance_type"`

	// OtherID is the explicit secondary identifier column; KeywordValue is
	// the first non-empty cell among the keyword-matched columns
	// (PONO/Item/Line/MDL). Both feed the join key precedence chain.
	OtherID      string `json:"other_id,omitempty"`
	KeywordValue string `json:"keyword_value,omitempty"`

	// Advance is the primary balance ("Advance/Prepayment"); Balance is the
	// secondary, confirmatory balance ("Advance/Prepayment.1").
	Advance decimal.NullDecimal `json:"advance"`
	Balance decimal.NullDecimal `json:"balance"`

	AgeDays *int `json:"age_days,omitempty"`

	AdvanceDate                *time.Time `json:"advance_date,omitempty"`
	LastActivityDate           *time.Time `json:"last_activity_date,omitempty"`
	AnticipatedLiquidationDate *time.Time `json:"anticipated_liquidation_date,omitempty"`
	PoPEndDate                 *time.Time `json:"pop_end_date,omitempty"`
}

// IsStatus1 reports whether the record carries lifecycle status "1".
func (r AdvanceRecord) IsStatus1() bool { return r.Status == "1" }

// IsStatus2 reports whether the record carries lifecycle status "2".
func (r AdvanceRecord) IsStatus2() bool { return r.Status == "2" }

// Comparative holds the four prior-period fields carried onto a
// current-period row by the cross-period join. Matched is false for
// current-period rows without a prior-period counterpart; all other fields
// are then zero and must be treated as null.
type Comparative struct {
	Matched                    bool       `json:"matched"`
	Status                     string     `json:"status,omitempty"`
	AdvanceDate                *time.Time `json:"advance_date,omitempty"`
	LastActivityDate           *time.Time `json:"last_activity_date,omitempty"`
	AnticipatedLiquidationDate *time.Time `json:"anticipated_liquidation_date,omitempty"`
}

// PoPExpired classifies a record against the period-of-performance cutoff.
type PoPExpired int

const (
	PoPDateMissing PoPExpired = iota
	PoPNotExpired
	PoPExpiredYes
)

// String renders the audit-sheet value: the boundary sheet reports "Y"/"N"
// and a sentinel for a missing end date.
func (p PoPExpired) String() string {
	switch p {
	case PoPNotExpired:
		return "N"
	case PoPExpiredYes:
		return "Y"
	default:
		return "Missing PoP Date"
	}
}

// InvoiceRecency is the tri-state last-activity test.
type InvoiceRecency int

const (
	RecencyMissing InvoiceRecency = iota
	RecencyTrue
	RecencyFalse
)

func (i InvoiceRecency) String() string {
	switch i {
	case RecencyTrue:
		return "True"
	case RecencyFalse:
		return "False"
	default:
		return "Last Invoice Date Missing"
	}
}

// ActivityStatus is derived purely from InvoiceRecency.
type ActivityStatus int

const (
	NoActivityReported ActivityStatus = iota
	ActiveAdvance
	InactiveAdvance
)

// String renders the audit narrative phrasing. The em-dashes are
// load-bearing: downstream narrative branches compare against these strings.
func (a ActivityStatus) String() string {
	switch a {
	case ActiveAdvance:
		return "Active Advance — Invoice Received in Last 12 Months"
	case InactiveAdvance:
		return "Inactive Advance — No Invoice Activity Within Last 12 Months"
	default:
		return "No Invoice Activity Reported"
	}
}

// AbnormalBalance classifies the secondary balance sign. The sign convention
// inverts for component "WMD".
type AbnormalBalance int

const (
	BalanceNotProvided AbnormalBalance = iota
	AbnormalYes
	AbnormalNo
	ZeroBalance
)

func (b AbnormalBalance) String() string {
	switch b {
	case AbnormalYes:
		return "Y"
	case AbnormalNo:
		return "N"
	case ZeroBalance:
		return "Zero $ Balance Reported"
	default:
		return "Advance Balance Not Provided"
	}
}

// CurrentYearAdvance reports whether the advance was issued after the fiscal
// year start.
type CurrentYearAdvance int

const (
	CYDateMissing CurrentYearAdvance = iota
	CYAdvanceYes
	CYAdvanceNo
)

func (c CurrentYearAdvance) String() string {
	switch c {
	case CYAdvanceYes:
		return "Y"
	case CYAdvanceNo:
		return "N"
	default:
		return "Date of Advance Not Available"
	}
}

// Explanation is the explanation-requirement classification. The zero value
// means the requirement does not apply (status outside "1"/"2") and renders
// as an empty cell.
type Explanation int

const (
	ExplanationNotApplicable Explanation = iota
	ExplanationRequired
	ExplanationNotRequired
)

func (e Explanation) String() string {
	switch e {
	case ExplanationRequired:
		return "Explanation Required"
	case ExplanationNotRequired:
		return "No Explanation Required"
	default:
		return ""
	}
}

// Derived carries every computed field for a row, in dependency order.
// Narrative fields hold the exact audit wording; empty strings are null
// cells in the output table.
type Derived struct {
	JoinKey             string             `json:"join_key"`
	PoPExpired          PoPExpired         `json:"pop_expired"`
	DaysSincePoPExpired string             `json:"days_since_pop_expired,omitempty"`
	InvoicedRecently    InvoiceRecency     `json:"invoiced_recently"`
	ActivityStatus      ActivityStatus     `json:"activity_status"`
	AbnormalBalance     AbnormalBalance    `json:"abnormal_balance"`
	CurrentYearAdvance  CurrentYearAdvance `json:"current_year_advance"`

	NullOrBlankFields    []string    `json:"null_or_blank_fields,omitempty"`
	ExplanationRequired  Explanation `json:"explanation_required"`
	AdvanceAfterPoP      string      `json:"advance_after_pop"`
	StatusChanged        string      `json:"status_changed"`
	LiquidationDateTest  string      `json:"liquidation_date_test"`
	LiquidationDelayDays *int        `json:"liquidation_delay_days,omitempty"`
	ValidStatus1         string      `json:"valid_status_1"`
	ValidStatus2         string      `json:"valid_status_2"`
	Status1Validation    string      `json:"status_1_validation"`
	Status2Validation    string      `json:"status_2_validation"`
	Comment              string      `json:"comment,omitempty"`
}

// AnalyzedRow is a terminal, fully assembled output row: the original record,
// its prior-period comparatives, and every derived field.
type AnalyzedRow struct {
	Record      AdvanceRecord `json:"record"`
	Comparative Comparative   `json:"comparative"`
	Derived     Derived       `json:"derived"`
}
