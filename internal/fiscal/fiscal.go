// Package fiscal resolves DHS fiscal reporting periods. A period tag such as
// "FY25 Q2" drives every date threshold in the analysis: the quarter-end
// reporting cutoff, the fiscal year bounds, and the comparative period used
// to locate the prior extract.
package fiscal

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var periodPattern = regexp.MustCompile(`^FY(\d{2})\s+Q([1-4])$`)

// Period is a parsed fiscal year/quarter tag.
type Period struct {
	// Year is the full fiscal year, e.g. 2025 for "FY25".
	Year    int
	Quarter int
}

// Parse parses a period tag of the form "FY25 Q2". Two-digit years are
// anchored to the 2000s, matching the source extracts.
func Parse(tag string) (Period, error) {
	m := periodPattern.FindStringSubmatch(tag)
	if m == nil {
		return Period{}, fmt.Errorf("invalid period tag %q: want form \"FY25 Q2\"", tag)
	}
	yy, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return Period{Year: 2000 + yy, Quarter: q}, nil
}

// String renders the tag back in its canonical "FY25 Q2" form.
func (p Period) String() string {
	return fmt.Sprintf("FY%02d Q%d", p.Year%100, p.Quarter)
}

// ReportingCutoff returns the quarter-end date all recency and expiry tests
// are evaluated against: Q1 ends Dec 31 of the prior calendar year, Q2
// Mar 31, Q3 Jun 30, and Q4 the fiscal year end Sep 30.
func (p Period) ReportingCutoff() time.Time {
	switch p.Quarter {
	case 1:
		return date(p.Year-1, time.December, 31)
	case 2:
		return date(p.Year, time.March, 31)
	case 3:
		return date(p.Year, time.June, 30)
	default:
		return p.YearEnd()
	}
}

// YearStart returns October 1 of the preceding calendar year.
func (p Period) YearStart() time.Time {
	return date(p.Year-1, time.October, 1)
}

// YearEnd returns September 30 of the fiscal year.
func (p Period) YearEnd() time.Time {
	return date(p.Year, time.September, 30)
}

// Comparative returns the prior reporting period the current extract is
// joined against: Q1 and Q2 compare to the prior year's Q3, Q3 to the same
// year's Q2, and Q4 to the same year's Q3.
func (p Period) Comparative() Period {
	switch p.Quarter {
	case 1, 2:
		return Period{Year: p.Year - 1, Quarter: 3}
	case 3:
		return Period{Year: p.Year, Quarter: 2}
	default:
		return Period{Year: p.Year, Quarter: 3}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
