package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advancecli/pkg/contracts/domain"
)

// populated builds a current-period record with every checklist column
// filled in, parameterized by status.
func populated(doc, status string) domain.AdvanceRecord {
	age := 300
	return domain.AdvanceRecord{
		TAS:              "70-0530",
		SGL:              "1410",
		DocumentNumber:   doc,
		WCFIndicator:     "N",
		Status:           status,
		Comments:         "reviewed",
		Vendor:           "ACME",
		TradingPartnerID: "TP1",
		AdvanceType:      "Vendor Prepayment",
		Advance:          amt("1000.00"),
		Balance:          amt("-5.00"),
		AgeDays:          &age,
		AdvanceDate:      day(2024, time.March, 1),
		LastActivityDate: day(2025, time.February, 1),
		PoPEndDate:       day(2025, time.June, 30),
	}
}

func TestPipelineRun(t *testing.T) {
	cfg := fy25q2("WMD")
	p := NewPipeline(cfg, nil)

	cleanS1 := populated("D100", "1")

	missingLiq := populated("D200", "2")
	missingLiq.Advance = amt("2000.00")
	missingLiq.Balance = amt("-3.00")

	statusFlip := populated("D300", "2")
	statusFlip.Advance = amt("3000.00")
	statusFlip.AnticipatedLiquidationDate = day(2025, time.June, 1)

	prior := []domain.AdvanceRecord{
		{
			TAS:                        "70-0530",
			DocumentNumber:             "D100",
			Status:                     "1",
			Balance:                    amt("1000.00"),
			AdvanceDate:                day(2024, time.March, 1),
			LastActivityDate:           day(2024, time.June, 1),
			AnticipatedLiquidationDate: nil,
		},
		{
			TAS:            "70-0530",
			DocumentNumber: "D300",
			Status:         "1",
			Balance:        amt("3000.00"),
		},
	}

	rows, err := p.Run(context.Background(), []domain.AdvanceRecord{cleanS1, missingLiq, statusFlip}, prior)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	t.Run("clean status 1 with matched prior", func(t *testing.T) {
		r := rows[0]
		assert.Equal(t, "70-0530D1001000", r.Derived.JoinKey)
		assert.True(t, r.Comparative.Matched)
		assert.Equal(t, "1", r.Comparative.Status)
		assert.Empty(t, r.Derived.NullOrBlankFields)
		assert.Equal(t, domain.ExplanationNotRequired, r.Derived.ExplanationRequired)
		assert.Equal(t, "N", r.Derived.StatusChanged)
		assert.Equal(t, ValidStatus1Label, r.Derived.ValidStatus1)
		assert.Equal(t, NotStatus2, r.Derived.ValidStatus2)
		want := "Valid — Status 1 — Active Advance — Invoice Received in Last 12 Months — Within Period of Performance"
		assert.Equal(t, want, r.Derived.Status1Validation)
		assert.Equal(t, want, r.Derived.Comment)
		assert.Equal(t, NotStatus2, r.Derived.Status2Validation)
	})

	t.Run("status 2 missing liquidation date, no prior", func(t *testing.T) {
		r := rows[1]
		assert.False(t, r.Comparative.Matched)
		assert.Equal(t, []string{ColLiquidationDate}, r.Derived.NullOrBlankFields)
		assert.Equal(t, "OK", r.Derived.LiquidationDateTest)
		assert.Nil(t, r.Derived.LiquidationDelayDays)
		assert.Equal(t, "N", r.Derived.ValidStatus2)
		want := "Valid Status 2 — Active Advance — Invoice Received in Last 12 Months — Within Period of Performance — Anticipated Liquidation Date is Reasonable"
		assert.Equal(t, want, r.Derived.Status2Validation)
		assert.Equal(t, want, r.Derived.Comment)
	})

	t.Run("status change carried from prior period", func(t *testing.T) {
		r := rows[2]
		assert.True(t, r.Comparative.Matched)
		assert.Equal(t, "Advance Status Changed from Status 1 to Status 2", r.Derived.StatusChanged)
		// Prior side was Status 1, so no liquidation slip is computed.
		assert.Nil(t, r.Derived.LiquidationDelayDays)
	})
}

func TestPipelineRunEmptyPrior(t *testing.T) {
	p := NewPipeline(fy25q2("CBP"), nil)
	rows, err := p.Run(context.Background(), []domain.AdvanceRecord{populated("D1", "1")}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Comparative.Matched)
	assert.Equal(t, "N", rows[0].Derived.StatusChanged)
}

func TestPipelineRunCancelled(t *testing.T) {
	p := NewPipeline(fy25q2("WMD"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := make([]domain.AdvanceRecord, 100)
	for i := range records {
		records[i] = populated("D1", "1")
	}
	_, err := p.Run(ctx, records, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssemble(t *testing.T) {
	cfg := fy25q2("WMD")
	p := NewPipeline(cfg, nil)

	rec := populated("D100", "1")
	rows, err := p.Run(context.Background(), []domain.AdvanceRecord{rec}, nil)
	require.NoError(t, err)

	table := Assemble(rows)
	assert.Equal(t, OutputColumns, table.Headers)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	require.Len(t, row, len(OutputColumns))

	col := func(name string) string {
		for i, h := range table.Headers {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %q not in headers", name)
		return ""
	}

	assert.Equal(t, "70-0530", col(ColTAS))
	assert.Equal(t, "1000", col(ColAdvance))
	assert.Equal(t, "-5", col(ColBalance))
	assert.Equal(t, "03/01/2024", col(ColAdvanceDate))
	assert.Equal(t, "300", col(ColAgeDays))
	assert.Equal(t, "70-0530D1001000", col(ColJoinKey))
	assert.Equal(t, "N", col(ColPoPExpired))
	assert.Equal(t, "Active Advance — Invoice Received in Last 12 Months", col(ColActivityStatus))
	assert.Equal(t, "No Prior Year Data", col(ColComparativeStatus))
	assert.Equal(t, "", col(ColAdvanceDate+"_comp"))
	assert.Equal(t, "", col(ColLiquidationDelay))
	assert.Equal(t, ValidStatus1Label, col(ColValidStatus1))
}

func TestAnalyzed(t *testing.T) {
	rows := []Row{{Record: domain.AdvanceRecord{TAS: "T"}, Derived: domain.Derived{JoinKey: "K"}}}
	out := Analyzed(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "T", out[0].Record.TAS)
	assert.Equal(t, "K", out[0].Derived.JoinKey)
}
