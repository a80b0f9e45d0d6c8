package ingest

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advancecli/internal/analysis"
	apperrors "advancecli/internal/errors"
	"advancecli/internal/shared/testutil"
)

func testSheet(rows [][]string) *Sheet {
	return &Sheet{
		Name: DefaultSheet,
		Columns: []string{
			analysis.ColTAS, analysis.ColSGL, analysis.ColDocNo,
			analysis.ColAdvance, analysis.ColBalance,
			analysis.ColAdvanceDate, analysis.ColAgeDays,
			analysis.ColLastActivityDate, analysis.ColLiquidationDate,
			analysis.ColPoPEndDate, analysis.ColStatus,
			colOtherID, "PONO", analysis.ColComments,
		},
		Rows: rows,
	}
}

func TestNormalize(t *testing.T) {
	sheet := testSheet([][]string{
		{" 70-0530 ", "1410", "D100", "1,000.00", "(5.00)", "3/1/2024", "300", "2/1/2025", "", "6/30/2025", "1", "OID-9", "PO-77", "reviewed"},
	})

	res, err := Normalize(sheet, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Zero(t, res.Dropped)

	rec := res.Records[0]
	assert.Equal(t, "70-0530", rec.TAS)
	assert.Equal(t, "D100", rec.DocumentNumber)
	require.True(t, rec.Advance.Valid)
	assert.Equal(t, "1000", rec.Advance.Decimal.String())
	require.True(t, rec.Balance.Valid)
	assert.Equal(t, "-5", rec.Balance.Decimal.String())
	require.NotNil(t, rec.AgeDays)
	assert.Equal(t, 300, *rec.AgeDays)
	require.NotNil(t, rec.AdvanceDate)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), *rec.AdvanceDate)
	assert.Nil(t, rec.AnticipatedLiquidationDate)
	assert.Equal(t, "OID-9", rec.OtherID)
	assert.Equal(t, "PO-77", rec.KeywordValue)
	assert.Equal(t, "reviewed", rec.Comments)
}

func TestNormalizeDropsNullTAS(t *testing.T) {
	sheet := testSheet([][]string{
		{"", "1410", "D100", "100", "", "", "", "", "", "", "1", "", "", ""},
		{"   ", "1410", "D200", "100", "", "", "", "", "", "", "1", "", "", ""},
		{"70-0530", "1410", "D300", "100", "", "", "", "", "", "", "1", "", "", ""},
	})

	res, err := Normalize(sheet, nil)
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Dropped)
}

func TestNormalizeMissingRequiredColumns(t *testing.T) {
	sheet := &Sheet{
		Name:    DefaultSheet,
		Columns: []string{analysis.ColTAS, analysis.ColSGL},
		Rows:    [][]string{{"70-0530", "1410"}},
	}

	_, err := Normalize(sheet, nil)
	require.Error(t, err)
	var schemaErr *apperrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{analysis.ColDocNo, analysis.ColAdvance}, schemaErr.MissingColumns)
}

func TestNormalizeToleratesBadValues(t *testing.T) {
	sheet := testSheet([][]string{
		{"70-0530", "1410", "D100", "n/a", "garbage", "not a date", "many", "", "", "", "1", "", "", ""},
	})

	logger, logs := testutil.Capture()
	res, err := Normalize(sheet, logger)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.False(t, rec.Advance.Valid)
	assert.False(t, rec.Balance.Valid)
	assert.Nil(t, rec.AdvanceDate)
	assert.Nil(t, rec.AgeDays)

	assert.True(t, logs.Has(slog.LevelWarn, "unparseable amount"))
	assert.True(t, logs.Has(slog.LevelWarn, "unparseable date"))
}

func TestNormalizeShortRows(t *testing.T) {
	// Trailing empty cells are routinely truncated by the workbook reader.
	sheet := testSheet([][]string{
		{"70-0530", "1410", "D100", "250.50"},
	})

	res, err := Normalize(sheet, nil)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.False(t, res.Records[0].Balance.Valid)
	assert.Empty(t, res.Records[0].Status)
}

func TestParseDateCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"mdy slashes", "3/1/2024", tsp(2024, time.March, 1)},
		{"zero padded", "03/01/2024", tsp(2024, time.March, 1)},
		{"iso", "2024-03-01", tsp(2024, time.March, 1)},
		{"excel serial", "45352", tsp(2024, time.March, 1)},
		{"empty", "", nil},
		{"garbage", "soon", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateCell(tt.in, "col", 0, testutil.Discard())
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func tsp(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
