package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXWriteTable(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter(nil)
	path := filepath.Join(dir, "out.xlsx")

	require.NoError(t, w.WriteTable(path, sampleTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReviewSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"TAS", "DHS Doc No", "DO Comment"}, rows[0])
	assert.Equal(t, "D100", rows[1][1])
	assert.Equal(t, "contains, comma", rows[2][2])
}

func TestXLSXWriteTableEmpty(t *testing.T) {
	dir := t.TempDir()
	w := NewXLSXWriter(nil)
	path := filepath.Join(dir, "empty.xlsx")

	table := sampleTable()
	table.Rows = nil
	require.NoError(t, w.WriteTable(path, table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ReviewSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
