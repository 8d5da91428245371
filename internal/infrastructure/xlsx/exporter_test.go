package xlsx_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/humble-crm/internal/application/ports"
	"github.com/jhoicas/humble-crm/internal/infrastructure/xlsx"
)

func TestExport_WritesHeadersAndRows(t *testing.T) {
	out, err := xlsx.NewExporter().Export(context.Background(), ports.Sheet{
		Name:    "Customers",
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1", "Ana"}, {"2", "Luis"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Customers"}, f.GetSheetList())
	rows, err := f.GetRows("Customers")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID", "Name"}, {"1", "Ana"}, {"2", "Luis"}}, rows)
}

func TestExport_EmptySheet(t *testing.T) {
	out, err := xlsx.NewExporter().Export(context.Background(), ports.Sheet{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
