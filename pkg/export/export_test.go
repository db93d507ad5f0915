package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "claims",
		Headers: []string{"Claim Number", "Deceased", "Amount"},
		Rows: []map[string]string{
			{"Claim Number": "CLM-2025-0001", "Deceased": `John "JJ" Doe`, "Amount": "25000.00"},
			{"Claim Number": "CLM-2025-0002", "Deceased": "Mary, Jane", "Amount": "15000.00"},
		},
	}
}

func TestCSVQuotesEveryField(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	want := "\"Claim Number\",\"Deceased\",\"Amount\"\n" +
		"\"CLM-2025-0001\",\"John \"\"JJ\"\" Doe\",\"25000.00\"\n" +
		"\"CLM-2025-0002\",\"Mary, Jane\",\"15000.00\"\n"
	assert.Equal(t, want, string(out))
}

func TestCSVHeaderOnlyWhenNoRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = nil
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "\"Claim Number\",\"Deceased\",\"Amount\"\n", string(out))
}

func TestRenderersRequireHeaders(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		_, err := NewRenderer(format).Render(Dataset{})
		assert.Error(t, err, string(format))
	}
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("claims")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Claim Number", "Deceased", "Amount"}, rows[0])
	assert.Equal(t, `John "JJ" Doe`, rows[1][1])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}
