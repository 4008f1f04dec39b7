package handlers

import (
	"bytes"
	"image/jpeg"
	"testing"

	"boqportal/comparison"
	"boqportal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seqPtr(n int) *int { return &n }

func sampleTable() comparison.ComparisonTable {
	electrical := "Electrical"
	quotes := []comparison.Quote{
		{
			ID: 1, VendorID: 10, VendorName: "vendor a", Category: comparison.ParseCategory(&electrical),
			TotalAmount: comparison.ParseAmount("1500"), Status: comparison.StatusPending,
			LineItems: []comparison.LineItem{
				{SequenceNumber: seqPtr(1), Description: "Wiring", Amount: decimal.NewFromInt(1000)},
				{SequenceNumber: seqPtr(2), Description: "Fixtures", Amount: decimal.NewFromInt(500)},
			},
		},
		{
			ID: 2, VendorID: 20, VendorName: "vendor b", Category: comparison.ParseCategory(&electrical),
			TotalAmount: comparison.ParseAmount("1200"), Status: comparison.StatusUnderReview,
			LineItems: []comparison.LineItem{
				{SequenceNumber: seqPtr(1), Description: "Wiring", Amount: decimal.NewFromInt(800)},
				{SequenceNumber: seqPtr(3), Description: "Conduit", Amount: decimal.NewFromInt(400)},
			},
		},
		{
			ID: 3, VendorID: 30, VendorName: "vendor c", Category: comparison.ParseCategory(&electrical),
			TotalAmount: comparison.ParseAmount("TBD"), Status: comparison.StatusPending,
			LineItems: []comparison.LineItem{
				{SequenceNumber: seqPtr(1), Description: "Wiring", Amount: decimal.NewFromInt(900)},
			},
		},
	}
	return comparison.Compare(quotes, "Electrical")
}

func TestBuildComparisonWorkbook(t *testing.T) {
	project := &models.ProjectGorm{ProjectID: 5, Name: "Tower A", Currency: "INR"}
	table := sampleTable()

	f, err := buildComparisonWorkbook(project, table)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	out, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer out.Close()

	rows, err := out.GetRows(comparisonSheet)
	require.NoError(t, err)

	// title, currency, blank, header, 3 items, total, line sum
	require.Len(t, rows, 9)
	assert.Contains(t, rows[0][0], "Tower A")
	assert.Contains(t, rows[0][0], "Electrical")

	// "TBD" ranks as zero, so vendor c comes first
	assert.Equal(t, []string{"Seq", "Description", "#1 Vendor C", "#2 Vendor B", "#3 Vendor A"}, rows[3])
	assert.Equal(t, []string{"1", "Wiring", "900", "800", "1000"}, rows[4])
	assert.Equal(t, []string{"2", "Fixtures", "-", "-", "500"}, rows[5])
	assert.Equal(t, []string{"3", "Conduit", "-", "400", "-"}, rows[6])
	assert.Equal(t, []string{"", "TOTAL", "TBD (invalid)", "1200", "1500"}, rows[7])
	assert.Equal(t, []string{"", "LINE ITEM SUM", "900", "1200", "1500"}, rows[8])

	lowestStyle, err := out.GetCellStyle(comparisonSheet, "D8")
	require.NoError(t, err)
	otherStyle, err := out.GetCellStyle(comparisonSheet, "E8")
	require.NoError(t, err)
	assert.NotEqual(t, lowestStyle, otherStyle)
}

func TestBuildComparisonWorkbookEmpty(t *testing.T) {
	project := &models.ProjectGorm{ProjectID: 5, Name: "Tower A", Currency: "INR"}
	table := comparison.Compare(nil, "Plumbing")

	f, err := buildComparisonWorkbook(project, table)
	require.NoError(t, err)
	rows, err := f.GetRows(comparisonSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Seq", "Description"}, rows[3])
}

func TestBuildComparisonPDF(t *testing.T) {
	project := &models.ProjectGorm{ProjectID: 5, Name: "Tower A", Currency: "INR"}

	buf, err := buildComparisonPDF(project, sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	empty, err := buildComparisonPDF(project, comparison.Compare(nil, ""))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty.Bytes(), []byte("%PDF-")))
}

func TestTotalText(t *testing.T) {
	assert.Equal(t, "1500.00", totalText(comparison.ParseAmount("1500.00")))
	assert.Equal(t, "TBD (invalid)", totalText(comparison.ParseAmount("TBD")))
	assert.Equal(t, "(invalid)", totalText(comparison.ParseAmount("")))
}

func TestDisplayStatusAndFileNames(t *testing.T) {
	assert.Equal(t, "Under Review", displayStatus("UNDER_REVIEW"))
	assert.Equal(t, "Approved", displayStatus("APPROVED"))
	assert.Equal(t, "comparison_7.xlsx", exportFileName(7, "", "xlsx"))
	assert.Equal(t, "comparison_7_HVAC_Ducting.pdf", exportFileName(7, "HVAC / Ducting", "pdf"))
	assert.Equal(t, "ab...", truncate("abcdef", 5))
	assert.Equal(t, "abc", truncate("abc", 5))
}

func TestRenderPerformaReceipt(t *testing.T) {
	p := &models.PerformaGorm{
		ID: 1, Reference: "PF-AB12345", ProjectID: 5, VendorID: 10, VendorName: "ABC Electricals",
		TotalAmount: "1500", Currency: "INR", Status: models.PerformaPending,
	}
	data, err := renderPerformaReceipt(p, "Tower A")
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 512)
}

func TestBuildLineItems(t *testing.T) {
	items, err := buildLineItems([]models.PerformaLineItemRequest{
		{SequenceNumber: seqPtr(1), Description: "Wiring", Amount: models.RawAmount{Text: "1000.50", Given: true}},
		{Description: "Fixtures", Amount: models.RawAmount{Text: " 0 ", Given: true}},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Position)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("1000.50")))
	assert.Nil(t, items[1].SequenceNumber)
	assert.True(t, items[1].Amount.IsZero())

	_, err = buildLineItems([]models.PerformaLineItemRequest{{Description: "x", Amount: models.RawAmount{Text: "abc", Given: true}}})
	assert.Error(t, err)
	_, err = buildLineItems([]models.PerformaLineItemRequest{{Description: "x"}})
	assert.Error(t, err)
}

func TestBuildLineItemsAmountScale(t *testing.T) {
	amount := func(text string) []models.PerformaLineItemRequest {
		return []models.PerformaLineItemRequest{{Description: "Wiring", Amount: models.RawAmount{Text: text, Given: true}}}
	}

	_, err := buildLineItems(amount("12.345"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal places")

	_, err = buildLineItems(amount("10000000000000000"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")

	// trailing zeros fit the column
	items, err := buildLineItems(amount("12.3400"))
	require.NoError(t, err)
	assert.Equal(t, "12.34", items[0].Amount.String())
	assert.Equal(t, int32(-2), items[0].Amount.Exponent())

	items, err = buildLineItems(amount("9999999999999999.99"))
	require.NoError(t, err)
	assert.True(t, items[0].Amount.Equal(decimal.RequireFromString("9999999999999999.99")))
}

func TestCanAccessPerforma(t *testing.T) {
	p := &models.PerformaGorm{VendorID: 10}
	assert.True(t, canAccessPerforma(&models.User{RoleName: models.RoleAdmin}, p))
	assert.True(t, canAccessPerforma(&models.User{RoleName: models.RoleVendor, VendorID: 10}, p))
	assert.False(t, canAccessPerforma(&models.User{RoleName: models.RoleVendor, VendorID: 11}, p))
	assert.False(t, canAccessPerforma(&models.User{RoleName: models.RoleVendor}, &models.PerformaGorm{}))
	assert.False(t, canAccessPerforma(nil, p))
}
