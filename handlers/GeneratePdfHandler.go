package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"boqportal/comparison"
	"boqportal/models"
	"boqportal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 277.0 // A4 landscape minus 10mm margins
	pdfSeqWidth   = 14.0
	pdfDescWidth  = 70.0
	pdfMinColumn  = 22.0
	pdfRowHeight  = 7.0
	pdfMaxColumns = 8
)

// buildComparisonPDF renders the same matrix as the Excel export on landscape A4.
// Vendors beyond pdfMaxColumns continue on further pages.
func buildComparisonPDF(project *models.ProjectGorm, table comparison.ComparisonTable) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s - page %d", time.Now().Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	lowest, hasLowest := table.Lowest()

	chunks := [][]comparison.Column{table.Columns}
	if len(table.Columns) > pdfMaxColumns {
		chunks = nil
		for start := 0; start < len(table.Columns); start += pdfMaxColumns {
			end := start + pdfMaxColumns
			if end > len(table.Columns) {
				end = len(table.Columns)
			}
			chunks = append(chunks, table.Columns[start:end])
		}
	}

	for _, columns := range chunks {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Quote comparison: %s", project.Name)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Category: %s    Currency: %s", categoryLabel(table.Category), project.Currency)), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		if table.IsEmpty() {
			pdf.CellFormat(0, 8, "No quotes found.", "", 1, "L", false, 0, "")
			continue
		}

		colWidth := pdfMinColumn
		if len(columns) > 0 {
			if w := (pdfPageWidth - pdfSeqWidth - pdfDescWidth) / float64(len(columns)); w > colWidth {
				colWidth = w
			}
		}

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(pdfSeqWidth, pdfRowHeight, "Seq", "1", 0, "C", true, 0, "")
		pdf.CellFormat(pdfDescWidth, pdfRowHeight, "Description", "1", 0, "L", true, 0, "")
		for _, col := range columns {
			pdf.CellFormat(colWidth, pdfRowHeight, tr(truncate(columnHeader(col), 24)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Arial", "", 8)
		for _, row := range table.Rows {
			pdf.CellFormat(pdfSeqWidth, pdfRowHeight, seqText(row.Key), "1", 0, "C", false, 0, "")
			pdf.CellFormat(pdfDescWidth, pdfRowHeight, tr(truncate(row.Key.Description, 48)), "1", 0, "L", false, 0, "")
			for _, col := range columns {
				text := absentCell
				if amount, ok := row.Amount(col.QuoteID); ok {
					text = amount.StringFixed(2)
				}
				pdf.CellFormat(colWidth, pdfRowHeight, text, "1", 0, "R", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(pdfSeqWidth+pdfDescWidth, pdfRowHeight, totalLabel, "1", 0, "R", false, 0, "")
		for _, col := range columns {
			highlight := hasLowest && col.QuoteID == lowest.QuoteID
			if highlight {
				pdf.SetFillColor(198, 239, 206)
			}
			pdf.CellFormat(colWidth, pdfRowHeight, tr(totalText(table.Totals[col.QuoteID])), "1", 0, "R", highlight, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(pdfSeqWidth+pdfDescWidth, pdfRowHeight, lineSumLabel, "1", 0, "R", false, 0, "")
		for _, col := range columns {
			pdf.CellFormat(colWidth, pdfRowHeight, col.LineItemSum.StringFixed(2), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.CellFormat(pdfSeqWidth+pdfDescWidth, pdfRowHeight, "Status", "1", 0, "R", false, 0, "")
		for _, col := range columns {
			pdf.CellFormat(colWidth, pdfRowHeight, displayStatus(col.Status), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if !table.Anomalies.Empty() {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 8)
		pdf.MultiCell(0, 5, fmt.Sprintf("%d quote(s) declared a non-numeric total; %d quote(s) contain line items without sequence number or description, which are left out of the matrix.",
			len(table.Anomalies.NonNumericTotals), len(table.Anomalies.MalformedItems)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return &buf, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// ExportComparisonPDF godoc
// @Summary      Export comparison to PDF
// @Tags         comparison
// @Produce      application/pdf
// @Param        project_id  path      int     true   "Project ID"
// @Param        category    query     string  false  "Effective category (exact match)"
// @Success      200         {file}    file    "PDF document"
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/comparison/pdf [get]
func ExportComparisonPDF(projects repository.ProjectStore, comparer Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, result, ok := loadComparison(c, projects, comparer)
		if !ok {
			return
		}

		buf, err := buildComparisonPDF(project, result.Table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment;filename="+exportFileName(project.ProjectID, result.Table.Category, "pdf"))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
