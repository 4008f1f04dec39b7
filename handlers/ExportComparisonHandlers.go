package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"boqportal/comparison"
	"boqportal/models"
	"boqportal/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	comparisonSheet = "Comparison"
	absentCell      = "-"
	totalLabel      = "TOTAL"
	lineSumLabel    = "LINE ITEM SUM"
)

func columnHeader(col comparison.Column) string {
	return fmt.Sprintf("#%d %s", col.Rank, titleCase(col.VendorName))
}

func seqText(key comparison.UnionItemKey) string {
	if seq, ok := key.SequenceNumber(); ok {
		return strconv.Itoa(seq)
	}
	return ""
}

// totalText renders a declared total verbatim; non-numeric ones are flagged.
func totalText(a comparison.Amount) string {
	if a.Valid() {
		return a.Raw()
	}
	if a.Raw() == "" {
		return "(invalid)"
	}
	return a.Raw() + " (invalid)"
}

// buildComparisonWorkbook renders the matrix: vendors in rank order across, union items down.
func buildComparisonWorkbook(project *models.ProjectGorm, table comparison.ComparisonTable) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(comparisonSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lowestStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(comparisonSheet, "A1", fmt.Sprintf("Quote comparison: %s (%s)", project.Name, categoryLabel(table.Category)))
	f.SetCellValue(comparisonSheet, "A2", "Currency")
	f.SetCellValue(comparisonSheet, "B2", project.Currency)

	const headerRow = 4
	headers := []string{"Seq", "Description"}
	for _, col := range table.Columns {
		headers = append(headers, columnHeader(col))
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(comparisonSheet, cell, h)
	}
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
	f.SetCellStyle(comparisonSheet, first, last, headerStyle)

	rowNum := headerRow + 1
	for _, row := range table.Rows {
		seqCell, _ := excelize.CoordinatesToCellName(1, rowNum)
		descCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		f.SetCellValue(comparisonSheet, seqCell, seqText(row.Key))
		f.SetCellValue(comparisonSheet, descCell, row.Key.Description)
		for i, col := range table.Columns {
			cell, _ := excelize.CoordinatesToCellName(i+3, rowNum)
			if amount, ok := row.Amount(col.QuoteID); ok {
				f.SetCellValue(comparisonSheet, cell, amount.InexactFloat64())
			} else {
				f.SetCellValue(comparisonSheet, cell, absentCell)
			}
		}
		rowNum++
	}

	totalRow, sumRow := rowNum, rowNum+1
	labelCell, _ := excelize.CoordinatesToCellName(2, totalRow)
	f.SetCellValue(comparisonSheet, labelCell, totalLabel)
	labelCell, _ = excelize.CoordinatesToCellName(2, sumRow)
	f.SetCellValue(comparisonSheet, labelCell, lineSumLabel)

	lowest, hasLowest := table.Lowest()
	for i, col := range table.Columns {
		totalCell, _ := excelize.CoordinatesToCellName(i+3, totalRow)
		total := table.Totals[col.QuoteID]
		if total.Valid() {
			f.SetCellValue(comparisonSheet, totalCell, total.Decimal().InexactFloat64())
		} else {
			f.SetCellValue(comparisonSheet, totalCell, totalText(total))
		}
		if hasLowest && col.QuoteID == lowest.QuoteID {
			f.SetCellStyle(comparisonSheet, totalCell, totalCell, lowestStyle)
		}

		sumCell, _ := excelize.CoordinatesToCellName(i+3, sumRow)
		f.SetCellValue(comparisonSheet, sumCell, col.LineItemSum.InexactFloat64())
	}
	left, _ := excelize.CoordinatesToCellName(1, totalRow)
	right, _ := excelize.CoordinatesToCellName(2, sumRow)
	f.SetCellStyle(comparisonSheet, left, right, totalStyle)

	f.SetColWidth(comparisonSheet, "A", "A", 8)
	f.SetColWidth(comparisonSheet, "B", "B", 40)
	if len(table.Columns) > 0 {
		from, _ := excelize.ColumnNumberToName(3)
		to, _ := excelize.ColumnNumberToName(len(table.Columns) + 2)
		f.SetColWidth(comparisonSheet, from, to, 20)
	}

	return f, nil
}

// ExportComparisonExcel godoc
// @Summary      Export comparison to Excel
// @Tags         comparison
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        project_id  path      int     true   "Project ID"
// @Param        category    query     string  false  "Effective category (exact match)"
// @Success      200         {file}    file    "XLSX workbook"
// @Failure      404         {object}  models.ErrorResponse
// @Router       /api/projects/{project_id}/comparison/excel [get]
func ExportComparisonExcel(projects repository.ProjectStore, comparer Comparer) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, result, ok := loadComparison(c, projects, comparer)
		if !ok {
			return
		}

		f, err := buildComparisonWorkbook(project, result.Table)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook", "details": err.Error()})
			return
		}
		defer f.Close()

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment;filename="+exportFileName(project.ProjectID, result.Table.Category, "xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
