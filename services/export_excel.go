package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an Excel workbook for a project estimate
// and returns the file contents as a byte slice.
func GenerateEstimateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names cap at 31 chars.
	sheetName := data.ProjectTicket
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := columns[len(columns)-1]

	widths := []float64{6, 40, 10, 12, 14, 12, 10, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	categoryStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	subtotalLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal label style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// ── Header rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := data.ProjectTitle
	if title == "" {
		title = "Proyecto " + data.ProjectTicket
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Responsible != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge responsible: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Responsable: "+data.Responsible)
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Fecha: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: column headers ───────────────────────────────────────────

	headers := []string{"#", "Descripción", "Cantidad", "Unidad", "Costo Unitario", "Horario", "Mult.", "Subtotal"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Category sections (starting row 6) ──────────────────────────────

	row := 6
	for _, section := range data.Sections {
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge category row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, section.Category)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, categoryStyle)
		row++

		for _, item := range section.Items {
			rowStr = fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, item.Index)
			f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(item.Description))
			f.SetCellValue(sheetName, "C"+rowStr, item.Quantity)
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(item.Unit))
			f.SetCellValue(sheetName, "E"+rowStr, FormatMoney(item.UnitCost))
			f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(item.ScheduleType))
			f.SetCellValue(sheetName, "G"+rowStr, formatMultiplier(item.Multiplier))
			f.SetCellValue(sheetName, "H"+rowStr, FormatMoney(item.Subtotal))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}

		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "G"+rowStr, "Total "+section.Category+":")
		f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, subtotalLabelStyle)
		f.SetCellValue(sheetName, "H"+rowStr, FormatMoney(section.Subtotal))
		f.SetCellStyle(sheetName, "H"+rowStr, "H"+rowStr, totalStyle)
		row += 2 // blank row between sections
	}

	// ── Grand total ─────────────────────────────────────────────────────

	rowStr := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "G"+rowStr, "Total General:")
	f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, subtotalLabelStyle)
	f.SetCellValue(sheetName, "H"+rowStr, FormatMoney(data.GrandTotal))
	f.SetCellStyle(sheetName, "H"+rowStr, "H"+rowStr, totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a full thin border set for table cells.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
