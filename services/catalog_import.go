package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// catalogField describes one column of the catalog import template.
type catalogField struct {
	Key            string
	Label          string
	AlwaysRequired bool
}

// catalogTemplateFields returns the columns of the catalog import
// template, in order.
func catalogTemplateFields() []catalogField {
	return []catalogField{
		{Key: "category", Label: "Categoría", AlwaysRequired: true},
		{Key: "description", Label: "Descripción", AlwaysRequired: true},
		{Key: "unit", Label: "Unidad", AlwaysRequired: true},
		{Key: "unit_cost", Label: "Costo Unitario", AlwaysRequired: true},
		{Key: "schedule_type", Label: "Tipo de Horario"},
		{Key: "multiplier", Label: "Multiplicador"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded
// catalog file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// ImportResult summarizes a commit of previously validated rows.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// GenerateCatalogTemplate creates a downloadable .xlsx template for bulk
// catalog entry, with dropdowns for category and schedule type.
func GenerateCatalogTemplate() ([]byte, error) {
	fields := catalogTemplateFields()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Catálogo"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	requiredHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1D4ED8"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	optionalHeaderStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#6B7280"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})

	columns := columnLetters(len(fields))
	for i, field := range fields {
		cell := fmt.Sprintf("%s1", columns[i])

		headerText := field.Label
		if field.AlwaysRequired {
			headerText += " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if field.AlwaysRequired {
			f.SetCellStyle(sheetName, cell, cell, requiredHeaderStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, optionalHeaderStyle)
		}

		width := float64(len(field.Label)) * 1.3
		if width < 15 {
			width = 15
		}
		f.SetColWidth(sheetName, columns[i], columns[i], width)
	}

	for i, field := range fields {
		col := columns[i]
		rangeRef := fmt.Sprintf("%s2:%s1048576", col, col)

		switch field.Key {
		case "category":
			dv := excelize.NewDataValidation(true)
			dv.Sqref = rangeRef
			dv.SetDropList(CategoryOptions)
			f.AddDataValidation(sheetName, dv)
		case "schedule_type":
			dv := excelize.NewDataValidation(true)
			dv.Sqref = rangeRef
			dv.SetDropList(ScheduleTypeOptions)
			f.AddDataValidation(sheetName, dv)
		}
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel template: %w", err)
	}
	return buf.Bytes(), nil
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to template field keys.
// Returns one key per column ("" when unrecognized) and the list of
// unrecognized headers.
func mapHeadersToFields(headers []string, fields []catalogField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip the trailing " *" our template adds to required columns.
		norm = strings.TrimSpace(strings.TrimSuffix(norm, "*"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateCatalogFile parses and validates an uploaded catalog file
// (.xlsx or .csv). Rows that pass validation end up in ParsedRows, keyed
// by field key; every problem is reported with its 1-based file row.
func ValidateCatalogFile(file multipart.File, fileName string) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	switch {
	case strings.HasSuffix(strings.ToLower(fileName), ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(strings.ToLower(fileName), ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file type: %s (use .xlsx or .csv)", fileName)
	}
	if err != nil {
		return nil, err
	}

	fields := catalogTemplateFields()
	mapped, _ := mapHeadersToFields(headers, fields)

	result := &ValidationResult{FileName: fileName}

	for rowIdx, row := range dataRows {
		fileRow := rowIdx + 2 // 1-based, after the header row

		values := make(map[string]string, len(fields))
		empty := true
		for colIdx, key := range mapped {
			if key == "" || colIdx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[colIdx])
			values[key] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		result.TotalRows++

		rowErrs := validateCatalogRow(fileRow, values)
		if len(rowErrs) > 0 {
			result.ErrorRows++
			result.Errors = append(result.Errors, rowErrs...)
			continue
		}

		// Non-labor rows never carry labor fields.
		if values["category"] != CategoryLabor {
			delete(values, "schedule_type")
			delete(values, "multiplier")
		}
		result.ValidRows++
		result.ParsedRows = append(result.ParsedRows, values)
	}

	return result, nil
}

// validateCatalogRow checks one parsed row and returns its errors.
func validateCatalogRow(fileRow int, values map[string]string) []ValidationError {
	var errs []ValidationError

	category := values["category"]
	if category == "" {
		errs = append(errs, ValidationError{fileRow, "category", "Categoría is required"})
	} else if !IsValidCategory(category) {
		errs = append(errs, ValidationError{fileRow, "category", fmt.Sprintf("Unknown category %q", category)})
	}

	if values["description"] == "" {
		errs = append(errs, ValidationError{fileRow, "description", "Descripción is required"})
	}
	if values["unit"] == "" {
		errs = append(errs, ValidationError{fileRow, "unit", "Unidad is required"})
	}

	if raw := values["unit_cost"]; raw == "" {
		errs = append(errs, ValidationError{fileRow, "unit_cost", "Costo Unitario is required"})
	} else if cost, err := strconv.ParseFloat(raw, 64); err != nil {
		errs = append(errs, ValidationError{fileRow, "unit_cost", fmt.Sprintf("Invalid number %q", raw)})
	} else if cost < 0 {
		errs = append(errs, ValidationError{fileRow, "unit_cost", "Costo Unitario must not be negative"})
	}

	if category == CategoryLabor {
		if st := values["schedule_type"]; st != "" && !IsValidScheduleType(st) {
			errs = append(errs, ValidationError{fileRow, "schedule_type", fmt.Sprintf("Unknown schedule type %q", st)})
		}
		if raw := values["multiplier"]; raw != "" {
			if m, err := strconv.ParseFloat(raw, 64); err != nil || m <= 0 {
				errs = append(errs, ValidationError{fileRow, "multiplier", fmt.Sprintf("Multiplicador must be a positive number, got %q", raw)})
			}
		}
	}

	return errs
}

// CommitCatalogImport inserts previously validated rows into the
// catalog_items collection. Row-level failures are collected rather than
// aborting the whole batch.
func CommitCatalogImport(app *pocketbase.PocketBase, rows []map[string]string) (*ImportResult, error) {
	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return nil, fmt.Errorf("could not find catalog_items collection: %w", err)
	}

	result := &ImportResult{}
	for _, values := range rows {
		record := core.NewRecord(col)
		record.Set("category", values["category"])
		record.Set("description", values["description"])
		record.Set("unit", values["unit"])
		cost, _ := strconv.ParseFloat(values["unit_cost"], 64)
		record.Set("unit_cost", cost)
		if values["category"] == CategoryLabor {
			if st := values["schedule_type"]; st != "" {
				record.Set("schedule_type", st)
			}
			if raw := values["multiplier"]; raw != "" {
				if m, err := strconv.ParseFloat(raw, 64); err == nil && m > 0 {
					record.Set("multiplier", m)
				}
			}
		}

		if err := app.Save(record); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", values["description"], err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

// columnLetters returns the first n Excel column names ("A", "B", ...).
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
