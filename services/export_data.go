package services

import "fmt"

// ExportItem is a single estimate line prepared for export.
type ExportItem struct {
	Index        string
	Description  string
	Quantity     float64
	Unit         string
	UnitCost     float64
	ScheduleType string
	Multiplier   float64
	Subtotal     float64
}

// ExportSection groups the items of one category with its subtotal.
type ExportSection struct {
	Category string
	Items    []ExportItem
	Subtotal float64
}

// ExportData holds everything needed to render an estimate export.
type ExportData struct {
	ProjectTicket string
	ProjectTitle  string
	Responsible   string
	CreatedDate   string
	Sections      []ExportSection
	GrandTotal    float64
}

// BuildExportData arranges an item collection into per-category sections
// in display order. Empty categories are skipped.
func BuildExportData(ticket, title, responsible, createdDate string, items []LineItem) ExportData {
	data := ExportData{
		ProjectTicket: ticket,
		ProjectTitle:  title,
		Responsible:   responsible,
		CreatedDate:   createdDate,
	}

	for _, category := range CategoryOptions {
		section := ExportSection{Category: category}
		n := 0
		for _, item := range items {
			if item.Category != category {
				continue
			}
			n++
			sub := LineSubtotal(item)
			row := ExportItem{
				Index:       fmt.Sprintf("%d", n),
				Description: item.Description,
				Quantity:    item.Quantity,
				Unit:        item.Unit,
				UnitCost:    item.UnitCost,
				Subtotal:    sub,
			}
			if item.Category == CategoryLabor {
				row.ScheduleType = item.ScheduleType
				row.Multiplier = ResolveMultiplier(item)
			}
			section.Items = append(section.Items, row)
			section.Subtotal += sub
		}
		if len(section.Items) == 0 {
			continue
		}
		data.Sections = append(data.Sections, section)
		data.GrandTotal += section.Subtotal
	}

	return data
}

// formatQty renders a quantity as a whole number when it has no fractional
// part, otherwise with two decimals.
func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

// formatMultiplier renders a labor multiplier as "x1.35", or "" when the
// item carries none.
func formatMultiplier(m float64) string {
	if m == 0 {
		return ""
	}
	return fmt.Sprintf("x%.2f", m)
}
