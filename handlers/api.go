// Package handlers contains the JSON API handlers for the estimation
// backend. Handlers follow the closure style
// func(app *pocketbase.PocketBase) func(*core.RequestEvent) error.
package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// apiError writes a JSON error payload in the {"error": ...} shape the
// frontend already expects.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]string{"error": message})
}

// validationFailed writes field-level validation errors. Nothing was
// persisted when this is returned.
func validationFailed(e *core.RequestEvent, errs map[string]string) error {
	return e.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
}

// findProjectByTicket resolves a project record from its external ticket
// id (or the "general" sentinel).
func findProjectByTicket(app *pocketbase.PocketBase, ticket string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"projects",
		"ticket = {:ticket}",
		"", 1, 0,
		map[string]any{"ticket": ticket},
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// projectJSON maps a project record to its API representation.
func projectJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":              rec.Id,
		"ticket":          rec.GetString("ticket"),
		"title":           rec.GetString("title"),
		"status":          rec.GetString("status"),
		"responsible":     rec.GetString("responsible"),
		"work_type":       rec.GetString("work_type"),
		"commitment_date": rec.GetString("commitment_date"),
		"created":         rec.GetDateTime("created").String(),
		"updated":         rec.GetDateTime("updated").String(),
	}
}

// itemToLineItem maps an inventory item record onto the services model.
func itemToLineItem(rec *core.Record) services.LineItem {
	return services.LineItem{
		ID:            rec.Id,
		ProjectID:     rec.GetString("project"),
		Category:      rec.GetString("category"),
		Description:   rec.GetString("description"),
		Quantity:      rec.GetFloat("quantity"),
		Unit:          rec.GetString("unit"),
		UnitCost:      rec.GetFloat("unit_cost"),
		ScheduleType:  rec.GetString("schedule_type"),
		Multiplier:    rec.GetFloat("multiplier"),
		CatalogItemID: rec.GetString("catalog_item"),
		UnitCostID:    rec.GetString("unit_cost_ref"),
	}
}

// itemJSON maps an inventory item record to its API representation,
// including the derived subtotal.
func itemJSON(rec *core.Record) map[string]any {
	item := itemToLineItem(rec)
	return map[string]any{
		"id":            item.ID,
		"project":       item.ProjectID,
		"category":      item.Category,
		"description":   item.Description,
		"quantity":      item.Quantity,
		"unit":          item.Unit,
		"unit_cost":     item.UnitCost,
		"schedule_type": item.ScheduleType,
		"multiplier":    item.Multiplier,
		"catalog_item":  item.CatalogItemID,
		"unit_cost_ref": item.UnitCostID,
		"subtotal":      services.LineSubtotal(item),
		"created":       rec.GetDateTime("created").String(),
		"updated":       rec.GetDateTime("updated").String(),
	}
}

// catalogItemJSON maps a catalog item record to its API representation.
func catalogItemJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"category":      rec.GetString("category"),
		"description":   rec.GetString("description"),
		"unit":          rec.GetString("unit"),
		"unit_cost":     rec.GetFloat("unit_cost"),
		"schedule_type": rec.GetString("schedule_type"),
		"multiplier":    rec.GetFloat("multiplier"),
		"created":       rec.GetDateTime("created").String(),
		"updated":       rec.GetDateTime("updated").String(),
	}
}

// unitCostJSON maps a unit cost record to its API representation.
func unitCostJSON(rec *core.Record) map[string]any {
	return map[string]any{
		"id":            rec.Id,
		"name":          rec.GetString("name"),
		"code":          rec.GetString("code"),
		"default_cost":  rec.GetFloat("default_cost"),
		"description":   rec.GetString("description"),
		"is_labor_unit": rec.GetBool("is_labor_unit"),
		"created":       rec.GetDateTime("created").String(),
		"updated":       rec.GetDateTime("updated").String(),
	}
}
