package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// HandleEstimateTotals returns the per-category and grand totals for a
// project's estimate, both raw and formatted for display.
func HandleEstimateTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		project, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("estimate: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}
		if project == nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"inventory_items",
			"project = {:project}",
			"created", 0, 0,
			map[string]any{"project": project.Id},
		)
		if err != nil {
			log.Printf("estimate: failed to list items for %q: %v", ticket, err)
			records = nil
		}

		items := make([]services.LineItem, 0, len(records))
		for _, rec := range records {
			items = append(items, itemToLineItem(rec))
		}

		totals := services.CalcEstimateTotals(items)

		formatted := make(map[string]string, len(totals.Categories))
		for category, total := range totals.Categories {
			formatted[category] = services.FormatMoney(total)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"ticket":                ticket,
			"categories":            totals.Categories,
			"grand_total":           totals.GrandTotal,
			"categories_formatted":  formatted,
			"grand_total_formatted": services.FormatMoney(totals.GrandTotal),
			"item_count":            len(items),
		})
	}
}
