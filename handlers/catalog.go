package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// HandleCatalogList returns all catalog items ordered by description,
// optionally filtered by ?category=.
func HandleCatalogList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if category := e.Request.URL.Query().Get("category"); category != "" {
			filter = "category = {:category}"
			params["category"] = category
		}

		records, err := app.FindRecordsByFilter("catalog_items", filter, "description", 0, 0, params)
		if err != nil {
			log.Printf("catalog: failed to list catalog items: %v", err)
			records = nil
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, catalogItemJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleCatalogCreate adds a reusable catalog item. Schedule fields are
// only accepted for labor entries.
func HandleCatalogCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		errs := make(map[string]string)

		category := e.Request.FormValue("category")
		if !services.IsValidCategory(category) {
			errs["category"] = "Unknown category"
		}
		description := strings.TrimSpace(e.Request.FormValue("description"))
		if description == "" {
			errs["description"] = "Description is required"
		}
		unit := strings.TrimSpace(e.Request.FormValue("unit"))
		if unit == "" {
			errs["unit"] = "Unit is required"
		}

		scheduleType := e.Request.FormValue("schedule_type")
		if category == services.CategoryLabor && scheduleType != "" && !services.IsValidScheduleType(scheduleType) {
			errs["schedule_type"] = "Unknown schedule type"
		}

		if len(errs) > 0 {
			return validationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("catalog_items")
		if err != nil {
			log.Printf("catalog: could not find catalog_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save catalog item")
		}

		rec := core.NewRecord(col)
		rec.Set("category", category)
		rec.Set("description", description)
		rec.Set("unit", unit)
		if cost, err := strconv.ParseFloat(e.Request.FormValue("unit_cost"), 64); err == nil {
			rec.Set("unit_cost", cost)
		}
		if category == services.CategoryLabor {
			if scheduleType != "" {
				rec.Set("schedule_type", scheduleType)
			}
			if m, err := strconv.ParseFloat(e.Request.FormValue("multiplier"), 64); err == nil && m > 0 {
				rec.Set("multiplier", m)
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("catalog: failed to save catalog item: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save catalog item")
		}

		return e.JSON(http.StatusCreated, catalogItemJSON(rec))
	}
}

// HandleCatalogDelete removes a catalog item. Line items that referenced
// it keep their copied values.
func HandleCatalogDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		rec, err := app.FindRecordById("catalog_items", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Catalog item not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("catalog: failed to delete catalog item %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete catalog item")
		}
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleDropdownOptions returns the fixed dropdown option lists the item
// forms render.
func HandleDropdownOptions() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"categories":     services.CategoryOptions,
			"schedule_types": services.ScheduleTypeOptions,
			"units":          services.DefaultUnits,
		})
	}
}
