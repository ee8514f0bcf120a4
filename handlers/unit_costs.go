package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleUnitCostList returns all unit cost definitions ordered by name.
// Pass ?labor_only=true to get only labor units.
func HandleUnitCostList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		if e.Request.URL.Query().Get("labor_only") == "true" {
			filter = "is_labor_unit = true"
		}

		records, err := app.FindRecordsByFilter("unit_costs", filter, "name", 0, 0, nil)
		if err != nil {
			log.Printf("unit costs: failed to list unit costs: %v", err)
			records = nil
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, unitCostJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleUnitCostCreate adds a unit cost definition.
func HandleUnitCostCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		errs := make(map[string]string)
		name := strings.TrimSpace(e.Request.FormValue("name"))
		if name == "" {
			errs["name"] = "Name is required"
		}
		code := strings.TrimSpace(e.Request.FormValue("code"))
		if code == "" {
			errs["code"] = "Code is required"
		}
		if len(errs) > 0 {
			return validationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("unit_costs")
		if err != nil {
			log.Printf("unit costs: could not find unit_costs collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save unit cost")
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("code", code)
		if cost, err := strconv.ParseFloat(e.Request.FormValue("default_cost"), 64); err == nil {
			rec.Set("default_cost", cost)
		}
		rec.Set("description", e.Request.FormValue("description"))
		rec.Set("is_labor_unit", e.Request.FormValue("is_labor_unit") == "true")

		if err := app.Save(rec); err != nil {
			log.Printf("unit costs: failed to save unit cost %q: %v", name, err)
			return apiError(e, http.StatusInternalServerError, "Failed to save unit cost")
		}

		return e.JSON(http.StatusCreated, unitCostJSON(rec))
	}
}

// HandleUnitCostPatch updates individual fields of a unit cost
// definition. Only the fields present in the form are touched.
func HandleUnitCostPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		rec, err := app.FindRecordById("unit_costs", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Unit cost not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		for field := range e.Request.Form {
			value := e.Request.FormValue(field)
			switch field {
			case "name", "code", "description":
				rec.Set(field, value)
			case "default_cost":
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					f = 0
				}
				rec.Set(field, f)
			case "is_labor_unit":
				rec.Set(field, value == "true")
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("unit costs: failed to update unit cost %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update unit cost")
		}

		return e.JSON(http.StatusOK, unitCostJSON(rec))
	}
}

// HandleUnitCostDelete removes a unit cost definition. Line items that
// referenced it keep their copied values.
func HandleUnitCostDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		rec, err := app.FindRecordById("unit_costs", id)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Unit cost not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("unit costs: failed to delete unit cost %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete unit cost")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
