package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// HandleItemList returns the inventory items of a project, optionally
// filtered by ?category=.
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		project, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("items: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}
		if project == nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		filter := "project = {:project}"
		params := map[string]any{"project": project.Id}
		if category := e.Request.URL.Query().Get("category"); category != "" {
			filter += " && category = {:category}"
			params["category"] = category
		}

		records, err := app.FindRecordsByFilter("inventory_items", filter, "created", 0, 0, params)
		if err != nil {
			log.Printf("items: failed to list items for %q: %v", ticket, err)
			records = nil
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, itemJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// readLineItemForm pulls the line item form fields from the request.
func readLineItemForm(e *core.RequestEvent) services.LineItemForm {
	return services.LineItemForm{
		Description:   e.Request.FormValue("description"),
		Quantity:      e.Request.FormValue("quantity"),
		Unit:          e.Request.FormValue("unit"),
		UnitCost:      e.Request.FormValue("unit_cost"),
		ScheduleType:  e.Request.FormValue("schedule_type"),
		Multiplier:    e.Request.FormValue("multiplier"),
		CatalogItemID: e.Request.FormValue("catalog_item"),
		UnitCostID:    e.Request.FormValue("unit_cost_ref"),
	}
}

// HandleItemCreate adds a line item to a project's estimate. When the
// form references a catalog item or unit cost, their defaults pre-fill
// any fields the user left empty.
func HandleItemCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		project, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("items: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}
		if project == nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		form := readLineItemForm(e)
		category := e.Request.FormValue("category")

		if form.CatalogItemID != "" {
			catalogRec, err := app.FindRecordById("catalog_items", form.CatalogItemID)
			if err != nil {
				log.Printf("items: catalog item %q not found, skipping prefill: %v", form.CatalogItemID, err)
				form.CatalogItemID = ""
			} else {
				if category == "" {
					category = catalogRec.GetString("category")
				}
				form = services.PrefillFromCatalog(form, services.CatalogItem{
					ID:           catalogRec.Id,
					Category:     catalogRec.GetString("category"),
					Description:  catalogRec.GetString("description"),
					Unit:         catalogRec.GetString("unit"),
					UnitCost:     catalogRec.GetFloat("unit_cost"),
					ScheduleType: catalogRec.GetString("schedule_type"),
					Multiplier:   catalogRec.GetFloat("multiplier"),
				})
			}
		}

		if form.UnitCostID != "" {
			unitRec, err := app.FindRecordById("unit_costs", form.UnitCostID)
			if err != nil {
				log.Printf("items: unit cost %q not found, skipping prefill: %v", form.UnitCostID, err)
				form.UnitCostID = ""
			} else {
				form = services.PrefillFromUnitCost(form, services.UnitCost{
					ID:          unitRec.Id,
					Name:        unitRec.GetString("name"),
					Code:        unitRec.GetString("code"),
					DefaultCost: unitRec.GetFloat("default_cost"),
					IsLaborUnit: unitRec.GetBool("is_labor_unit"),
				})
			}
		}

		item, errs := services.BuildLineItem(form, project.Id, category)
		if len(errs) > 0 {
			return validationFailed(e, errs)
		}

		col, err := app.FindCollectionByNameOrId("inventory_items")
		if err != nil {
			log.Printf("items: could not find inventory_items collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to save item")
		}

		rec := core.NewRecord(col)
		rec.Set("project", item.ProjectID)
		rec.Set("category", item.Category)
		rec.Set("description", item.Description)
		rec.Set("quantity", item.Quantity)
		rec.Set("unit", item.Unit)
		rec.Set("unit_cost", item.UnitCost)
		if item.ScheduleType != "" {
			rec.Set("schedule_type", item.ScheduleType)
		}
		if item.Multiplier > 0 {
			rec.Set("multiplier", item.Multiplier)
		}
		if item.CatalogItemID != "" {
			rec.Set("catalog_item", item.CatalogItemID)
		}
		if item.UnitCostID != "" {
			rec.Set("unit_cost_ref", item.UnitCostID)
		}

		if err := app.Save(rec); err != nil {
			log.Printf("items: failed to save item for %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to save item")
		}

		return e.JSON(http.StatusCreated, itemJSON(rec))
	}
}

// HandleItemPatch updates individual fields of an inventory item.
// Only the fields present in the form are touched.
func HandleItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		rec, err := app.FindRecordById("inventory_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		for field := range e.Request.Form {
			value := e.Request.FormValue(field)
			switch field {
			case "description", "unit":
				rec.Set(field, value)
			case "quantity", "unit_cost", "multiplier":
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					f = 0
				}
				rec.Set(field, f)
			case "category":
				if !services.IsValidCategory(value) {
					return validationFailed(e, map[string]string{"category": "Unknown category"})
				}
				rec.Set(field, value)
			case "schedule_type":
				if value != "" && !services.IsValidScheduleType(value) {
					return validationFailed(e, map[string]string{"schedule_type": "Unknown schedule type"})
				}
				rec.Set(field, value)
			}
		}

		// Non-labor items never carry schedule fields.
		if rec.GetString("category") != services.CategoryLabor {
			rec.Set("schedule_type", "")
			rec.Set("multiplier", 0)
		}

		if err := app.Save(rec); err != nil {
			log.Printf("items: failed to update item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Failed to update item")
		}

		return e.JSON(http.StatusOK, itemJSON(rec))
	}
}

// HandleItemDelete removes one inventory item.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		rec, err := app.FindRecordById("inventory_items", itemID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("items: failed to delete item %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete item")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
