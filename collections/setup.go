package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// Setup programmatically creates/ensures the projects, inventory_items,
// catalog_items and unit_costs collections exist.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		// External ticket id (e.g. "T-1895") or the sentinel "general".
		c.Fields.Add(&core.TextField{Name: "ticket", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.TextField{Name: "status", Required: false})
		c.Fields.Add(&core.TextField{Name: "responsible", Required: false})
		c.Fields.Add(&core.TextField{Name: "work_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "commitment_date", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_projects_ticket", true, "ticket", "")
	})

	unitCosts := ensureCollection(app, "unit_costs", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.NumberField{Name: "default_cost", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_labor_unit"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_unit_costs_name", true, "name", "")
	})

	catalogItems := ensureCollection(app, "catalog_items", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.CategoryOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "schedule_type",
			Required:  false,
			Values:    services.ScheduleTypeOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "multiplier", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "inventory_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      false, // orphans are re-parented at startup
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    services.CategoryOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "schedule_type",
			Required:  false,
			Values:    services.ScheduleTypeOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "multiplier", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:          "catalog_item",
			Required:      false,
			CollectionId:  catalogItems.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "unit_cost_ref",
			Required:      false,
			CollectionId:  unitCosts.Id,
			CascadeDelete: false,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
