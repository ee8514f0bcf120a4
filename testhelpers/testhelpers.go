// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/collections"
	"inventarioapp/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given ticket and
// title and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, ticket, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("ticket", ticket)
	record.Set("title", title)
	record.Set("status", "En curso")
	record.Set("responsible", "Luis")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestItem creates an inventory item linked to a project and returns it.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, projectID, category, description string, quantity, unitCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		t.Fatalf("failed to find inventory_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("category", category)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit", "unidades")
	record.Set("unit_cost", unitCost)
	if category == services.CategoryLabor {
		record.Set("unit", "horas")
		record.Set("schedule_type", services.ScheduleNormal)
		record.Set("multiplier", 1.0)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test inventory item: %v", err)
	}

	return record
}

// CreateTestLaborItem creates a labor inventory item with an explicit
// schedule type; the multiplier resolves from the schedule default.
func CreateTestLaborItem(t *testing.T, app *pocketbase.PocketBase, projectID, description, scheduleType string, quantity, unitCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		t.Fatalf("failed to find inventory_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("category", services.CategoryLabor)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit", "horas")
	record.Set("unit_cost", unitCost)
	record.Set("schedule_type", scheduleType)
	record.Set("multiplier", services.ScheduleMultiplier(scheduleType))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test labor item: %v", err)
	}

	return record
}

// CreateTestCatalogItem creates a catalog item record and returns it.
func CreateTestCatalogItem(t *testing.T, app *pocketbase.PocketBase, category, description string, unitCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		t.Fatalf("failed to find catalog_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("description", description)
	record.Set("unit", "unidades")
	record.Set("unit_cost", unitCost)
	if category == services.CategoryLabor {
		record.Set("unit", "horas")
		record.Set("schedule_type", services.ScheduleNight)
		record.Set("multiplier", 1.35)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test catalog item: %v", err)
	}

	return record
}

// CreateTestUnitCost creates a unit cost record and returns it.
func CreateTestUnitCost(t *testing.T, app *pocketbase.PocketBase, name, code string, defaultCost float64, isLaborUnit bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("unit_costs")
	if err != nil {
		t.Fatalf("failed to find unit_costs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("code", code)
	record.Set("default_cost", defaultCost)
	record.Set("is_labor_unit", isLaborUnit)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test unit cost: %v", err)
	}

	return record
}
