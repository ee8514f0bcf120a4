package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/collections"
	"inventarioapp/services"
	"inventarioapp/testhelpers"
)

func TestEnsureGeneralProject_CreatesOnce(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	first, err := collections.EnsureGeneralProject(app)
	if err != nil {
		t.Fatalf("EnsureGeneralProject() error: %v", err)
	}
	if first.GetString("ticket") != collections.GeneralTicket {
		t.Errorf("ticket = %q, want %q", first.GetString("ticket"), collections.GeneralTicket)
	}

	second, err := collections.EnsureGeneralProject(app)
	if err != nil {
		t.Fatalf("second EnsureGeneralProject() error: %v", err)
	}
	if first.Id != second.Id {
		t.Errorf("general project was recreated (id %s -> %s)", first.Id, second.Id)
	}
}

func TestMigrateOrphanItems_AttachesToGeneral(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		t.Fatalf("find inventory_items: %v", err)
	}
	orphan := core.NewRecord(col)
	orphan.Set("category", services.CategoryMaterials)
	orphan.Set("description", "Item sin proyecto")
	orphan.Set("quantity", 2.0)
	orphan.Set("unit_cost", 100.0)
	if err := app.Save(orphan); err != nil {
		t.Fatalf("save orphan: %v", err)
	}

	if err := collections.MigrateOrphanItemsToGeneralProject(app); err != nil {
		t.Fatalf("MigrateOrphanItemsToGeneralProject() error: %v", err)
	}

	migrated, err := app.FindRecordById("inventory_items", orphan.Id)
	if err != nil {
		t.Fatalf("reload orphan: %v", err)
	}
	general, err := collections.EnsureGeneralProject(app)
	if err != nil {
		t.Fatalf("EnsureGeneralProject() error: %v", err)
	}
	if migrated.GetString("project") != general.Id {
		t.Errorf("orphan not attached to general project: %q", migrated.GetString("project"))
	}
}

func TestMigrateOrphanItems_LeavesParentedItemsAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "T-1895", "Con proyecto")
	item := testhelpers.CreateTestItem(t, app, proj.Id, services.CategoryEquipment, "Soldadora", 1, 350)

	if err := collections.MigrateOrphanItemsToGeneralProject(app); err != nil {
		t.Fatalf("MigrateOrphanItemsToGeneralProject() error: %v", err)
	}

	reloaded, err := app.FindRecordById("inventory_items", item.Id)
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if reloaded.GetString("project") != proj.Id {
		t.Errorf("parented item was moved: %q", reloaded.GetString("project"))
	}
}

func TestMigrateOrphanItems_NoOrphansIsNoop(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.MigrateOrphanItemsToGeneralProject(app); err != nil {
		t.Fatalf("MigrateOrphanItemsToGeneralProject() error: %v", err)
	}
	// The general project still gets created so the home page estimate works.
	if _, err := collections.EnsureGeneralProject(app); err != nil {
		t.Errorf("general project missing after migration: %v", err)
	}
}
