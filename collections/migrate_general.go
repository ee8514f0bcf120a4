package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// GeneralTicket is the sentinel ticket id for the project-less estimate
// users build from the home page.
const GeneralTicket = "general"

// EnsureGeneralProject finds or creates the sentinel "general" project
// and returns it.
func EnsureGeneralProject(app *pocketbase.PocketBase) (*core.Record, error) {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return nil, fmt.Errorf("could not find projects collection: %w", err)
	}

	found, err := app.FindRecordsByFilter(
		projectsCol,
		"ticket = {:ticket}",
		"", 1, 0,
		map[string]any{"ticket": GeneralTicket},
	)
	if err == nil && len(found) > 0 {
		return found[0], nil
	}

	record := core.NewRecord(projectsCol)
	record.Set("ticket", GeneralTicket)
	record.Set("title", "Inventario General")
	record.Set("status", "")
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("could not create general project: %w", err)
	}
	return record, nil
}

// MigrateOrphanItemsToGeneralProject re-parents inventory items that have
// no project onto the sentinel "general" project. Safe to call on every
// startup -- returns early if nothing to migrate.
func MigrateOrphanItemsToGeneralProject(app *pocketbase.PocketBase) error {
	itemsCol, err := app.FindCollectionByNameOrId("inventory_items")
	if err != nil {
		return fmt.Errorf("migrate: could not find inventory_items collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(
		itemsCol,
		"project = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query orphan items: %w", err)
	}

	general, err := EnsureGeneralProject(app)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	log.Printf("migrate: found %d orphan item(s) without a project -- attaching to %q...\n",
		len(orphans), GeneralTicket)

	for _, item := range orphans {
		item.Set("project", general.Id)
		if err := app.Save(item); err != nil {
			log.Printf("migrate: failed to link item %s to general project: %v\n", item.Id, err)
			continue
		}
	}

	log.Println("migrate: orphan item migration complete.")
	return nil
}
