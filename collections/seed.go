package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type unitCostDef struct {
	name        string
	code        string
	defaultCost float64
	description string
	isLaborUnit bool
}

type catalogItemDef struct {
	category     string
	description  string
	unit         string
	unitCost     float64
	scheduleType string
	multiplier   float64
}

var seedUnitCosts = []unitCostDef{
	{name: "horas", code: "hr", defaultCost: 120, description: "Hora de trabajo estándar", isLaborUnit: true},
	{name: "días", code: "día", defaultCost: 960, description: "Jornada completa", isLaborUnit: true},
	{name: "unidades", code: "u", defaultCost: 0},
	{name: "kilogramos", code: "kg", defaultCost: 0},
	{name: "metros", code: "m", defaultCost: 0},
	{name: "litros", code: "lt", defaultCost: 0},
	{name: "lote", code: "lote", defaultCost: 0},
	{name: "viaje", code: "vj", defaultCost: 0, description: "Traslado de equipo o personal"},
}

var seedCatalogItems = []catalogItemDef{
	{category: services.CategoryLabor, description: "Técnico electromecánico", unit: "horas", unitCost: 120, scheduleType: services.ScheduleNormal, multiplier: 1},
	{category: services.CategoryLabor, description: "Técnico electromecánico (nocturno)", unit: "horas", unitCost: 120, scheduleType: services.ScheduleNight, multiplier: 1.35},
	{category: services.CategoryLabor, description: "Técnico electromecánico (dominical)", unit: "horas", unitCost: 120, scheduleType: services.ScheduleSunday, multiplier: 1.75},
	{category: services.CategoryLabor, description: "Técnico electromecánico (tiempo extra)", unit: "horas", unitCost: 120, scheduleType: services.ScheduleOvertime, multiplier: 2},
	{category: services.CategoryEquipment, description: "Soldadora inverter 200A", unit: "días", unitCost: 350},
	{category: services.CategoryEquipment, description: "Andamio tubular (cuerpo)", unit: "días", unitCost: 85},
	{category: services.CategoryMaterials, description: "Lámina galvanizada cal. 22", unit: "unidades", unitCost: 420},
	{category: services.CategoryMaterials, description: "Perfil PTR 2\" cal. 14", unit: "metros", unitCost: 95},
	{category: services.CategoryConsumables, description: "Disco de corte 4 1/2\"", unit: "unidades", unitCost: 28},
	{category: services.CategoryConsumables, description: "Electrodo 6013 1/8\"", unit: "kilogramos", unitCost: 65},
	{category: services.CategoryOther, description: "Flete local", unit: "viaje", unitCost: 600},
}

// Seed populates the unit cost table and a starter catalog. It is safe to
// call on every startup because it returns early if any unit cost records
// already exist.
func Seed(app *pocketbase.PocketBase) error {
	unitCostsCol, err := app.FindCollectionByNameOrId("unit_costs")
	if err != nil {
		return fmt.Errorf("seed: could not find unit_costs collection: %w", err)
	}
	existing, err := app.FindAllRecords(unitCostsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query unit_costs: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: unit_costs collection is empty – inserting seed data …")

	catalogCol, err := app.FindCollectionByNameOrId("catalog_items")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_items collection: %w", err)
	}

	for _, d := range seedUnitCosts {
		r := core.NewRecord(unitCostsCol)
		r.Set("name", d.name)
		r.Set("code", d.code)
		r.Set("default_cost", d.defaultCost)
		if d.description != "" {
			r.Set("description", d.description)
		}
		r.Set("is_labor_unit", d.isLaborUnit)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save unit_cost %q: %w", d.name, err)
		}
	}

	for _, d := range seedCatalogItems {
		r := core.NewRecord(catalogCol)
		r.Set("category", d.category)
		r.Set("description", d.description)
		r.Set("unit", d.unit)
		r.Set("unit_cost", d.unitCost)
		if d.scheduleType != "" {
			r.Set("schedule_type", d.scheduleType)
		}
		if d.multiplier > 0 {
			r.Set("multiplier", d.multiplier)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog_item %q: %w", d.description, err)
		}
	}

	log.Printf("seed: inserted %d unit costs and %d catalog items\n",
		len(seedUnitCosts), len(seedCatalogItems))
	return nil
}
