// Package services provides the cost aggregation model: line item
// validation, subtotal math and estimate exports.
package services

// Stored category values. The original estimation sheets are in Spanish,
// so these are the wire constants persisted in records.
const (
	CategoryEquipment   = "Equipo"
	CategoryMaterials   = "Materiales"
	CategoryConsumables = "Consumibles"
	CategoryOther       = "Otros"
	CategoryLabor       = "Mano de obra"
)

// Labor schedule types.
const (
	ScheduleNormal   = "Normal"
	ScheduleNight    = "Nocturno"
	ScheduleSunday   = "Dominical"
	ScheduleOvertime = "T. Extra"
)

// scheduleMultipliers maps each schedule type to its fixed pay premium.
var scheduleMultipliers = map[string]float64{
	ScheduleNormal:   1,
	ScheduleNight:    1.35,
	ScheduleSunday:   1.75,
	ScheduleOvertime: 2,
}

// ScheduleMultiplier returns the fixed multiplier for a labor schedule
// type, or 1 for an unknown or empty type.
func ScheduleMultiplier(scheduleType string) float64 {
	if m, ok := scheduleMultipliers[scheduleType]; ok {
		return m
	}
	return 1
}

// LineItem is one line of a project's cost estimate. ScheduleType and
// Multiplier are only set for labor items; the builder clears them for
// every other category.
type LineItem struct {
	ID            string  `json:"id,omitempty"`
	ProjectID     string  `json:"project_id,omitempty"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	UnitCost      float64 `json:"unit_cost"`
	ScheduleType  string  `json:"schedule_type,omitempty"`
	Multiplier    float64 `json:"multiplier,omitempty"`
	CatalogItemID string  `json:"catalog_item,omitempty"`
	UnitCostID    string  `json:"unit_cost_ref,omitempty"`
}

// ResolveMultiplier returns the effective multiplier for an item:
// an explicit positive multiplier wins, then the schedule type default,
// then 1. Non-labor items always resolve to 1.
func ResolveMultiplier(item LineItem) float64 {
	if item.Category != CategoryLabor {
		return 1
	}
	if item.Multiplier > 0 {
		return item.Multiplier
	}
	return ScheduleMultiplier(item.ScheduleType)
}

// LineSubtotal computes quantity * unit cost, scaled by the resolved
// multiplier for labor items.
func LineSubtotal(item LineItem) float64 {
	return item.Quantity * item.UnitCost * ResolveMultiplier(item)
}

// CategoryTotal sums the subtotals of the items belonging to one category.
func CategoryTotal(items []LineItem, category string) float64 {
	var total float64
	for _, item := range items {
		if item.Category == category {
			total += LineSubtotal(item)
		}
	}
	return total
}

// GrandTotal sums the subtotals of all items regardless of category.
func GrandTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += LineSubtotal(item)
	}
	return total
}

// EstimateTotals aggregates an item collection. Totals accumulate at full
// float64 precision; rounding happens only when values are formatted for
// display.
type EstimateTotals struct {
	Categories map[string]float64
	GrandTotal float64
}

// CalcEstimateTotals derives per-category totals and the grand total from
// an item collection. Every known category is present in the result, with
// a zero total when it has no items.
func CalcEstimateTotals(items []LineItem) EstimateTotals {
	totals := EstimateTotals{Categories: make(map[string]float64, len(CategoryOptions))}
	for _, c := range CategoryOptions {
		totals.Categories[c] = 0
	}
	for _, item := range items {
		sub := LineSubtotal(item)
		totals.Categories[item.Category] += sub
		totals.GrandTotal += sub
	}
	return totals
}
