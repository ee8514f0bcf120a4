package services

import (
	"strconv"
	"strings"
)

// LineItemForm holds the raw form values submitted when adding an item to
// an estimate. Numeric fields stay strings here; BuildLineItem owns the
// coercion rules.
type LineItemForm struct {
	Description   string
	Quantity      string
	Unit          string
	UnitCost      string
	ScheduleType  string
	Multiplier    string
	CatalogItemID string
	UnitCostID    string
}

// CatalogItem is a reusable cost template a user can pick to pre-fill a
// line item.
type CatalogItem struct {
	ID           string  `json:"id"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	UnitCost     float64 `json:"unit_cost"`
	ScheduleType string  `json:"schedule_type,omitempty"`
	Multiplier   float64 `json:"multiplier,omitempty"`
}

// UnitCost is a named default price-per-unit definition.
type UnitCost struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	DefaultCost float64 `json:"default_cost"`
	Description string  `json:"description,omitempty"`
	IsLaborUnit bool    `json:"is_labor_unit"`
}

// parseAmount coerces a form value to a number. Empty or malformed input
// becomes 0 rather than an error; the estimate forms have always behaved
// this way and stricter rejection would change user-visible behavior.
func parseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// PrefillFromCatalog copies catalog defaults into the form fields the user
// left empty and carries the catalog back-reference. Fields the user
// already filled in win over the catalog values.
func PrefillFromCatalog(form LineItemForm, item CatalogItem) LineItemForm {
	form.CatalogItemID = item.ID
	if strings.TrimSpace(form.Description) == "" {
		form.Description = item.Description
	}
	if strings.TrimSpace(form.Unit) == "" {
		form.Unit = item.Unit
	}
	if strings.TrimSpace(form.UnitCost) == "" {
		form.UnitCost = strconv.FormatFloat(item.UnitCost, 'f', -1, 64)
	}
	if item.Category == CategoryLabor {
		if strings.TrimSpace(form.ScheduleType) == "" {
			form.ScheduleType = item.ScheduleType
		}
		if strings.TrimSpace(form.Multiplier) == "" && item.Multiplier > 0 {
			form.Multiplier = strconv.FormatFloat(item.Multiplier, 'f', -1, 64)
		}
	}
	return form
}

// PrefillFromUnitCost fills the unit label and default cost from a unit
// cost definition, keeping any values the user already entered.
func PrefillFromUnitCost(form LineItemForm, unit UnitCost) LineItemForm {
	form.UnitCostID = unit.ID
	if strings.TrimSpace(form.Unit) == "" {
		form.Unit = unit.Name
	}
	if strings.TrimSpace(form.UnitCost) == "" {
		form.UnitCost = strconv.FormatFloat(unit.DefaultCost, 'f', -1, 64)
	}
	return form
}

// BuildLineItem validates and normalizes form state into a persistable
// line item. The returned map is non-empty when validation failed; nothing
// should be persisted in that case.
func BuildLineItem(form LineItemForm, projectID, category string) (LineItem, map[string]string) {
	errs := make(map[string]string)

	description := strings.TrimSpace(form.Description)
	if description == "" {
		errs["description"] = "Description is required"
	}
	if projectID == "" {
		errs["project"] = "Project is required"
	}
	if !IsValidCategory(category) {
		errs["category"] = "Unknown category"
	}

	item := LineItem{
		ProjectID:     projectID,
		Category:      category,
		Description:   description,
		Quantity:      parseAmount(form.Quantity),
		Unit:          strings.TrimSpace(form.Unit),
		UnitCost:      parseAmount(form.UnitCost),
		CatalogItemID: form.CatalogItemID,
		UnitCostID:    form.UnitCostID,
	}

	if category == CategoryLabor {
		scheduleType := strings.TrimSpace(form.ScheduleType)
		if !IsValidScheduleType(scheduleType) {
			errs["schedule_type"] = "Schedule type must be one of: " + strings.Join(ScheduleTypeOptions, ", ")
		} else {
			item.ScheduleType = scheduleType
			if m := parseAmount(form.Multiplier); m > 0 {
				item.Multiplier = m
			} else {
				item.Multiplier = ScheduleMultiplier(scheduleType)
			}
		}
	}

	if len(errs) > 0 {
		return LineItem{}, errs
	}
	return item, nil
}
