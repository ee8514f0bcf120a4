package services

import "testing"

func TestBuildExportData_SectionsInDisplayOrder(t *testing.T) {
	items := []LineItem{
		{Category: CategoryOther, Description: "Flete", Quantity: 1, UnitCost: 600},
		{Category: CategoryLabor, Description: "Técnico", Quantity: 8, UnitCost: 120, ScheduleType: ScheduleNight},
		{Category: CategoryMaterials, Description: "Lámina", Quantity: 4, UnitCost: 420},
	}

	data := BuildExportData("T-1895", "Cambio de banda", "Luis", "15/01/2026", items)

	if data.ProjectTicket != "T-1895" || data.ProjectTitle != "Cambio de banda" {
		t.Errorf("header fields not carried: %+v", data)
	}
	if len(data.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(data.Sections))
	}
	want := []string{CategoryLabor, CategoryMaterials, CategoryOther}
	for i, category := range want {
		if data.Sections[i].Category != category {
			t.Errorf("section %d = %q, want %q", i, data.Sections[i].Category, category)
		}
	}
}

func TestBuildExportData_SkipsEmptyCategories(t *testing.T) {
	items := []LineItem{
		{Category: CategoryEquipment, Description: "Soldadora", Quantity: 2, UnitCost: 350},
	}
	data := BuildExportData("general", "", "", "", items)
	if len(data.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(data.Sections))
	}
	if data.Sections[0].Category != CategoryEquipment {
		t.Errorf("unexpected section %q", data.Sections[0].Category)
	}
}

func TestBuildExportData_Totals(t *testing.T) {
	items := []LineItem{
		{Category: CategoryLabor, Description: "Técnico", Quantity: 8, UnitCost: 20, ScheduleType: ScheduleNight},
		{Category: CategoryMaterials, Description: "Lámina", Quantity: 3, UnitCost: 12.50},
	}
	data := BuildExportData("T-1", "", "", "", items)

	if !moneyClose(data.Sections[0].Subtotal, 216) {
		t.Errorf("labor subtotal = %f, want 216", data.Sections[0].Subtotal)
	}
	if !moneyClose(data.Sections[1].Subtotal, 37.50) {
		t.Errorf("materials subtotal = %f, want 37.50", data.Sections[1].Subtotal)
	}
	if !moneyClose(data.GrandTotal, 253.50) {
		t.Errorf("grand total = %f, want 253.50", data.GrandTotal)
	}
}

func TestBuildExportData_LaborRowsCarryScheduleFields(t *testing.T) {
	items := []LineItem{
		{Category: CategoryLabor, Description: "Técnico", Quantity: 8, UnitCost: 120, ScheduleType: ScheduleSunday},
		{Category: CategoryMaterials, Description: "Perfil", Quantity: 10, UnitCost: 95},
	}
	data := BuildExportData("T-1", "", "", "", items)

	labor := data.Sections[0].Items[0]
	if labor.ScheduleType != ScheduleSunday || labor.Multiplier != 1.75 {
		t.Errorf("labor row missing schedule fields: %+v", labor)
	}
	material := data.Sections[1].Items[0]
	if material.ScheduleType != "" || material.Multiplier != 0 {
		t.Errorf("material row carries schedule fields: %+v", material)
	}
}

func TestBuildExportData_IndexesRestartPerSection(t *testing.T) {
	items := []LineItem{
		{Category: CategoryMaterials, Description: "A", Quantity: 1, UnitCost: 1},
		{Category: CategoryMaterials, Description: "B", Quantity: 1, UnitCost: 1},
		{Category: CategoryOther, Description: "C", Quantity: 1, UnitCost: 1},
	}
	data := BuildExportData("T-1", "", "", "", items)

	if data.Sections[0].Items[1].Index != "2" {
		t.Errorf("second material index = %q, want 2", data.Sections[0].Items[1].Index)
	}
	if data.Sections[1].Items[0].Index != "1" {
		t.Errorf("other section index = %q, want 1", data.Sections[1].Items[0].Index)
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		qty  float64
		want string
	}{
		{3, "3"},
		{0, "0"},
		{2.5, "2.50"},
		{0.1, "0.10"},
	}
	for _, tt := range tests {
		if got := formatQty(tt.qty); got != tt.want {
			t.Errorf("formatQty(%v) = %q, want %q", tt.qty, got, tt.want)
		}
	}
}

func TestFormatMultiplier(t *testing.T) {
	if got := formatMultiplier(1.35); got != "x1.35" {
		t.Errorf("formatMultiplier(1.35) = %q", got)
	}
	if got := formatMultiplier(0); got != "" {
		t.Errorf("formatMultiplier(0) = %q, want empty", got)
	}
}
