package services

import "testing"

func TestGenerateEstimatePDF_Basic(t *testing.T) {
	result, err := GenerateEstimatePDF(estimateExportFixture())
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGenerateEstimatePDF_Empty(t *testing.T) {
	data := BuildExportData("general", "", "", "15/01/2026", nil)
	result, err := GenerateEstimatePDF(data)
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
}

func TestGenerateEstimatePDF_AllCategories(t *testing.T) {
	items := []LineItem{
		{Category: CategoryLabor, Description: "Técnico", Quantity: 8, Unit: "horas", UnitCost: 120, ScheduleType: ScheduleOvertime},
		{Category: CategoryEquipment, Description: "Soldadora", Quantity: 2, Unit: "días", UnitCost: 350},
		{Category: CategoryMaterials, Description: "Perfil PTR", Quantity: 10, Unit: "metros", UnitCost: 95},
		{Category: CategoryConsumables, Description: "Disco de corte", Quantity: 5, Unit: "unidades", UnitCost: 28},
		{Category: CategoryOther, Description: "Flete", Quantity: 1, Unit: "viaje", UnitCost: 600},
	}
	data := BuildExportData("T-2001", "Fabricación de estructura", "Ana", "20/02/2026", items)

	result, err := GenerateEstimatePDF(data)
	if err != nil {
		t.Fatalf("GenerateEstimatePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateEstimatePDF() returned empty bytes")
	}
}
