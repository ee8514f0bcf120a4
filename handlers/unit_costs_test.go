package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inventarioapp/testhelpers"
)

func TestHandleUnitCostList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUnitCost(t, app, "horas", "hr", 120, true)
	testhelpers.CreateTestUnitCost(t, app, "unidades", "u", 0, false)

	handler := HandleUnitCostList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/unit-costs", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var units []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &units); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
}

func TestHandleUnitCostList_LaborOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUnitCost(t, app, "horas", "hr", 120, true)
	testhelpers.CreateTestUnitCost(t, app, "unidades", "u", 0, false)

	handler := HandleUnitCostList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/unit-costs?labor_only=true", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var units []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &units); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(units) != 1 || units[0]["name"] != "horas" {
		t.Errorf("unexpected labor filter result: %v", units)
	}
}

func TestHandleUnitCostCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleUnitCostCreate(app)
	form := url.Values{
		"name":          {"días"},
		"code":          {"día"},
		"default_cost":  {"960"},
		"is_labor_unit": {"true"},
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, newFormRequest(http.MethodPost, "/api/unit-costs", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var unit map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &unit); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if unit["default_cost"].(float64) != 960 {
		t.Errorf("default_cost = %v", unit["default_cost"])
	}
	if unit["is_labor_unit"] != true {
		t.Errorf("is_labor_unit = %v", unit["is_labor_unit"])
	}
}

func TestHandleUnitCostCreate_Validation(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleUnitCostCreate(app)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, newFormRequest(http.MethodPost, "/api/unit-costs", url.Values{}), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload map[string]map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := payload["errors"]["name"]; !ok {
		t.Errorf("expected name error, got %v", payload)
	}
	if _, ok := payload["errors"]["code"]; !ok {
		t.Errorf("expected code error, got %v", payload)
	}
}

func TestHandleUnitCostCreate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUnitCost(t, app, "horas", "hr", 120, true)

	handler := HandleUnitCostCreate(app)
	form := url.Values{
		"name": {"horas"},
		"code": {"h"},
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, newFormRequest(http.MethodPost, "/api/unit-costs", form), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on unique violation, got %d", rec.Code)
	}
}

func TestHandleUnitCostPatch(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	unit := testhelpers.CreateTestUnitCost(t, app, "horas", "hr", 120, true)

	handler := HandleUnitCostPatch(app)
	form := url.Values{"default_cost": {"150"}}
	req := newFormRequest(http.MethodPatch, "/api/unit-costs/"+unit.Id, form)
	req.SetPathValue("id", unit.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, _ := app.FindRecordById("unit_costs", unit.Id)
	if reloaded.GetFloat("default_cost") != 150 {
		t.Errorf("default_cost = %f, want 150", reloaded.GetFloat("default_cost"))
	}
	if reloaded.GetString("code") != "hr" {
		t.Errorf("untouched field changed: %q", reloaded.GetString("code"))
	}
}

func TestHandleUnitCostDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	unit := testhelpers.CreateTestUnitCost(t, app, "viaje", "vj", 600, false)

	handler := HandleUnitCostDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/unit-costs/"+unit.Id, nil)
	req.SetPathValue("id", unit.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("unit_costs", unit.Id); err == nil {
		t.Error("expected unit cost to be deleted")
	}
}

func TestHandleUnitCostDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleUnitCostDelete(app)
	req := httptest.NewRequest(http.MethodDelete, "/api/unit-costs/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
