package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventarioapp/services"
	"inventarioapp/testhelpers"
)

func TestHandleEstimateTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "T-1895", "Proyecto")
	testhelpers.CreateTestItem(t, app, proj.Id, services.CategoryMaterials, "Lámina", 3, 12.50)
	testhelpers.CreateTestLaborItem(t, app, proj.Id, "Técnico", services.ScheduleNight, 8, 20)

	handler := HandleEstimateTotals(app)
	req := httptest.NewRequest(http.MethodGet, "/api/projects/T-1895/estimate", nil)
	req.SetPathValue("ticket", "T-1895")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Ticket              string             `json:"ticket"`
		Categories          map[string]float64 `json:"categories"`
		GrandTotal          float64            `json:"grand_total"`
		GrandTotalFormatted string             `json:"grand_total_formatted"`
		ItemCount           int                `json:"item_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.Ticket != "T-1895" {
		t.Errorf("ticket = %q", payload.Ticket)
	}
	if payload.Categories[services.CategoryMaterials] != 37.50 {
		t.Errorf("materials = %f, want 37.50", payload.Categories[services.CategoryMaterials])
	}
	if payload.Categories[services.CategoryLabor] != 216 {
		t.Errorf("labor = %f, want 216", payload.Categories[services.CategoryLabor])
	}
	if payload.GrandTotal != 253.50 {
		t.Errorf("grand total = %f, want 253.50", payload.GrandTotal)
	}
	if payload.GrandTotalFormatted != "$253.50" {
		t.Errorf("formatted = %q", payload.GrandTotalFormatted)
	}
	if payload.ItemCount != 2 {
		t.Errorf("item count = %d, want 2", payload.ItemCount)
	}

	// All categories appear, including empty ones.
	for _, c := range services.CategoryOptions {
		if _, ok := payload.Categories[c]; !ok {
			t.Errorf("category %q missing from totals", c)
		}
	}
}

func TestHandleEstimateTotals_EmptyProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "T-1000", "Sin items")

	handler := HandleEstimateTotals(app)
	req := httptest.NewRequest(http.MethodGet, "/api/projects/T-1000/estimate", nil)
	req.SetPathValue("ticket", "T-1000")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var payload struct {
		GrandTotal float64 `json:"grand_total"`
		ItemCount  int     `json:"item_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.GrandTotal != 0 || payload.ItemCount != 0 {
		t.Errorf("expected zero totals, got %+v", payload)
	}
}

func TestHandleEstimateTotals_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleEstimateTotals(app)
	req := httptest.NewRequest(http.MethodGet, "/api/projects/nope/estimate", nil)
	req.SetPathValue("ticket", "nope")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
