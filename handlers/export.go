package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// buildEstimateExportData loads a project and its items and arranges
// them for export rendering.
func buildEstimateExportData(app *pocketbase.PocketBase, ticket string) (services.ExportData, error) {
	project, err := findProjectByTicket(app, ticket)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("look up project %q: %w", ticket, err)
	}
	if project == nil {
		return services.ExportData{}, fmt.Errorf("project %q not found", ticket)
	}

	records, err := app.FindRecordsByFilter(
		"inventory_items",
		"project = {:project}",
		"created", 0, 0,
		map[string]any{"project": project.Id},
	)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("list items for %q: %w", ticket, err)
	}

	items := make([]services.LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, itemToLineItem(rec))
	}

	created := project.GetDateTime("created").Time().Format("02/01/2006")
	return services.BuildExportData(
		project.GetString("ticket"),
		project.GetString("title"),
		project.GetString("responsible"),
		created,
		items,
	), nil
}

// sanitizeFilename strips characters that break Content-Disposition.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(`"`, "", `/`, "-", `\`, "-", " ", "_")
	return replacer.Replace(name)
}

// HandleEstimateExportExcel streams a project's estimate as an .xlsx
// workbook.
func HandleEstimateExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		data, err := buildEstimateExportData(app, ticket)
		if err != nil {
			log.Printf("export: excel export for %q failed: %v", ticket, err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		content, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("export: failed to generate excel for %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := sanitizeFilename(fmt.Sprintf("inventario_%s.xlsx", ticket))
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(content)
		return err
	}
}

// HandleEstimateExportPDF streams a project's estimate as a PDF.
func HandleEstimateExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		data, err := buildEstimateExportData(app, ticket)
		if err != nil {
			log.Printf("export: pdf export for %q failed: %v", ticket, err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		content, err := services.GenerateEstimatePDF(data)
		if err != nil {
			log.Printf("export: failed to generate pdf for %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := sanitizeFilename(fmt.Sprintf("inventario_%s.pdf", ticket))
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(content)
		return err
	}
}
