package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/services"
)

// HandleCatalogTemplate serves the downloadable bulk-entry template.
func HandleCatalogTemplate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := services.GenerateCatalogTemplate()
		if err != nil {
			log.Printf("catalog import: failed to generate template: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate template")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="plantilla_catalogo.xlsx"`)
		_, err = e.Response.Write(data)
		return err
	}
}

// HandleCatalogValidate parses an uploaded catalog file and reports
// row-level validation results without persisting anything. The parsed
// rows are echoed back so the client can post them to the commit
// endpoint unchanged.
func HandleCatalogValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "No file uploaded")
		}
		defer file.Close()

		result, err := services.ValidateCatalogFile(file, header.Filename)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		parsedJSON, err := json.Marshal(result.ParsedRows)
		if err != nil {
			log.Printf("catalog import: failed to marshal parsed rows: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to process file")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"file_name":        header.Filename,
			"total_rows":       result.TotalRows,
			"valid_rows":       result.ValidRows,
			"error_rows":       result.ErrorRows,
			"errors":           result.Errors,
			"parsed_rows_json": string(parsedJSON),
		})
	}
}

// HandleCatalogImportCommit inserts the rows a previous validate call
// produced.
func HandleCatalogImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		raw := e.Request.FormValue("parsed_rows_json")
		if raw == "" {
			return apiError(e, http.StatusBadRequest, "No rows to import")
		}

		var rows []map[string]string
		if err := json.Unmarshal([]byte(raw), &rows); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid row data")
		}
		if len(rows) == 0 {
			return apiError(e, http.StatusBadRequest, "No rows to import")
		}

		result, err := services.CommitCatalogImport(app, rows)
		if err != nil {
			log.Printf("catalog import: commit failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to import rows")
		}

		return e.JSON(http.StatusOK, result)
	}
}
