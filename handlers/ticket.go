package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/notion"
)

// HandleTicketLookup proxies a read-only ticket lookup against the
// ticketing database. The response shape is what the estimate header
// widget consumes: {"projectData": {...}}.
func HandleTicketLookup(app *pocketbase.PocketBase, nc *notion.Client) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.URL.Query().Get("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Project ID is required")
		}

		if nc == nil {
			return apiError(e, http.StatusInternalServerError, "Failed to fetch project data from Notion")
		}

		ctx, cancel := context.WithTimeout(e.Request.Context(), 20*time.Second)
		defer cancel()

		ticket, err := nc.QueryTicket(ctx, projectID)
		if err != nil {
			if errors.Is(err, notion.ErrTicketNotFound) {
				return apiError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("ticket: lookup failed for %q: %v", projectID, err)
			return apiError(e, http.StatusInternalServerError, "Failed to fetch project data from Notion")
		}

		return e.JSON(http.StatusOK, map[string]any{"projectData": ticket})
	}
}
