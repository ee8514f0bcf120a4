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

// HandleProjectList returns all projects, newest first.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter(
			"projects",
			"id != ''",
			"-created", 0, 0,
			nil,
		)
		if err != nil {
			log.Printf("projects: failed to list projects: %v", err)
			records = nil
		}

		out := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			out = append(out, projectJSON(rec))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleProjectGet returns one project by ticket. When the project does
// not exist locally it is looked up in the ticketing database and
// created on the fly, so opening a ticket URL always lands on a working
// estimate page.
func HandleProjectGet(app *pocketbase.PocketBase, nc *notion.Client) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")
		if ticket == "" {
			return apiError(e, http.StatusBadRequest, "Ticket is required")
		}

		rec, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("projects: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}
		if rec != nil {
			return e.JSON(http.StatusOK, projectJSON(rec))
		}

		if nc == nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		ctx, cancel := context.WithTimeout(e.Request.Context(), 20*time.Second)
		defer cancel()

		ticketInfo, err := nc.QueryTicket(ctx, ticket)
		if err != nil {
			if errors.Is(err, notion.ErrTicketNotFound) {
				return apiError(e, http.StatusNotFound, "Project not found")
			}
			log.Printf("projects: ticket lookup failed for %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to fetch project data from Notion")
		}

		col, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("projects: could not find projects collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to create project")
		}

		rec = core.NewRecord(col)
		rec.Set("ticket", ticket)
		rec.Set("status", ticketInfo.Status)
		rec.Set("responsible", ticketInfo.Responsible)
		rec.Set("work_type", ticketInfo.WorkType)
		rec.Set("commitment_date", ticketInfo.CommitmentDate)
		if err := app.Save(rec); err != nil {
			log.Printf("projects: failed to create project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to create project")
		}

		return e.JSON(http.StatusOK, projectJSON(rec))
	}
}

// HandleProjectUpsert creates or updates a project keyed by its ticket.
func HandleProjectUpsert(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		ticket := e.Request.FormValue("ticket")
		if ticket == "" {
			return validationFailed(e, map[string]string{"ticket": "Ticket is required"})
		}

		rec, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("projects: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}

		created := false
		if rec == nil {
			col, err := app.FindCollectionByNameOrId("projects")
			if err != nil {
				log.Printf("projects: could not find projects collection: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to create project")
			}
			rec = core.NewRecord(col)
			rec.Set("ticket", ticket)
			created = true
		}

		for _, field := range []string{"title", "status", "responsible", "work_type", "commitment_date"} {
			if _, ok := e.Request.Form[field]; ok {
				rec.Set(field, e.Request.FormValue(field))
			}
		}

		if err := app.Save(rec); err != nil {
			log.Printf("projects: failed to save project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to save project")
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return e.JSON(status, projectJSON(rec))
	}
}

// HandleProjectDelete removes a project and, through the cascade on the
// relation, all of its inventory items.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ticket := e.Request.PathValue("ticket")

		rec, err := findProjectByTicket(app, ticket)
		if err != nil {
			log.Printf("projects: failed to look up project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to look up project")
		}
		if rec == nil {
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("projects: failed to delete project %q: %v", ticket, err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete project")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
