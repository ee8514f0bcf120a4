package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"inventarioapp/collections"
	"inventarioapp/handlers"
	"inventarioapp/notion"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app := pocketbase.New()

	var notionClient *notion.Client
	apiKey := os.Getenv("NOTION_API_KEY")
	databaseID := os.Getenv("NOTION_DATABASE_ID")
	if apiKey != "" && databaseID != "" {
		notionClient = notion.NewClient(apiKey, databaseID)
	} else {
		log.Println("NOTION_API_KEY / NOTION_DATABASE_ID not set, ticket lookups disabled")
	}

	// Create collections, seed data and migrate orphans on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateOrphanItemsToGeneralProject(app); err != nil {
			log.Printf("Warning: orphan item migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.CORS())

		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectUpsert(app))
		se.Router.GET("/api/projects/{ticket}", handlers.HandleProjectGet(app, notionClient))
		se.Router.DELETE("/api/projects/{ticket}", handlers.HandleProjectDelete(app))

		// ── Estimate items ───────────────────────────────────────
		se.Router.GET("/api/projects/{ticket}/items", handlers.HandleItemList(app))
		se.Router.POST("/api/projects/{ticket}/items", handlers.HandleItemCreate(app))
		se.Router.PATCH("/api/items/{itemId}", handlers.HandleItemPatch(app))
		se.Router.DELETE("/api/items/{itemId}", handlers.HandleItemDelete(app))

		// ── Totals ───────────────────────────────────────────────
		se.Router.GET("/api/projects/{ticket}/estimate", handlers.HandleEstimateTotals(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/api/projects/{ticket}/export/excel", handlers.HandleEstimateExportExcel(app))
		se.Router.GET("/api/projects/{ticket}/export/pdf", handlers.HandleEstimateExportPDF(app))

		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalogList(app))
		se.Router.POST("/api/catalog", handlers.HandleCatalogCreate(app))
		se.Router.DELETE("/api/catalog/{id}", handlers.HandleCatalogDelete(app))

		// ── Catalog bulk import ──────────────────────────────────
		se.Router.GET("/api/catalog/template", handlers.HandleCatalogTemplate(app))
		se.Router.POST("/api/catalog/import", handlers.HandleCatalogValidate(app))
		se.Router.POST("/api/catalog/import/commit", handlers.HandleCatalogImportCommit(app))

		// ── Unit costs ───────────────────────────────────────────
		se.Router.GET("/api/unit-costs", handlers.HandleUnitCostList(app))
		se.Router.POST("/api/unit-costs", handlers.HandleUnitCostCreate(app))
		se.Router.PATCH("/api/unit-costs/{id}", handlers.HandleUnitCostPatch(app))
		se.Router.DELETE("/api/unit-costs/{id}", handlers.HandleUnitCostDelete(app))

		// ── Dropdown options ─────────────────────────────────────
		se.Router.GET("/api/options", handlers.HandleDropdownOptions())

		// ── Ticket lookup proxy ──────────────────────────────────
		se.Router.GET("/api/notion", handlers.HandleTicketLookup(app, notionClient))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
