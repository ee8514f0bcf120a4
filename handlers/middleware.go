package handlers

import (
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase/core"
)

// CORS returns a middleware that answers preflight requests and stamps
// the allowed origin on every response. The origin comes from the
// ALLOWED_ORIGIN env var and defaults to "*" for local development.
func CORS() func(*core.RequestEvent) error {
	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return func(e *core.RequestEvent) error {
		h := e.Response.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if e.Request.Method == http.MethodOptions {
			return e.NoContent(http.StatusNoContent)
		}
		return e.Next()
	}
}
