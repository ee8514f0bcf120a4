// Package notion looks up ticket records in a Notion database and
// flattens their typed properties into plain display strings.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// ErrTicketNotFound is returned when no database page matches the ticket id.
var ErrTicketNotFound = errors.New("notion: ticket not found")

// Ticket carries the read-only display fields pulled from the ticketing
// database for one project.
type Ticket struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Responsible    string `json:"responsable"`
	WorkType       string `json:"tipoTrabajo"`
	CommitmentDate string `json:"fechaCompromiso"`
}

// Client queries a single Notion database for ticket records.
type Client struct {
	APIKey     string
	DatabaseID string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client against the public Notion API.
func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		APIKey:     apiKey,
		DatabaseID: databaseID,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type queryFilter struct {
	Property string      `json:"property"`
	Title    titleEquals `json:"title"`
}

type titleEquals struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results []struct {
		Properties map[string]Property `json:"properties"`
	} `json:"results"`
}

// QueryTicket looks up the database page whose title property equals the
// given ticket id (e.g. "T-1895") and extracts its display fields.
// Returns ErrTicketNotFound when no page matches.
func (c *Client) QueryTicket(ctx context.Context, ticketID string) (*Ticket, error) {
	// The title property in the source database is named "Ticket " with a
	// trailing space.
	reqBody := queryRequest{
		Filter: queryFilter{
			Property: "Ticket ",
			Title:    titleEquals{Equals: ticketID},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("notion: marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", c.BaseURL, c.DatabaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("notion: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notion: query database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notion: query returned status %d", resp.StatusCode)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("notion: decode response: %w", err)
	}

	if len(decoded.Results) == 0 {
		return nil, ErrTicketNotFound
	}

	props := decoded.Results[0].Properties
	return &Ticket{
		ID:             ticketID,
		Status:         ExtractPropertyValue(props["Status"]),
		Responsible:    ExtractPropertyValue(props["Responsable"]),
		WorkType:       ExtractPropertyValue(props["Tipo de trabajo"]),
		CommitmentDate: ExtractPropertyValue(props["Fecha Compromiso Cotización"]),
	}, nil
}
