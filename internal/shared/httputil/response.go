package httputil

import (
	"github.com/labstack/echo/v4"

	"pizzaUnlimitedApi/internal/shared/pagination"
)

// Respond writes the conventional {success, message, <payload>} envelope.
func Respond(c echo.Context, status int, message string, payload map[string]any) error {
	body := echo.Map{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// Fail writes a failure envelope with the given status and message.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}

// ListMeta carries the pagination metadata every list endpoint returns.
type ListMeta struct {
	CurrentPage int
	TotalPages  int
	Total       int64
}

// NewListMeta derives the response metadata from the executed query and total count.
func NewListMeta(q pagination.Query, total int64) ListMeta {
	normalized := q.Normalize()
	return ListMeta{
		CurrentPage: normalized.Page,
		TotalPages:  normalized.TotalPages(total),
		Total:       total,
	}
}

// Apply merges the metadata into a payload map. totalKey names the entity-specific
// total field (totalItems, totalOrders, ...).
func (m ListMeta) Apply(payload map[string]any, totalKey string) map[string]any {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["currentPage"] = m.CurrentPage
	payload["totalPages"] = m.TotalPages
	payload[totalKey] = m.Total
	return payload
}
