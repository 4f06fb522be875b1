package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pizzaUnlimitedApi/internal/modules/analytics/usecase"
	"pizzaUnlimitedApi/internal/shared/httputil"
)

// HTTPHandler exposes the admin dashboard snapshot.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{uc: uc, errors: httputil.NewErrorMapper()}
}

// RegisterAdmin mounts the analytics routes.
func (h *HTTPHandler) RegisterAdmin(g *echo.Group) {
	g.GET("/analytics/overview", h.overview)
}

func (h *HTTPHandler) overview(c echo.Context) error {
	overview, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Analytics fetched successfully.", map[string]any{"analytics": overview})
}
