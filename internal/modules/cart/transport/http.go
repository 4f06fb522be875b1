package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/cart/domain"
	"pizzaUnlimitedApi/internal/modules/cart/usecase"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/httputil"
)

// HTTPHandler exposes the customer cart routes.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{
		uc: uc,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrCartNotFound, http.StatusNotFound, "Cart not found.").
			WithMapping(domain.ErrItemNotInCart, http.StatusNotFound, "Item not found in cart."),
	}
}

// RegisterCustomer mounts the authenticated cart routes.
func (h *HTTPHandler) RegisterCustomer(g *echo.Group) {
	g.POST("/cart/add", h.add)
	g.GET("/cart/my", h.mine)
	g.GET("/cart/count", h.count)
	g.PUT("/cart/:itemId", h.setQuantity)
	g.DELETE("/cart/:itemId", h.remove)
}

type addRequest struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

func (h *HTTPHandler) add(c echo.Context) error {
	var req addRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Validation failed.")
	}
	itemID, err := primitive.ObjectIDFromHex(req.Item)
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	if req.Quantity < 1 {
		return httputil.Fail(c, http.StatusBadRequest, "Quantity must be at least 1.")
	}
	if err := h.uc.Add(c.Request().Context(), auth.UserID(c), itemID, req.Quantity); err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Item added to cart.", nil)
}

func (h *HTTPHandler) mine(c echo.Context) error {
	view, err := h.uc.Mine(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Cart fetched successfully."
	if len(view.Items) == 0 {
		message = "Your cart is empty."
	}
	return httputil.Respond(c, http.StatusOK, message, map[string]any{"cart": view})
}

func (h *HTTPHandler) count(c echo.Context) error {
	count, err := h.uc.Count(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Cart count fetched.", map[string]any{"count": count})
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *HTTPHandler) setQuantity(c echo.Context) error {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	var req quantityRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return httputil.Fail(c, http.StatusBadRequest, "Quantity must be numeric.")
	}
	if err := h.uc.SetQuantity(c.Request().Context(), auth.UserID(c), itemID, *req.Quantity); err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Cart updated successfully."
	if *req.Quantity <= 0 {
		message = "Item removed from cart."
	}
	return httputil.Respond(c, http.StatusOK, message, nil)
}

func (h *HTTPHandler) remove(c echo.Context) error {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	if err := h.uc.Remove(c.Request().Context(), auth.UserID(c), itemID); err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Item removed from cart.", nil)
}
