package transport

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/orders/domain"
	"pizzaUnlimitedApi/internal/modules/orders/usecase"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/httputil"
	"pizzaUnlimitedApi/internal/shared/pagination"
	"pizzaUnlimitedApi/internal/shared/transition"
)

// HTTPHandler exposes the customer ordering routes and the admin order panel.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{
		uc: uc,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrOrderNotFound, http.StatusNotFound, "Order not found.").
			WithMapping(domain.ErrNotOwner, http.StatusForbidden, "You are not authorized to access this order.").
			WithMapping(domain.ErrNotCancellable, http.StatusBadRequest, "Only pending orders can be cancelled.").
			WithMapping(domain.ErrStatusConflict, http.StatusConflict, "Order was modified concurrently, please retry.").
			WithMapping(domain.ErrItemUnresolved, http.StatusConflict, "Order references an item that no longer exists.").
			WithMapping(transition.ErrInvalidTarget, http.StatusBadRequest, "Invalid status value.").
			WithMapping(transition.ErrTerminalState, http.StatusBadRequest, "Order is in a terminal status.").
			WithMapping(transition.ErrIllegalTransition, http.StatusBadRequest, "Invalid status transition."),
	}
}

// RegisterCustomer mounts the authenticated customer routes.
func (h *HTTPHandler) RegisterCustomer(g *echo.Group) {
	g.POST("/orders", h.place)
	g.GET("/orders/my", h.listMine)
	g.GET("/orders/:id", h.getMine)
	g.PUT("/orders/:id", h.cancelMine)
	g.GET("/orders/:id/invoice", h.invoice)
}

// RegisterAdmin mounts the order management routes.
func (h *HTTPHandler) RegisterAdmin(g *echo.Group) {
	g.GET("/orders", h.listAll)
	g.GET("/orders/:id", h.getAny)
	g.PUT("/orders/:id/status", h.setStatus)
}

type placeRequest struct {
	Items []struct {
		Item     string `json:"item"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	TotalAmount   *float64 `json:"totalAmount"`
	PaymentMethod string   `json:"paymentMethod"`
	TableNumber   string   `json:"tableNumber"`
	CustomerPhone string   `json:"customerPhone"`
	CustomerEmail string   `json:"customerEmail"`
	OrderNotes    string   `json:"orderNotes"`
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (r placeRequest) validate() string {
	if len(r.Items) == 0 {
		return "Order must contain at least 1 item."
	}
	for _, line := range r.Items {
		if line.Item == "" {
			return "Item ID missing."
		}
		if line.Quantity < 1 {
			return "Item quantity must be at least 1."
		}
	}
	if _, ok := domain.PaymentMethods[r.PaymentMethod]; !ok {
		return "Invalid payment method."
	}
	if strings.TrimSpace(r.TableNumber) == "" {
		return "Table number is required."
	}
	if !isTenDigits(r.CustomerPhone) {
		return "Phone must be 10 digits."
	}
	if _, err := mail.ParseAddress(r.CustomerEmail); err != nil {
		return "Valid email is required."
	}
	if r.TotalAmount == nil {
		return "Total amount must be numeric."
	}
	return ""
}

func (h *HTTPHandler) place(c echo.Context) error {
	var req placeRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Validation failed.")
	}
	if msg := req.validate(); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		itemID, err := primitive.ObjectIDFromHex(line.Item)
		if err != nil {
			return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
		}
		items = append(items, domain.LineItem{ItemID: itemID, Quantity: line.Quantity})
	}

	order, err := h.uc.Place(c.Request().Context(), auth.UserID(c), usecase.PlaceInput{
		Items:         items,
		TotalAmount:   *req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		TableNumber:   req.TableNumber,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		OrderNotes:    req.OrderNotes,
	})
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusCreated, "Order placed successfully.", map[string]any{"order": order})
}

func (h *HTTPHandler) listMine(c echo.Context) error {
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
	orders, total, err := h.uc.ListMine(c.Request().Context(), auth.UserID(c), q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Orders fetched successfully."
	if len(orders) == 0 {
		message = "No orders yet."
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"orders": orders}, "totalOrders")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) getMine(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Order ID.")
	}
	order, err := h.uc.GetMine(c.Request().Context(), auth.UserID(c), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Order fetched successfully.", map[string]any{"order": order})
}

func (h *HTTPHandler) cancelMine(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Order ID.")
	}
	order, err := h.uc.CancelMine(c.Request().Context(), auth.UserID(c), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Order cancelled successfully.", map[string]any{"order": order})
}

func (h *HTTPHandler) invoice(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Order ID.")
	}
	invoice, err := h.uc.Invoice(c.Request().Context(), auth.UserID(c), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Invoice generated.", map[string]any{"invoice": invoice})
}

func (h *HTTPHandler) listAll(c echo.Context) error {
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
	orders, total, err := h.uc.ListAll(c.Request().Context(), c.QueryParam("status"), q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Orders fetched."
	if len(orders) == 0 {
		message = "No orders yet."
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"orders": orders}, "totalOrders")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) getAny(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Order ID.")
	}
	order, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Order fetched successfully!", map[string]any{"order": order})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *HTTPHandler) setStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Order ID.")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid status update.")
	}
	order, err := h.uc.SetStatus(c.Request().Context(), id, domain.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Order status updated successfully.", map[string]any{"order": order})
}
