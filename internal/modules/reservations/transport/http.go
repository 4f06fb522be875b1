package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/reservations/domain"
	"pizzaUnlimitedApi/internal/modules/reservations/usecase"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/httputil"
	"pizzaUnlimitedApi/internal/shared/pagination"
	"pizzaUnlimitedApi/internal/shared/transition"
)

// HTTPHandler exposes customer booking routes and the admin reservation panel.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
	now    func() time.Time
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{
		uc:  uc,
		now: time.Now,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrReservationNotFound, http.StatusNotFound, "Reservation not found.").
			WithMapping(domain.ErrNotOwner, http.StatusForbidden, "You are not authorized to access this reservation.").
			WithMapping(domain.ErrNotCancellable, http.StatusBadRequest, "Only pending reservations can be cancelled.").
			WithMapping(domain.ErrStatusConflict, http.StatusConflict, "Reservation was modified concurrently, please retry.").
			WithMapping(transition.ErrInvalidTarget, http.StatusBadRequest, "Invalid status value.").
			WithMapping(transition.ErrTerminalState, http.StatusBadRequest, "Reservation is in a terminal status.").
			WithMapping(transition.ErrIllegalTransition, http.StatusBadRequest, "Invalid status transition."),
	}
}

// RegisterCustomer mounts the authenticated customer routes.
func (h *HTTPHandler) RegisterCustomer(g *echo.Group) {
	g.POST("/reservations", h.create)
	g.GET("/reservations/my", h.listMine)
	g.PUT("/reservations/:id", h.cancelMine)
}

// RegisterAdmin mounts the reservation management routes.
func (h *HTTPHandler) RegisterAdmin(g *echo.Group) {
	g.GET("/reservations", h.listAll)
	g.GET("/reservation/:id", h.get)
	g.PUT("/reservation/:id/status", h.setStatus)
}

type createRequest struct {
	Name           string `json:"name"`
	PeopleCount    int    `json:"peopleCount"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	SpecialRequest string `json:"specialRequest"`
}

func (r createRequest) validate(now time.Time) (time.Time, string) {
	if strings.TrimSpace(r.Name) == "" {
		return time.Time{}, "Please enter a name."
	}
	if r.PeopleCount < 1 || r.PeopleCount > 20 {
		return time.Time{}, "People count must be between 1 and 20."
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, "Date must be in YYYY-MM-DD format."
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return time.Time{}, "Date must be today or in the future."
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		return time.Time{}, "Time must be in HH:MM format."
	}
	if len(r.SpecialRequest) > 200 {
		return time.Time{}, "Special request should not exceed 200 characters."
	}
	return date, ""
}

func (h *HTTPHandler) create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Validation failed.")
	}
	date, msg := req.validate(h.now().UTC())
	if msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	reservation, err := h.uc.Create(c.Request().Context(), auth.UserID(c), usecase.CreateInput{
		Name:           req.Name,
		PeopleCount:    req.PeopleCount,
		Date:           date,
		Time:           req.Time,
		SpecialRequest: req.SpecialRequest,
	})
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusCreated, "Reservation requested successfully.", map[string]any{"reservation": reservation})
}

func (h *HTTPHandler) listMine(c echo.Context) error {
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
	reservations, total, err := h.uc.ListMine(c.Request().Context(), auth.UserID(c), q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Reservations fetched successfully."
	if len(reservations) == 0 {
		message = "No reservations yet."
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"reservations": reservations}, "totalReservations")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) cancelMine(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Reservation ID.")
	}
	reservation, err := h.uc.CancelMine(c.Request().Context(), auth.UserID(c), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Reservation cancelled successfully.", map[string]any{"reservation": reservation})
}

func (h *HTTPHandler) listAll(c echo.Context) error {
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
	reservations, total, err := h.uc.ListAll(c.Request().Context(), q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Reservations fetched."
	if len(reservations) == 0 {
		message = "No reservations yet."
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"reservations": reservations}, "totalReservations")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) get(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Reservation ID.")
	}
	reservation, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Reservation fetched successfully.", map[string]any{"reservation": reservation})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *HTTPHandler) setStatus(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Reservation ID.")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid status update.")
	}
	reservation, err := h.uc.SetStatus(c.Request().Context(), id, domain.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Reservation status updated successfully.", map[string]any{"reservation": reservation})
}
