package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/reviews/domain"
	"pizzaUnlimitedApi/internal/modules/reviews/usecase"
	"pizzaUnlimitedApi/internal/shared/auth"
	"pizzaUnlimitedApi/internal/shared/httputil"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

// HTTPHandler exposes the public review feed, customer submission and the
// admin moderation route.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{
		uc: uc,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrReviewNotFound, http.StatusNotFound, "Review not found."),
	}
}

// RegisterPublic mounts the unauthenticated routes.
func (h *HTTPHandler) RegisterPublic(g *echo.Group) {
	g.GET("/reviews", h.list)
}

// RegisterCustomer mounts the authenticated customer routes.
func (h *HTTPHandler) RegisterCustomer(g *echo.Group) {
	g.POST("/reviews", h.submit)
}

// RegisterAdmin mounts the moderation routes.
func (h *HTTPHandler) RegisterAdmin(g *echo.Group) {
	g.GET("/reviews", h.list)
	g.DELETE("/reviews/:id", h.remove)
}

type submitRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r submitRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Please enter a name."
	}
	if r.Rating < 1 || r.Rating > 5 {
		return "Rating must be between 1 and 5."
	}
	if strings.TrimSpace(r.Comment) == "" {
		return "Please enter a comment."
	}
	if len(r.Comment) > 300 {
		return "Comment should not exceed 300 characters."
	}
	return ""
}

func (h *HTTPHandler) submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Validation failed.")
	}
	if msg := req.validate(); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	review, err := h.uc.Submit(c.Request().Context(), auth.UserID(c), usecase.SubmitInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusCreated, "Review submitted successfully.", map[string]any{"review": review})
}

func (h *HTTPHandler) list(c echo.Context) error {
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))
	reviews, total, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Reviews fetched successfully."
	if len(reviews) == 0 {
		message = "No reviews yet."
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"reviews": reviews}, "totalReviews")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) remove(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid Review ID.")
	}
	review, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Review deleted successfully.", map[string]any{"deletedReview": review})
}
