package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzaUnlimitedApi/internal/modules/menu/domain"
	"pizzaUnlimitedApi/internal/modules/menu/usecase"
	"pizzaUnlimitedApi/internal/shared/httputil"
	"pizzaUnlimitedApi/internal/shared/pagination"
)

const maxDescriptionLen = 200

// HTTPHandler exposes the public menu browsing routes and the admin catalog CRUD.
type HTTPHandler struct {
	uc     *usecase.Usecase
	errors *httputil.ErrorMapper
}

func NewHTTPHandler(uc *usecase.Usecase) *HTTPHandler {
	return &HTTPHandler{
		uc: uc,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found.").
			WithMapping(domain.ErrItemNotFound, http.StatusNotFound, "Menu item not found.").
			WithMapping(domain.ErrDuplicateCategory, http.StatusBadRequest, "Category with this name already exists."),
	}
}

// RegisterPublic mounts the unauthenticated browsing routes.
func (h *HTTPHandler) RegisterPublic(g *echo.Group) {
	g.GET("/menu/categories", h.listCategories)
	g.GET("/menu/category/:id", h.listItemsPublic)
	g.GET("/menu/item/:id", h.getItem)
}

// RegisterAdmin mounts the catalog management routes.
func (h *HTTPHandler) RegisterAdmin(g *echo.Group) {
	g.GET("/menu/categories", h.listCategories)
	g.POST("/menu/category", h.createCategory)
	g.PUT("/menu/category/:id", h.updateCategory)
	g.DELETE("/menu/category/:id", h.deleteCategory)
	g.GET("/menu/categories/:id/items", h.listItemsAdmin)
	g.POST("/menu/categories/:id/items", h.createItem)
	g.PUT("/menu/items/:id", h.updateItem)
	g.DELETE("/menu/items/:id", h.deleteItem)
}

func (h *HTTPHandler) listCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Categories fetched."
	if len(categories) == 0 {
		message = "No categories found."
	}
	return httputil.Respond(c, http.StatusOK, message, map[string]any{"categories": categories})
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsOrderable *bool   `json:"isOrderable"`
}

func (r categoryRequest) validate(requireName bool) string {
	if requireName && (r.Name == nil || strings.TrimSpace(*r.Name) == "") {
		return "Please enter a category name."
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return "Category name cannot be empty."
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLen {
		return "Description should not exceed 200 characters."
	}
	return ""
}

func (h *HTTPHandler) createCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid category data.")
	}
	if msg := req.validate(true); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	name := strings.TrimSpace(*req.Name)
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	isOrderable := true
	if req.IsOrderable != nil {
		isOrderable = *req.IsOrderable
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), name, description, isOrderable)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusCreated, "Category added successfully!", map[string]any{"category": category})
}

func (h *HTTPHandler) updateCategory(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid ID.")
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid category data.")
	}
	if msg := req.validate(false); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	patch := domain.CategoryPatch{Description: req.Description, IsOrderable: req.IsOrderable}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		patch.Name = &trimmed
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, patch)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Category updated successfully!", map[string]any{"category": category})
}

func (h *HTTPHandler) deleteCategory(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid ID.")
	}
	category, deleted, err := h.uc.DeleteCategory(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := fmt.Sprintf("Category %q and %d associated item(s) deleted successfully.", category.Name, deleted)
	return httputil.Respond(c, http.StatusOK, message, map[string]any{"deletedCategory": category})
}

func (h *HTTPHandler) listItemsPublic(c echo.Context) error {
	return h.listItems(c, "No items in this category.")
}

func (h *HTTPHandler) listItemsAdmin(c echo.Context) error {
	return h.listItems(c, "No items yet.")
}

func (h *HTTPHandler) listItems(c echo.Context, emptyMessage string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid category ID.")
	}
	q := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"))

	items, total, err := h.uc.ListItems(c.Request().Context(), id, q)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := "Items fetched."
	if len(items) == 0 {
		message = emptyMessage
	}
	payload := httputil.NewListMeta(q, total).Apply(map[string]any{"items": items}, "totalItems")
	return httputil.Respond(c, http.StatusOK, message, payload)
}

func (h *HTTPHandler) getItem(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	item, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Menu item fetched successfully.", map[string]any{"menuItem": item})
}

type itemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Available   *bool    `json:"available"`
	Category    *string  `json:"category"`
}

func (r itemRequest) validate(requireAll bool) string {
	if requireAll {
		if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
			return "Please enter the name of the item."
		}
		if r.Price == nil {
			return "Please enter a valid price greater than 0."
		}
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return "Item name cannot be empty."
	}
	if r.Price != nil && *r.Price <= 0 {
		return "Price must be greater than 0."
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLen {
		return "Description should not exceed 200 characters."
	}
	return ""
}

func (h *HTTPHandler) createItem(c echo.Context) error {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid category ID.")
	}
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item data.")
	}
	if msg := req.validate(true); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	name := strings.TrimSpace(*req.Name)
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	image := ""
	if req.Image != nil {
		image = *req.Image
	}

	item, category, err := h.uc.CreateItem(c.Request().Context(), categoryID, name, description, image, *req.Price)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := fmt.Sprintf("Item %q added successfully under %q category!", item.Name, category.Name)
	return httputil.Respond(c, http.StatusCreated, message, map[string]any{"item": item})
}

func (h *HTTPHandler) updateItem(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item data.")
	}
	if msg := req.validate(false); msg != "" {
		return httputil.Fail(c, http.StatusBadRequest, msg)
	}

	patch := domain.ItemPatch{
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Available:   req.Available,
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		patch.Name = &trimmed
	}
	if req.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			return httputil.Fail(c, http.StatusBadRequest, "Invalid category ID format.")
		}
		patch.CategoryID = &categoryID
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), id, patch)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return httputil.Respond(c, http.StatusOK, "Item updated successfully!", map[string]any{"updatedItem": item})
}

func (h *HTTPHandler) deleteItem(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, "Invalid item ID.")
	}
	item, err := h.uc.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	message := fmt.Sprintf("Item %q deleted successfully.", item.Name)
	return httputil.Respond(c, http.StatusOK, message, map[string]any{"deletedItem": item})
}
