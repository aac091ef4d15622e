package in

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"timebox/internal/modules/sheet/dto"
	sheetin "timebox/internal/modules/sheet/port/in"
	"timebox/internal/platform/auth"
	apperrors "timebox/internal/platform/errors"
)

// HTTPHandler serves /api/sheets for the authenticated principal.
type HTTPHandler struct {
	catalog sheetin.Catalog
}

func NewHTTPHandler(catalog sheetin.Catalog) *HTTPHandler {
	return &HTTPHandler{catalog: catalog}
}

// Register mounts the routes on an authenticated group.
func (h *HTTPHandler) Register(g *echo.Group) {
	g.GET("/sheets", h.List)
	g.POST("/sheets", h.Create)
	g.PUT("/sheets/:id", h.Update)
	g.DELETE("/sheets/:id", h.Delete)
}

// List returns the owner's sheets, newest day first.
// GET /api/sheets
func (h *HTTPHandler) List(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	sheets, err := h.catalog.List(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sheets)
}

// Create answers 400 with code "conflict" when the day is taken.
// POST /api/sheets
func (h *HTTPHandler) Create(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	var input dto.CreateSheetInput
	if err := c.Bind(&input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	sheet, err := h.catalog.Create(c.Request().Context(), owner, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sheet)
}

// PUT /api/sheets/:id
func (h *HTTPHandler) Update(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	var input dto.UpdateSheetInput
	if err := c.Bind(&input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	sheet, err := h.catalog.Update(c.Request().Context(), owner, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sheet)
}

// DELETE /api/sheets/:id
func (h *HTTPHandler) Delete(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Request().Context(), owner, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
