package in

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"timebox/internal/modules/preferences/dto"
	prefsin "timebox/internal/modules/preferences/port/in"
	"timebox/internal/platform/auth"
	apperrors "timebox/internal/platform/errors"
)

type HTTPHandler struct {
	catalog prefsin.Catalog
}

func NewHTTPHandler(catalog prefsin.Catalog) *HTTPHandler {
	return &HTTPHandler{catalog: catalog}
}

func (h *HTTPHandler) Register(g *echo.Group) {
	g.GET("/preferences", h.Get)
	g.PUT("/preferences", h.Put)
}

// Get creates the defaults on first access.
// GET /api/preferences
func (h *HTTPHandler) Get(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	prefs, err := h.catalog.Get(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Put leaves fields missing from the body unchanged.
// PUT /api/preferences
func (h *HTTPHandler) Put(c echo.Context) error {
	owner, err := auth.Principal(c)
	if err != nil {
		return err
	}
	var input dto.PreferencesPatch
	if err := c.Bind(&input); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	prefs, err := h.catalog.Put(c.Request().Context(), owner, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}
