package scenario

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc   *Service
	store *Store
}

func NewHandler(svc *Service, store *Store) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/compute", h.Compute)
	g.POST("/save", h.Save)
	g.GET("/saved", h.ListSaved)
	g.GET("/saved/:id", h.GetSaved)
}

func (h *Handler) Compute(c echo.Context) error {
	var req ScenarioRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	resp, err := h.svc.ComputeScenario(c.Request().Context(), &req)
	if err != nil {
		var invalid *InvalidParameterError
		if errors.As(err, &invalid) {
			return echo.NewHTTPError(http.StatusBadRequest, invalid.Reason)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Save(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	saved, err := h.store.Save(payload)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{"id": saved.ID, "saved_at": saved.SavedAt},
	})
}

func (h *Handler) ListSaved(c echo.Context) error {
	saved, err := h.store.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": saved,
		"meta": map[string]interface{}{"count": len(saved)},
	})
}

func (h *Handler) GetSaved(c echo.Context) error {
	saved, err := h.store.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "scenario not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": saved})
}
