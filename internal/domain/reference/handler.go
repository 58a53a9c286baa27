package reference

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc             *Service
	defaultSchedule string
}

func NewHandler(svc *Service, defaultSchedule string) *Handler {
	return &Handler{svc: svc, defaultSchedule: defaultSchedule}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/sites", h.ListSites)
	g.GET("/programs", h.ListPrograms)
	g.GET("/subprograms", h.ListSubprograms)
	g.GET("/lhas", h.ListLHAs)
	g.GET("/staffed-beds", h.ListStaffedBeds)
	g.GET("/baselines", h.ListBaselines)
	g.GET("/seasonality", h.ListSeasonality)
	g.GET("/staffing-factors", h.ListStaffingFactors)
}

// envelope wraps list responses in the {data, meta} shape the UI consumes.
func envelope(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": data,
		"meta": map[string]interface{}{"count": count},
	})
}

func (h *Handler) ListSites(c echo.Context) error {
	sites, err := h.svc.ListSites(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, sites, len(sites))
}

func (h *Handler) ListPrograms(c echo.Context) error {
	programs, err := h.svc.ListPrograms(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, programs, len(programs))
}

func (h *Handler) ListSubprograms(c echo.Context) error {
	var programID *int
	if raw := c.QueryParam("program_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid program_id")
		}
		programID = &id
	}
	subprograms, err := h.svc.ListSubprograms(c.Request().Context(), programID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, subprograms, len(subprograms))
}

func (h *Handler) ListLHAs(c echo.Context) error {
	lhas, err := h.svc.ListLHAs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, lhas, len(lhas))
}

func (h *Handler) ListStaffedBeds(c echo.Context) error {
	schedule := c.QueryParam("schedule_code")
	if schedule == "" {
		schedule = h.defaultSchedule
	}
	beds, err := h.svc.ListStaffedBeds(c.Request().Context(), schedule)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, beds, len(beds))
}

func (h *Handler) ListBaselines(c echo.Context) error {
	year := 0
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = y
	}
	baselines, err := h.svc.ListBaselines(c.Request().Context(), year)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, baselines, len(baselines))
}

func (h *Handler) ListSeasonality(c echo.Context) error {
	multipliers, err := h.svc.ListSeasonality(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, multipliers, len(multipliers))
}

func (h *Handler) ListStaffingFactors(c echo.Context) error {
	factors, err := h.svc.ListStaffingFactors(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return envelope(c, factors, len(factors))
}
