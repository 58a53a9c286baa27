package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lowermainland/capacity/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.GET("/encounters/ed", h.ListEDEncounters)
	g.GET("/encounters/ip", h.ListIPStays)
	g.GET("/population/projections", h.ListPopulationProjections)
	g.GET("/population/ed-rates", h.ListEDBaselineRates)
}

// filterFromQuery parses the shared optional filters. Malformed integer
// parameters are a client error.
func filterFromQuery(c echo.Context) (Filter, error) {
	f := Filter{
		AgeGroup:  c.QueryParam("age_group"),
		Gender:    c.QueryParam("gender"),
		PatientID: c.QueryParam("patient_id"),
	}
	for _, q := range []struct {
		name string
		dest **int
	}{
		{"facility_id", &f.FacilityID},
		{"lha_id", &f.LHAID},
		{"year", &f.Year},
	} {
		raw := c.QueryParam(q.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+q.name)
		}
		*q.dest = &v
	}
	return f, nil
}

func (h *Handler) ListPatients(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	patients, total, err := h.svc.ListPatients(c.Request().Context(), f, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, p.Limit, p.Offset))
}

func (h *Handler) ListEDEncounters(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	encounters, total, err := h.svc.ListEDEncounters(c.Request().Context(), f, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(encounters, total, p.Limit, p.Offset))
}

func (h *Handler) ListIPStays(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	stays, total, err := h.svc.ListIPStays(c.Request().Context(), f, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(stays, total, p.Limit, p.Offset))
}

func (h *Handler) ListPopulationProjections(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	projections, total, err := h.svc.ListPopulationProjections(c.Request().Context(), f, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(projections, total, p.Limit, p.Offset))
}

func (h *Handler) ListEDBaselineRates(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	rates, total, err := h.svc.ListEDBaselineRates(c.Request().Context(), f, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(rates, total, p.Limit, p.Offset))
}
