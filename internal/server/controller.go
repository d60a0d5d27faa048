package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/product-dash/internal/models"
	"github.com/nguyentranbao-ct/product-dash/internal/usecase"
)

type Controller interface {
	Health(c echo.Context) error
	Products(c echo.Context) error
	Product(c echo.Context) error
	Search(c echo.Context) error
	Refresh(c echo.Context) error
	LoadMore(c echo.Context) error
	ClearCache(c echo.Context) error
	TriggerScrape(c echo.Context) error
}

type controller struct {
	dashboard usecase.DashboardUsecase
}

func NewController(dashboard usecase.DashboardUsecase) Controller {
	return &controller{
		dashboard: dashboard,
	}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "product-dash",
	})
}

func (h *controller) Products(c echo.Context) error {
	state := h.dashboard.Products(c.Request().Context())
	return c.JSON(http.StatusOK, state)
}

func (h *controller) Product(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.dashboard.Product(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

func (h *controller) Search(c echo.Context) error {
	var patch models.ParamsPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	state, err := h.dashboard.Search(c.Request().Context(), patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

func (h *controller) Refresh(c echo.Context) error {
	state, err := h.dashboard.Refresh(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

func (h *controller) LoadMore(c echo.Context) error {
	state, err := h.dashboard.LoadMore(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, state)
}

func (h *controller) ClearCache(c echo.Context) error {
	h.dashboard.ClearCache(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{
		"status": "cache cleared",
	})
}

type ScrapeRequest struct {
	URL string `json:"url" validate:"required,scrape_url"`
}

func (h *controller) TriggerScrape(c echo.Context) error {
	var req ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	resp, err := h.dashboard.TriggerScrape(ctx, req.URL)
	if err != nil {
		if errors.Is(err, models.ErrInvalidURL) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	if !resp.Success {
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
