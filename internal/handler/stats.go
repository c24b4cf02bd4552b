package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/repository"
)

// StatsHandler serves the public reporting endpoints. Both are read-only
// aggregates and sit behind the Redis response cache.
type StatsHandler struct {
	Stats *repository.StatsRepo
}

func NewStatsHandler(stats *repository.StatsRepo) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

// Traceability handles GET /v1/trace/:code: the scan history summary of a
// single product code.
func (h *StatsHandler) Traceability(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trace, err := h.Stats.Traceability(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown code"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, trace)
}

// MaterialStats handles GET /v1/stats/materials: aggregate recycling
// activity per material type.
func (h *StatsHandler) MaterialStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Stats.MaterialStats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": stats})
}
