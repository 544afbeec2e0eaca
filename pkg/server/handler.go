package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/banahub/bayshore-backend-go/pkg/model"
	"github.com/banahub/bayshore-backend-go/pkg/service"
)

// Handler holds the services used by the route handlers. The binary wire
// codec of the cabinets lives in a separate gateway; this surface speaks
// JSON.
type Handler struct {
	crown *service.CrownService
	game  *service.GameService
	ghost *service.GhostService
}

func NewHandler(
	crown *service.CrownService,
	game *service.GameService,
	ghost *service.GhostService,
) *Handler {
	return &Handler{crown: crown, game: game, ghost: ghost}
}

func (h *Handler) LockCrown(c echo.Context) error {
	var req service.LockCrownRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.crown.LockCrown(c.Request().Context(), &req); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SaveGameResult(c echo.Context) error {
	var req service.SaveGameResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ret, err := h.game.SaveGameResult(c.Request().Context(), &req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) SaveGhostTrail(c echo.Context) error {
	var req service.SaveGhostTrailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ret, err := h.ghost.SaveGhostTrail(c.Request().Context(), &req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) LoadGhostBattleInfo(c echo.Context) error {
	carID, err := strconv.ParseInt(c.QueryParam("carId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing carId param")
	}
	ret, err := h.ghost.LoadGhostBattleInfo(c.Request().Context(), carID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) LoadGameHistory(c echo.Context) error {
	carID, err := strconv.ParseInt(c.QueryParam("carId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing carId param")
	}
	ret, err := h.game.GameHistory(c.Request().Context(), carID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) LoadCrownGhost(c echo.Context) error {
	area, err := areaParam(c)
	if err != nil {
		return err
	}
	ret, err := h.ghost.LoadCrownGhost(c.Request().Context(), area)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) GhostSummary(c echo.Context) error {
	var area *model.Area
	if raw := c.QueryParam("area"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid area param")
		}
		a := model.Area(parsed)
		area = &a
	}
	ret, err := h.ghost.GhostSummary(c.Request().Context(), area)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func (h *Handler) CrownList(c echo.Context) error {
	ret, err := h.crown.CrownList(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, ret)
}

func areaParam(c echo.Context) (model.Area, error) {
	raw := c.QueryParam("area")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing area param")
	}
	parsed, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid area param")
	}
	return model.Area(parsed), nil
}

// mapError keeps the failure surface coarse: invalid input is a 400,
// anything else one undifferentiated 500. Empty results never reach this
// path, the services report them in-band.
func mapError(err error) error {
	if errors.Is(err, service.ErrInvalidArea) ||
		errors.Is(err, service.ErrInvalidRequest) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
