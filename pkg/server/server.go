package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banahub/bayshore-backend-go/log"
)

// New assembles the echo instance with logging, recovery and CORS
// middleware and registers all routes.
func New(h *Handler) *echo.Echo {
	logger := log.Default().Named("http")

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []log.Field{
				log.Int("status", v.Status),
				log.String("method", v.Method),
				log.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, log.ErrorField(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.POST("/method/lock_crown", h.LockCrown)
	e.POST("/method/save_game_result", h.SaveGameResult)
	e.POST("/method/save_ghost_trail", h.SaveGhostTrail)
	e.POST("/method/load_ghost_battle_info", h.LoadGhostBattleInfo)
	e.POST("/method/load_game_history", h.LoadGameHistory)
	e.GET("/resource/crown_ghost", h.LoadCrownGhost)
	e.GET("/resource/ghost_summary", h.GhostSummary)
	e.GET("/resource/crown_list", h.CrownList)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "up"})
	})
	return e
}
