package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/pinellone-backend/internal/usecase"
)

type Server struct {
	echo *echo.Echo
}

func New(logger *slog.Logger, gameUseCase usecase.GameUseCase) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	h := newHandlers(logger, gameUseCase)

	e.GET("/ping", h.Ping)

	e.POST("/games", h.CreateGame)
	e.GET("/games/:id", h.GetGame)
	e.DELETE("/games/:id", h.DeleteGame)

	e.POST("/games/:id/draw", h.Draw)
	e.POST("/games/:id/draw-preview", h.DrawPreview)
	e.POST("/games/:id/meld", h.Meld)
	e.POST("/games/:id/attach", h.Attach)
	e.POST("/games/:id/discard", h.Discard)
	e.POST("/games/:id/close", h.Close)

	e.GET("/players/:id", h.GetPlayer)

	return &Server{echo: e}
}

func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := that.echo.StartServer(srv); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	return that.echo.Shutdown(ctx)
}
