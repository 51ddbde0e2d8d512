package server

import (
	"context"
	"deployer/internal/logger"
	"deployer/internal/model"
	"deployer/internal/repository"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 20

type StatusSource interface {
	Snapshot() model.Snapshot
}

// Server exposes read-only status of the running deployer over HTTP.
type Server struct {
	echo     *echo.Echo
	source   StatusSource
	histRepo *repository.HistoryRepository
	addr     string
}

func New(source StatusSource, histRepo *repository.HistoryRepository, addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		source:   source,
		histRepo: histRepo,
		addr:     addr,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/status", s.handleStatus)

	g := s.echo.Group("/history")
	g.GET("", s.handleHistory)
	g.GET("/failed", s.handleFailed)
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() {
	go func() {
		logger.Log.Info("status server started",
			zap.String("addr", s.addr))

		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("status server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleStatus(c echo.Context) error {
	stats, err := s.histRepo.GetStats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"deployer": s.source.Snapshot(),
		"history":  stats,
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	n := defaultHistoryLimit
	if nStr := c.QueryParam("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid n"})
		}
		n = parsed
	}

	histories, err := s.histRepo.GetRecent(n)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, histories)
}

func (s *Server) handleFailed(c echo.Context) error {
	histories, err := s.histRepo.GetFailed()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, histories)
}
