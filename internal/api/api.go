// Package api exposes the service over HTTP: per-network routes for
// account, token and transaction operations, with a uniform error shape.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/larahfelipe/tronbridge/internal/account"
	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/metrics"
	"github.com/larahfelipe/tronbridge/internal/token"
	"github.com/larahfelipe/tronbridge/internal/transaction"
)

// Services bundles the per-network service handles the handlers dispatch to.
type Services struct {
	Account     *account.Service
	Token       *token.Inspector
	Transaction *transaction.Service
}

// Server is the HTTP boundary. Routes are registered per configured
// network at construction; gateway handles live for the process lifetime.
type Server struct {
	echo             *echo.Echo
	logger           *logrus.Logger
	defaultListLimit int
}

// NewServer builds the echo instance and registers all routes.
func NewServer(networks map[string]Services, defaultListLimit int, logger *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:             e,
		logger:           logger,
		defaultListLimit: defaultListLimit,
	}

	e.HTTPErrorHandler = server.errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(server.logMiddleware)
	e.Use(metrics.HTTPMiddleware())

	for network, services := range networks {
		server.registerRoutes(network, services)
	}

	return server
}

func (s *Server) registerRoutes(network string, services Services) {
	accounts := accountHandler{services: services}
	group := s.echo.Group("/v1/account/" + network)
	group.GET("", accounts.get)
	group.POST("/create", accounts.create)
	group.POST("/recover", accounts.recover)

	tokens := tokenHandler{services: services}
	s.echo.GET("/v1/token/"+network, tokens.get)

	transactions := transactionHandler{services: services, defaultListLimit: s.defaultListLimit}
	group = s.echo.Group("/v1/transaction/" + network)
	group.GET("", transactions.get)
	group.GET("/all", transactions.getAll)
	group.POST("/transfer", transactions.createTransfer)
	group.POST("/stake", transactions.createStake)
}

// Start blocks serving requests until the listener fails or Stop is called.
func (s *Server) Start(addr string) error {
	s.logger.Infof("api server listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// errorHandler renders every error as the uniform {name, message} shape.
// Router-level errors (unknown route, wrong method) keep echo's status.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		name := "BadRequest"
		if echoErr.Code == http.StatusNotFound {
			name = "EntityNotFound"
		}
		_ = c.JSON(echoErr.Code, map[string]string{
			"name":    name,
			"message": http.StatusText(echoErr.Code),
		})
		return
	}

	appErr := apperr.From(err)
	if appErr == apperr.ErrInternal {
		s.logger.WithError(err).Error("request failed")
	}

	_ = c.JSON(appErr.Status, map[string]string{
		"name":    appErr.Name,
		"message": appErr.Message,
	})
}

func (s *Server) logMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)

		entry := s.logger.WithFields(logrus.Fields{
			"method":     c.Request().Method,
			"path":       c.Request().URL.Path,
			"status":     c.Response().Status,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		})
		if err != nil {
			entry.WithError(err).Warn("request completed with error")
		} else {
			entry.Debug("request completed")
		}

		return err
	}
}
