// Package server maps the HTTP API onto the validator and the matching
// engine. The wire format keeps the legacy signed-amount convention: a
// negative amount is an ask, a positive one a bid.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/corex-exchange/matchbook/internal/engine"
	"github.com/corex-exchange/matchbook/internal/validation"
	apperrors "github.com/corex-exchange/matchbook/pkg/errors"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	logger    *zap.Logger
	engine    *engine.Engine
	validator *validation.Validator
}

// NewServer creates the HTTP server façade over the engine and validator.
func NewServer(logger *zap.Logger, eng *engine.Engine, validator *validation.Validator) *Server {
	return &Server{
		logger:    logger.Named("server"),
		engine:    eng,
		validator: validator,
	}
}

// Router builds the gin router with logging, recovery and CORS middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(ginzap.Ginzap(s.logger, "2006-01-02T15:04:05Z07:00", true))
	router.Use(ginzap.RecoveryWithZap(s.logger, true))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/order/submit", s.handleSubmitOrder)
	router.GET("/orderbook", s.handleOrderBook)

	return router
}

func (s *Server) handleSubmitOrder(c *gin.Context) {
	var raw validation.RawOrder
	if err := c.ShouldBindJSON(&raw); err != nil {
		// An unreadable body is reported the same way as a missing order.
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: s.validator.ValidateNewOrder(nil)})
		return
	}

	if errs := s.validator.ValidateNewOrder(&raw); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: errs})
		return
	}

	order, err := s.validator.ParseOrder(&raw)
	if err != nil {
		s.internalError(c, err)
		return
	}

	result, err := s.engine.Submit(order.Side, order.Price, order.Amount)
	if err != nil {
		s.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSubmitResponse(result))
}

func (s *Server) handleOrderBook(c *gin.Context) {
	c.JSON(http.StatusOK, newOrderBookResponse(s.engine.Snapshot()))
}

// internalError reports an engine or store failure. These are invariant
// violations, so they are logged loudly and surfaced as 500, never mapped
// onto a validation response.
func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("internal error", zap.String("kind", string(apperrors.KindOf(err))), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"kind":    apperrors.KindOf(err),
			"message": "internal server error",
		},
	})
}
