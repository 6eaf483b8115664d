// Package gateway is the thin HTTP/WS consumer that proves the engine's
// submit/cancel/modify/Listener surface is usable from outside the core. It
// deliberately does not sequence, persist, risk-check, or route across
// symbols — all of that remains out of scope, same as the core it wraps.
package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aidin1998/matchcore/internal/trading/engine"
	"github.com/Aidin1998/matchcore/internal/trading/model"
	"github.com/Aidin1998/matchcore/internal/trading/orderbook"
)

type commandKind int

const (
	cmdSubmit commandKind = iota
	cmdCancel
	cmdModify
)

// command is the unit of work handed from an HTTP handler goroutine to the
// single goroutine that owns the book. Exactly one goroutine ever calls into
// engine/book methods, satisfying the "never concurrently" requirement
// without a mutex around the hot path.
type command struct {
	kind          commandKind
	order         model.Order
	id            uint64
	newPrice      uint64
	newQuantity   uint32
	correlationID string
	result        chan error
}

// Server wires the matching core to gin and a websocket event feed. One
// Server owns exactly one symbol's book.
type Server struct {
	router   *gin.Engine
	logger   *zap.Logger
	validate *validator.Validate
	engine   *engine.MatchingEngine
	book     *orderbook.OrderBook
	listener *eventListener
	hub      *hub
	commands chan *command
}

// New constructs a Server over book, driven by eng, logging to logger. The
// caller starts the engine goroutine with Run and serves HTTP through
// Handler.
func New(logger *zap.Logger, eng *engine.MatchingEngine, book *orderbook.OrderBook) *Server {
	h := newHub(logger)
	s := &Server{
		logger:   logger,
		validate: validator.New(),
		engine:   eng,
		book:     book,
		listener: newEventListener(h, logger),
		hub:      h,
		commands: make(chan *command, 1024),
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.POST("/orders", s.handleSubmit)
	r.DELETE("/orders/:id", s.handleCancel)
	r.PATCH("/orders/:id", s.handleModify)
	r.GET("/ws", func(c *gin.Context) { s.hub.serveWS(c.Writer, c.Request) })

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

// Handler exposes the underlying gin.Engine for httptest-style serving.
func (s *Server) Handler() http.Handler { return s.router }

// Run drains commands on the calling goroutine until commands is closed. It
// must be the only goroutine that ever calls into s.engine or s.book.
func (s *Server) Run() {
	for cmd := range s.commands {
		switch cmd.kind {
		case cmdSubmit:
			cmd.result <- s.engine.Submit(s.book, cmd.order, s.listener, cmd.correlationID)
		case cmdCancel:
			cmd.result <- s.engine.Cancel(s.book, cmd.id, s.listener, cmd.correlationID)
		case cmdModify:
			cmd.result <- s.engine.Modify(s.book, cmd.id, cmd.newPrice, cmd.newQuantity, s.listener, cmd.correlationID)
		}
	}
}

// Stop lets Run's range loop terminate. No in-flight command may be
// submitted after Stop is called.
func (s *Server) Stop() { close(s.commands) }

func (s *Server) submit(cmd *command) error {
	cmd.result = make(chan error, 1)
	s.commands <- cmd
	return <-cmd.result
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	side := model.Buy
	if req.Side == "sell" {
		side = model.Sell
	}
	correlationID := uuid.New().String()

	err := s.submit(&command{
		kind:          cmdSubmit,
		order:         model.Order{ID: req.ID, Price: req.Price, Quantity: req.Quantity, Side: side},
		correlationID: correlationID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "correlation_id": correlationID})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"correlation_id": correlationID})
}

func (s *Server) handleCancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	correlationID := uuid.New().String()

	if err := s.submit(&command{kind: cmdCancel, id: id, correlationID: correlationID}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "correlation_id": correlationID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"correlation_id": correlationID})
}

func (s *Server) handleModify(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req modifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	correlationID := uuid.New().String()

	cmdErr := s.submit(&command{
		kind:          cmdModify,
		id:            id,
		newPrice:      req.Price,
		newQuantity:   req.Quantity,
		correlationID: correlationID,
	})
	if cmdErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": cmdErr.Error(), "correlation_id": correlationID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"correlation_id": correlationID})
}
