package http_handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/anthanhphan/go-sharded-counter/internal/counter/config"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/port"
	"github.com/anthanhphan/go-sharded-counter/pkg/shard"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.CounterService
}

func NewServer(cfg *config.Config, service port.CounterService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api/v1")
	api.Post("/visit/:page_id", s.handleVisit)
	api.Get("/visits/:page_id", s.handleVisits)
	api.Post("/flush", s.handleFlush)
	api.Get("/stats", s.handleStats)
	api.Get("/nodes", s.handleListNodes)
	api.Post("/nodes", s.handleAddNode)
	api.Delete("/nodes", s.handleRemoveNode)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrInvalidKey), errors.Is(err, port.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, port.ErrNodeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, port.ErrStoreClosed),
		errors.Is(err, port.ErrBackendUnavailable),
		errors.Is(err, shard.ErrEmptyRing):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleVisit(c *fiber.Ctx) error {
	pageID := c.Params("page_id")

	amount := int64(1)
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return s.sendJSONError(c, fiber.StatusBadRequest, "Query parameter 'count' must be a positive integer")
		}
		amount = n
	}

	if err := s.service.IncrementBy(c.UserContext(), pageID, amount); err != nil {
		sdklogger.Warnw("Visit not recorded", "page_id", pageID, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), err.Error())
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Visit recorded for page %s", pageID),
	})
}

func (s *Server) handleVisits(c *fiber.Ctx) error {
	pageID := c.Params("page_id")

	res, err := s.service.Read(c.UserContext(), pageID)
	if err != nil {
		sdklogger.Errorw("Visit count lookup failed", "page_id", pageID, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), err.Error())
	}

	return c.JSON(res)
}

func (s *Server) handleFlush(c *fiber.Ctx) error {
	res, err := s.service.Flush(c.UserContext())
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"result": res,
		})
	}
	return c.JSON(res)
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.service.Stats())
}

func (s *Server) handleListNodes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"nodes": s.service.Nodes(),
	})
}

func (s *Server) handleAddNode(c *fiber.Ctx) error {
	var req config.NodeConfig
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	node, err := req.ShardNode()
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.service.AddNode(c.UserContext(), node); err != nil {
		sdklogger.Errorw("Add node failed", "addr", node.Addr, "error", err.Error())
		return s.sendJSONError(c, statusFor(err), err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (s *Server) handleRemoveNode(c *fiber.Ctx) error {
	raw := c.Query("addr")
	if raw == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing 'addr' query parameter")
	}

	addr, err := config.NormalizeAddr(raw)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := s.service.RemoveNode(c.UserContext(), addr); err != nil {
		return s.sendJSONError(c, statusFor(err), err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	results := s.service.Health(c.UserContext())

	nodes := make(map[string]string, len(results))
	healthy := true
	for id, err := range results {
		if err != nil {
			healthy = false
			nodes[id] = err.Error()
			continue
		}
		nodes[id] = "ok"
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"nodes":  nodes,
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"nodes":  nodes,
	})
}
