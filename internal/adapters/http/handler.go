package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Afeez-Ola/flowplay/internal/auth"
	"github.com/Afeez-Ola/flowplay/internal/domain"
	"github.com/Afeez-Ola/flowplay/internal/ports"
)

// Handler holds the HTTP handlers for the conversion API.
type Handler struct {
	service ports.ConversionService
	logger  *log.Logger
}

// NewHandler creates a new HTTP handler with the given conversion service.
func NewHandler(service ports.ConversionService, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up all API routes on the given Gin engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/convert", h.Convert)
		api.POST("/detect", h.Detect)
	}
}

// RequestID tags every request with a uuid for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// AccessLog logs one line per request.
func AccessLog(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		c.Next()
		logger.Info("request",
			"id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}

// Recovery converts an uncaught panic into the standard 500 payload. This is
// the backstop, not the primary error path.
func Recovery(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "err", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Server error",
			Details: fmt.Sprint(recovered),
		})
	})
}

// Health returns a simple health check response.
//
//	@Summary		Health check
//	@Description	Returns the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Convert converts a playlist from one streaming provider to another.
//
//	@Summary		Convert playlist
//	@Description	Fetches the source playlist, matches every track on the destination catalog
//	@Description	(exact ISRC lookup first, free-text fallback second) and, where the destination
//	@Description	supports it, creates a new playlist with the matched tracks.
//	@Tags			conversion
//	@Accept			json
//	@Produce		json
//	@Param			request	body		domain.ConversionRequest	true	"Conversion request: playlist URL, source, destination, optional playlist name"
//	@Success		200		{object}	domain.ConversionReport
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/v1/convert [post]
func (h *Handler) Convert(c *gin.Context) {
	var req domain.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		return
	}

	report, err := h.service.Convert(c.Request.Context(), auth.FromRequest(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

type detectRequest struct {
	URL string `json:"url"`
}

// Detect guesses the provider that owns a pasted playlist URL.
//
//	@Summary		Detect provider from URL
//	@Tags			conversion
//	@Accept			json
//	@Produce		json
//	@Param			request	body		detectRequest	true	"Playlist URL"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/v1/detect [post]
func (h *Handler) Detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": domain.DetectProvider(req.URL),
	})
}

// renderError maps domain errors to their HTTP status; anything untyped is a
// 500 with the cause in details.
func (h *Handler) renderError(c *gin.Context, err error) {
	var convErr *domain.Error
	if errors.As(err, &convErr) {
		c.JSON(convErr.Status, ErrorResponse{
			Error:   convErr.Message,
			Details: convErr.Details,
		})
		return
	}

	h.logger.Error("conversion failed", "id", c.GetString("request_id"), "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Server error",
		Details: err.Error(),
	})
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
