package scan

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Start)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)
	g.POST("/:id/speak", h.Speak)
}

// @Summary      Start a scan
// @Description  Runs one recognition feature over a captured image, or over submitted text for translation.
// @Tags         scans
// @Accept       json
// @Produce      json
// @Success      202  {object}  Session
// @Failure      400  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      409  {object}  shared.APIError
// @Router       /scans [post]
func (h *Handler) Start(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}

	sess, err := h.manager.Start(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrInFlight):
			return shared.Conflict("scan_in_flight", "A scan is already running for this image")
		case errors.Is(err, shared.ErrNotFound):
			return shared.NotFound("image_not_found", "Captured image not found or expired")
		default:
			return shared.BadRequest("invalid_scan", err.Error())
		}
	}
	return c.JSON(http.StatusAccepted, sess)
}

// @Summary      Get a scan session
// @Tags         scans
// @Produce      json
// @Success      200  {object}  Session
// @Failure      404  {object}  shared.APIError
// @Router       /scans/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	sess, err := h.manager.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("scan_not_found", "Scan session not found or expired")
		}
		h.logger.Error("failed to load session", "error", err)
		return shared.InternalError("scan_load_failed", "Failed to load scan session")
	}
	return c.JSON(http.StatusOK, sess)
}

// @Summary      Cancel a scan
// @Description  Stops an in-flight scan and removes the session. Late results are dropped.
// @Tags         scans
// @Success      204  "No Content"
// @Router       /scans/{id} [delete]
func (h *Handler) Cancel(c echo.Context) error {
	if err := h.manager.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("failed to cancel session", "error", err)
		return shared.InternalError("scan_cancel_failed", "Failed to cancel scan session")
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Announce a scan result
// @Tags         scans
// @Success      202  "Accepted"
// @Failure      404  {object}  shared.APIError
// @Router       /scans/{id}/speak [post]
func (h *Handler) Speak(c echo.Context) error {
	if err := h.manager.Speak(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("scan_not_found", "Scan session not found or expired")
		}
		return shared.BadRequest("nothing_to_speak", err.Error())
	}
	return c.NoContent(http.StatusAccepted)
}
