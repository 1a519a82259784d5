package feature

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bbmxzz/see2hear/internal/media"
	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	media  *media.Store
	logger *slog.Logger
}

func NewHandler(mediaStore *media.Store, logger *slog.Logger) *Handler {
	return &Handler{
		media:  mediaStore,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/route", h.Route)
	g.GET("/features", h.List)
}

type routeRequest struct {
	Feature Feature `json:"feature"`
	ImageID string  `json:"image_id,omitempty"`
}

type routeResponse struct {
	Screen string            `json:"screen"`
	Params map[string]string `json:"params,omitempty"`
}

// @Summary      Resolve a feature to its screen
// @Description  Maps a feature tag to the screen it navigates to, carrying the captured image along.
// @Tags         router
// @Accept       json
// @Produce      json
// @Success      200  {object}  routeResponse
// @Failure      400  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Router       /route [post]
func (h *Handler) Route(c echo.Context) error {
	var req routeRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}

	screen, ok := Route(req.Feature)
	if !ok {
		return shared.BadRequest("unknown_feature", "Unknown feature")
	}

	resp := routeResponse{Screen: screen}
	if req.ImageID != "" {
		img, err := h.media.Get(c.Request().Context(), req.ImageID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NotFound("image_not_found", "Captured image not found or expired")
			}
			h.logger.Error("failed to load image", "error", err)
			return shared.InternalError("image_load_failed", "Failed to load captured image")
		}
		resp.Params = map[string]string{"imagePath": img.Path}
	}
	return c.JSON(http.StatusOK, resp)
}

// @Summary      List available features
// @Tags         router
// @Produce      json
// @Success      200  {array}  string
// @Router       /features [get]
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, All())
}
