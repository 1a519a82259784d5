package speech

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	controller *Controller
	logger     *slog.Logger
}

func NewHandler(controller *Controller, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/speak", h.Speak)
	g.POST("/stop", h.Stop)
	g.GET("/state", h.GetState)
}

type speakBody struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Voice    string  `json:"voice,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
}

// @Summary      Speak text aloud
// @Tags         speech
// @Accept       json
// @Success      202  "Accepted"
// @Failure      400  {object}  shared.APIError
// @Router       /speech/speak [post]
func (h *Handler) Speak(c echo.Context) error {
	var body speakBody
	if err := c.Bind(&body); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return shared.BadRequest("empty_text", "Nothing to speak")
	}

	u := ForText(body.Text)
	if body.Language != "" {
		u.Language = body.Language
	}
	if body.Voice != "" {
		u.Voice = body.Voice
	}
	if body.Rate > 0 {
		u.Rate = body.Rate
	}

	if err := h.controller.Speak(c.Request().Context(), u); err != nil {
		h.logger.Error("speak failed", "error", err)
		return shared.BadGateway("tts_failed", "Speech playback failed")
	}
	return c.NoContent(http.StatusAccepted)
}

// @Summary      Stop speech playback
// @Tags         speech
// @Success      202  "Accepted"
// @Router       /speech/stop [post]
func (h *Handler) Stop(c echo.Context) error {
	if err := h.controller.Stop(c.Request().Context()); err != nil {
		h.logger.Error("stop failed", "error", err)
		return shared.BadGateway("tts_failed", "Failed to stop playback")
	}
	return c.NoContent(http.StatusAccepted)
}

// @Summary      Current audio interaction state
// @Tags         speech
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /speech/state [get]
func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"state": string(h.controller.State()),
	})
}
