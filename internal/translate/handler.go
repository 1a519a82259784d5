package translate

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	client *Client
	logger *slog.Logger
}

func NewHandler(client *Client, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Translate)
}

type translateRequest struct {
	Text   string   `json:"text"`
	Source Language `json:"source"`
	Target Language `json:"target"`
}

type translateResponse struct {
	SourceText     string   `json:"source_text"`
	TranslatedText string   `json:"translated_text"`
	Source         Language `json:"source"`
	Target         Language `json:"target"`
	TTSLocale      string   `json:"tts_locale"`
}

// @Summary      Translate text
// @Tags         translate
// @Accept       json
// @Produce      json
// @Success      200  {object}  translateResponse
// @Failure      400  {object}  shared.APIError
// @Router       /translate [post]
func (h *Handler) Translate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return shared.BadRequest("empty_text", "Please enter text to translate")
	}
	if req.Source == req.Target {
		// Rejected locally, before any network call.
		return shared.BadRequest("same_language", "Please choose different source and target languages")
	}
	if !Supported(req.Source) || !Supported(req.Target) {
		return shared.BadRequest("unsupported_language", "Unsupported language pair")
	}

	translated, err := h.client.Translate(c.Request().Context(), Request{
		Text:   req.Text,
		Source: req.Source,
		Target: req.Target,
	})
	if err != nil {
		h.logger.Error("translation failed", "error", err, "source", req.Source, "target", req.Target)
		return shared.BadGateway("translation_failed", "Translation failed")
	}

	return c.JSON(http.StatusOK, translateResponse{
		SourceText:     req.Text,
		TranslatedText: translated,
		Source:         req.Source,
		Target:         req.Target,
		TTSLocale:      TTSLocale(req.Target),
	})
}
