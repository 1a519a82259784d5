package media

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/Bbmxzz/see2hear/internal/shared"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 16 << 20

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.Upload)
	g.GET("/:id", h.Get)
}

// @Summary      Upload a captured image
// @Description  Accepts a camera capture or library pick and probes its dimensions
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  CapturedImage
// @Failure      400  {object}  shared.APIError
// @Router       /media [post]
func (h *Handler) Upload(c echo.Context) error {
	source := Source(c.FormValue("source"))
	if source != SourceCamera && source != SourceLibrary {
		source = SourceCamera
	}

	file, err := c.FormFile("file")
	if err != nil {
		// The two acquisition paths surface different user-facing
		// failures: a capture that produced nothing vs. an empty pick.
		if source == SourceLibrary {
			return shared.BadRequest("no_selection", "No image selected")
		}
		return shared.BadRequest("capture_failed", "No image captured")
	}
	if file.Size > maxUploadBytes {
		return shared.BadRequest("image_too_large", "Image exceeds upload limit")
	}

	src, err := file.Open()
	if err != nil {
		return shared.BadRequest("capture_failed", "Could not read uploaded image")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return shared.BadRequest("capture_failed", "Could not read uploaded image")
	}

	img, err := h.store.Save(c.Request().Context(), source, data)
	if err != nil {
		if err == ErrSizeProbe {
			return shared.BadRequest("size_probe_failed", "Could not determine image dimensions")
		}
		h.logger.Error("failed to store image", "error", err)
		return shared.InternalError("store_failed", "Failed to store image")
	}

	h.logger.Info("image stored", "image_id", img.ID, "source", img.Source,
		"width", img.Width, "height", img.Height)

	return c.JSON(http.StatusCreated, img)
}

// @Summary      Get image metadata
// @Tags         media
// @Produce      json
// @Success      200  {object}  CapturedImage
// @Failure      404  {object}  shared.APIError
// @Router       /media/{id} [get]
func (h *Handler) Get(c echo.Context) error {
	img, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NotFound("image_not_found", "Image not found or expired")
		}
		h.logger.Error("failed to load image", "error", err)
		return shared.InternalError("load_failed", "Failed to load image")
	}
	return c.JSON(http.StatusOK, img)
}
