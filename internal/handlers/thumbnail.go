package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prompthist/prompthistd/internal/thumbnail"
)

// ThumbnailHandler serves stored thumbnail images.
type ThumbnailHandler struct {
	store  *thumbnail.Store
	logger *slog.Logger
}

// NewThumbnailHandler creates a thumbnail handler.
func NewThumbnailHandler(log *slog.Logger, store *thumbnail.Store) *ThumbnailHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ThumbnailHandler{
		store:  store,
		logger: log.With(slog.String("handler", "thumbnail")),
	}
}

// Register mounts the thumbnail route on the Echo instance.
func (h *ThumbnailHandler) Register(e *echo.Echo) {
	e.GET("/get_thumbnail/:filename", h.Get)
}

// Get godoc
// @Summary Serve a thumbnail image
// @Description Serve the raw bytes of a stored thumbnail
// @Tags thumbnail
// @Param filename path string true "Thumbnail filename"
// @Success 200 {file} binary
// @Failure 404 "thumbnail not found"
// @Router /get_thumbnail/{filename} [get]
func (h *ThumbnailHandler) Get(c echo.Context) error {
	filename := c.Param("filename")
	path, err := h.store.Resolve(filename)
	if err != nil {
		h.logger.Warn("thumbnail not found", slog.String("file", filename))
		return c.NoContent(http.StatusNotFound)
	}
	return c.File(path)
}
