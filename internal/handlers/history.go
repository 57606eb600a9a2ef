package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prompthist/prompthistd/internal/history"
	"github.com/prompthist/prompthistd/internal/pipeline"
)

// HistoryHandler serves the prompt history API the pipeline's front-end calls.
type HistoryHandler struct {
	service *history.Service
	dirs    pipeline.Dirs
	logger  *slog.Logger
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(log *slog.Logger, service *history.Service, dirs pipeline.Dirs) *HistoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryHandler{
		service: service,
		dirs:    dirs,
		logger:  log.With(slog.String("handler", "history")),
	}
}

// Register mounts the history routes on the Echo instance.
func (h *HistoryHandler) Register(e *echo.Echo) {
	e.GET("/get_prompt_history", h.GetHistory)
	e.GET("/get_all_histories", h.GetAllHistories)
	e.POST("/update_prompt_with_image", h.UpdatePromptWithImage)
	e.POST("/delete_prompt_entry", h.DeleteEntry)
	e.POST("/delete_prompt_thumbnail", h.DeleteThumbnail)
	e.POST("/toggle_favorite", h.ToggleFavorite)
}

// GetHistory godoc
// @Summary Get prompt history
// @Description Get all entries of the named history, newest first
// @Tags history
// @Param name query string false "History name" default(default)
// @Success 200 {array} history.Entry
// @Router /get_prompt_history [get]
func (h *HistoryHandler) GetHistory(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		name = history.DefaultName
	}
	return c.JSON(http.StatusOK, h.service.List(c.Request().Context(), name))
}

// GetAllHistories godoc
// @Summary List history names
// @Description Get the names of all stored histories, sorted ascending
// @Tags history
// @Success 200 {array} string
// @Failure 500 {array} string
// @Router /get_all_histories [get]
func (h *HistoryHandler) GetAllHistories(c echo.Context) error {
	names, err := h.service.ListNames(c.Request().Context())
	if err != nil {
		h.logger.Error("could not list histories", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, []string{})
	}
	return c.JSON(http.StatusOK, names)
}

type imageRef struct {
	Filename  string `json:"filename"`
	Subfolder string `json:"subfolder"`
	Type      string `json:"type"`
}

type updatePromptRequest struct {
	HistoryName string         `json:"history_name"`
	Prompt      string         `json:"prompt"`
	Image       *imageRef      `json:"image"`
	Metadata    map[string]any `json:"metadata"`
}

// UpdatePromptWithImage godoc
// @Summary Attach a generated image to a prompt
// @Description Update the prompt saved at encode time with its generated image and metadata
// @Tags history
// @Param payload body updatePromptRequest true "Update payload"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /update_prompt_with_image [post]
func (h *HistoryHandler) UpdatePromptWithImage(c echo.Context) error {
	var req updatePromptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure(err.Error()))
	}
	if req.Prompt == "" || req.Image == nil || req.Image.Filename == "" {
		h.logger.Warn("update_prompt_with_image called with missing data")
		return c.JSON(http.StatusBadRequest, failure("Missing data"))
	}

	imagePath := h.dirs.Resolve(req.Image.Type, req.Image.Subfolder, req.Image.Filename)
	h.logger.Info("attaching image to prompt", slog.String("path", imagePath))

	h.service.SavePrompt(c.Request().Context(), history.SaveRequest{
		HistoryName: historyName(req.HistoryName),
		Prompt:      req.Prompt,
		ImagePath:   imagePath,
		Metadata:    req.Metadata,
	})
	return c.JSON(http.StatusOK, success())
}

type entryRequest struct {
	HistoryName string `json:"history_name"`
	PromptID    string `json:"prompt_id"`
}

// DeleteEntry godoc
// @Summary Delete a prompt entry
// @Description Delete an entry and its thumbnail file
// @Tags history
// @Param payload body entryRequest true "Entry reference"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete_prompt_entry [post]
func (h *HistoryHandler) DeleteEntry(c echo.Context) error {
	req, ok := bindEntryRequest(c)
	if !ok {
		return nil
	}
	if err := h.service.DeleteEntry(c.Request().Context(), req.HistoryName, req.PromptID); err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, failure("Entry not found"))
		}
		return c.JSON(http.StatusInternalServerError, failure(err.Error()))
	}
	return c.JSON(http.StatusOK, success())
}

// DeleteThumbnail godoc
// @Summary Delete a prompt's thumbnail
// @Description Detach and delete only the thumbnail of an entry
// @Tags history
// @Param payload body entryRequest true "Entry reference"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete_prompt_thumbnail [post]
func (h *HistoryHandler) DeleteThumbnail(c echo.Context) error {
	req, ok := bindEntryRequest(c)
	if !ok {
		return nil
	}
	if err := h.service.ClearThumbnail(c.Request().Context(), req.HistoryName, req.PromptID); err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, failure("Entry not found"))
		}
		return c.JSON(http.StatusInternalServerError, failure(err.Error()))
	}
	return c.JSON(http.StatusOK, success())
}

// ToggleFavorite godoc
// @Summary Toggle the favorite flag
// @Description Flip the favorite flag of an entry and return the new value
// @Tags history
// @Param payload body entryRequest true "Entry reference"
// @Success 200 {object} ToggleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /toggle_favorite [post]
func (h *HistoryHandler) ToggleFavorite(c echo.Context) error {
	req, ok := bindEntryRequest(c)
	if !ok {
		return nil
	}
	newStatus, err := h.service.ToggleFavorite(c.Request().Context(), req.HistoryName, req.PromptID)
	if err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, failure("Entry not found"))
		}
		return c.JSON(http.StatusInternalServerError, failure(err.Error()))
	}
	return c.JSON(http.StatusOK, ToggleResponse{Status: "success", NewStatus: newStatus})
}

// bindEntryRequest decodes the common {history_name, prompt_id} body and
// rejects a missing prompt_id. When ok is false the error response has
// already been written.
func bindEntryRequest(c echo.Context) (req entryRequest, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, failure(err.Error()))
		return entryRequest{}, false
	}
	if req.PromptID == "" {
		_ = c.JSON(http.StatusBadRequest, failure("Missing prompt_id"))
		return entryRequest{}, false
	}
	req.HistoryName = historyName(req.HistoryName)
	return req, true
}

func historyName(name string) string {
	if name == "" {
		return history.DefaultName
	}
	return name
}
