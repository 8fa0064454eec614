package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
)

type FileHandler struct {
	storage usecase.FileStorage
}

func NewFileHandler(storage usecase.FileStorage) *FileHandler {
	return &FileHandler{
		storage: storage,
	}
}

// Upload stores a standalone blob and returns its id and view URL.
func (h *FileHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read uploaded file", err))
	}
	defer src.Close()

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	fileID, err := h.storage.Upload(c.Request().Context(), src, fileHeader.Header.Get("Content-Type"), folder)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{
		"file_id": fileID,
		"url":     h.storage.ViewURL(fileID),
	})
}

// View resolves a file id to its public URL.
func (h *FileHandler) View(c echo.Context) error {
	fileID := c.QueryParam("id")
	if fileID == "" {
		return response.Error(c, errors.BadRequest("File id is required", nil))
	}

	return response.Success(c, map[string]string{
		"url": h.storage.ViewURL(fileID),
	})
}

func (h *FileHandler) Delete(c echo.Context) error {
	fileID := c.QueryParam("id")
	if fileID == "" {
		return response.Error(c, errors.BadRequest("File id is required", nil))
	}

	if err := h.storage.Delete(c.Request().Context(), fileID); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
