package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Upload accepts a multipart file, stores it under a collision-resistant key
// and returns the attachment descriptor the client embeds in its record. A
// failed upload aborts the enclosing save flow on the client side, so every
// stage surfaces its error synchronously.
func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, http.StatusBadRequest, "No file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Logger().Errorf("upload open error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	attachment, err := h.Uploader.Upload(c.Request().Context(), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		c.Logger().Errorf("upload error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "attachment": attachment})
}
