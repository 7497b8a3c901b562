package handler

import (
	"errors"
	"net/http"

	"givehope/domain"
	"givehope/store"

	"github.com/labstack/echo/v4"
)

type noticeRequest struct {
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Date        string              `json:"date"`
	Views       int                 `json:"views"`
	Attachments []domain.Attachment `json:"attachments"`
}

func (r noticeRequest) toDomain() domain.Notice {
	return domain.Notice{
		Title:       sanitizerStrict.Sanitize(r.Title),
		Content:     r.Content,
		Date:        r.Date,
		Views:       r.Views,
		Attachments: r.Attachments,
	}
}

func (h *Handler) ListNotices(c echo.Context) error {
	notices, err := h.Store.ListNotices()
	if err != nil {
		c.Logger().Errorf("get notices error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	for i := range notices {
		notices[i].ContentHTML = safeMd(notices[i].Content)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"notices": notices})
}

func (h *Handler) CreateNotice(c echo.Context) error {
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return respondError(c, http.StatusBadRequest, "Title is required")
	}

	notice, err := h.Store.CreateNotice(req.toDomain())
	if err != nil {
		c.Logger().Errorf("create notice error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "notice": notice})
}

func (h *Handler) UpdateNotice(c echo.Context) error {
	var req noticeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return respondError(c, http.StatusBadRequest, "Title is required")
	}

	notice, err := h.Store.UpdateNotice(c.Param("id"), req.toDomain())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Notice not found")
		}
		c.Logger().Errorf("update notice error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "notice": notice})
}

func (h *Handler) DeleteNotice(c echo.Context) error {
	deleted, err := h.Store.DeleteNotice(c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete notice error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	if !deleted && h.StrictDelete {
		return respondError(c, http.StatusNotFound, "Notice not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
