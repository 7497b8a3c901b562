package handler

import (
	"errors"
	"net/http"

	"givehope/domain"
	"givehope/store"

	"github.com/labstack/echo/v4"
)

type newsletterRequest struct {
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Published   bool                `json:"published"`
	Attachments []domain.Attachment `json:"attachments"`
}

func (r newsletterRequest) toDomain() domain.Newsletter {
	return domain.Newsletter{
		Title:       sanitizerStrict.Sanitize(r.Title),
		Content:     r.Content,
		Published:   r.Published,
		Attachments: r.Attachments,
	}
}

// ListNewsletters returns every record, drafts included; visibility filtering
// happens client-side. See DESIGN.md.
func (h *Handler) ListNewsletters(c echo.Context) error {
	newsletters, err := h.Store.ListNewsletters()
	if err != nil {
		c.Logger().Errorf("get newsletters error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	for i := range newsletters {
		newsletters[i].ContentHTML = safeMd(newsletters[i].Content)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"newsletters": newsletters})
}

func (h *Handler) CreateNewsletter(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return respondError(c, http.StatusBadRequest, "Title is required")
	}

	newsletter, err := h.Store.CreateNewsletter(req.toDomain())
	if err != nil {
		c.Logger().Errorf("create newsletter error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "newsletter": newsletter})
}

func (h *Handler) UpdateNewsletter(c echo.Context) error {
	var req newsletterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" {
		return respondError(c, http.StatusBadRequest, "Title is required")
	}

	newsletter, err := h.Store.UpdateNewsletter(c.Param("id"), req.toDomain())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return respondError(c, http.StatusNotFound, "Newsletter not found")
		}
		c.Logger().Errorf("update newsletter error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "newsletter": newsletter})
}

func (h *Handler) DeleteNewsletter(c echo.Context) error {
	deleted, err := h.Store.DeleteNewsletter(c.Param("id"))
	if err != nil {
		c.Logger().Errorf("delete newsletter error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}
	if !deleted && h.StrictDelete {
		return respondError(c, http.StatusNotFound, "Newsletter not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
