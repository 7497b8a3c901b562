package handler

import (
	"github.com/labstack/echo/v4"
)

// Register binds the HTTP surface under basePath. Mutating content routes go
// through the admin gate; reads and public submissions do not.
func (h *Handler) Register(e *echo.Echo, basePath string) {
	admin := h.AdminRequired()
	g := e.Group(basePath)

	g.GET("/health", h.Health)

	g.GET("/notices", h.ListNotices)
	g.POST("/notices", h.CreateNotice, admin)
	g.PUT("/notices/:id", h.UpdateNotice, admin)
	g.DELETE("/notices/:id", h.DeleteNotice, admin)

	g.GET("/newsletters", h.ListNewsletters)
	g.POST("/newsletters", h.CreateNewsletter, admin)
	g.PUT("/newsletters/:id", h.UpdateNewsletter, admin)
	g.DELETE("/newsletters/:id", h.DeleteNewsletter, admin)

	g.POST("/upload", h.Upload, admin)

	g.POST("/admin/signup", h.Signup)
	g.POST("/admin/login", h.Login)

	g.POST("/donation-receipt", h.DonationReceipt)
	g.POST("/inquiries", h.Inquiry)
}
