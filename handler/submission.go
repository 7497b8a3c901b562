package handler

import (
	"net/http"

	"givehope/domain"
	"givehope/mailer"

	"github.com/labstack/echo/v4"
)

// submissionResponse reports a stored submission together with the outcome of
// the best-effort operator notification. emailStatus lets the caller tell
// "accepted and notified" from "accepted, notification degraded" without
// treating the latter as a failure.
type submissionResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	EmailStatus string      `json:"emailStatus"`
	EmailError  string      `json:"emailError,omitempty"`
}

func (h *Handler) notify(c echo.Context, m mailer.Message) (status, detail string) {
	if err := h.Mailer.Send(m); err != nil {
		c.Logger().Errorf("notification send error: %v", err)
		return "failed", err.Error()
	}
	return "sent", ""
}

// DonationReceipt validates, persists, then notifies — in that order. The
// record is never lost to a degraded mail channel.
func (h *Handler) DonationReceipt(c echo.Context) error {
	var req domain.DonationReceipt
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(h.PhoneDigits); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	saved, err := h.Store.CreateDonationReceipt(req)
	if err != nil {
		c.Logger().Errorf("donation receipt insert error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	emailStatus, emailError := h.notify(c, mailer.DonationReceiptMessage(saved))

	message := "Donation receipt request received."
	if emailStatus == "failed" {
		message = "Request saved, but the operator notification failed."
	}
	return c.JSON(http.StatusOK, submissionResponse{
		Success:     true,
		Message:     message,
		Data:        saved,
		EmailStatus: emailStatus,
		EmailError:  emailError,
	})
}

func (h *Handler) Inquiry(c echo.Context) error {
	var req domain.Inquiry
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	saved, err := h.Store.CreateInquiry(req)
	if err != nil {
		c.Logger().Errorf("inquiry insert error: %v", err)
		return respondError(c, http.StatusInternalServerError, err.Error())
	}

	emailStatus, emailError := h.notify(c, mailer.InquiryMessage(saved))

	message := "Inquiry received."
	if emailStatus == "failed" {
		message = "Inquiry saved, but the operator notification failed."
	}
	return c.JSON(http.StatusOK, submissionResponse{
		Success:     true,
		Message:     message,
		Data:        saved,
		EmailStatus: emailStatus,
		EmailError:  emailError,
	})
}
