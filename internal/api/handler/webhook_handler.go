package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/api/metrics"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type WebhookHandler struct {
	licenseService ports.LicenseService
}

func NewWebhookHandler(licenseService ports.LicenseService) *WebhookHandler {
	return &WebhookHandler{licenseService: licenseService}
}

type webhookResponse struct {
	OK         bool   `json:"ok"`
	LicenseKey string `json:"licenseKey"`
}

// Payment ingests a payment-processor webhook. The signature is verified
// over the raw body before any field is trusted; a missing or wrong
// signature is a hard 401 and nothing is stored.
//
// @Summary      Payment webhook
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        Paddle-Signature  header    string  true  "HMAC signature over the raw body"
// @Success      200               {object}  webhookResponse
// @Failure      401               {object}  map[string]any
// @Router       /webhook/payment [post]
func (h *WebhookHandler) Payment(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	signature := c.Request().Header.Get("Paddle-Signature")

	licenseKey, err := h.licenseService.ProcessPaymentEvent(c.Request().Context(), raw, signature)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidSignature) {
			metrics.WebhookEventsTotal.WithLabelValues("invalid_signature").Inc()
			return c.JSON(http.StatusUnauthorized, errorBody("invalid_signature"))
		}
		return err
	}

	metrics.WebhookEventsTotal.WithLabelValues("accepted").Inc()
	metrics.LicensesIssuedTotal.WithLabelValues("webhook").Inc()
	return c.JSON(http.StatusOK, webhookResponse{OK: true, LicenseKey: licenseKey})
}
