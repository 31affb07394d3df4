package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/api/metrics"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type LicenseHandler struct {
	licenseService ports.LicenseService
}

func NewLicenseHandler(licenseService ports.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

type verifyRequest struct {
	LicenseKey  string `json:"licenseKey"`
	Email       string `json:"email"`
	Passthrough string `json:"passthrough"`
}

type verifyResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
}

// Verify checks a license by key, passthrough or email. Every business
// outcome (valid, expired, bound elsewhere, not found) is answered with
// HTTP 200; callers cannot distinguish "no such license" from "expired"
// beyond the enumerated reasons.
//
// @Summary      Verify a license
// @Tags         license
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "License identifiers"
// @Success      200   {object}  verifyResponse
// @Router       /license/verify [post]
func (h *LicenseHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_payload"))
	}

	result, err := h.licenseService.Verify(c.Request().Context(), ports.VerifyInput{
		LicenseKey:  req.LicenseKey,
		Email:       req.Email,
		Passthrough: req.Passthrough,
	})
	if err != nil {
		return err
	}

	resp := verifyResponse{OK: result.Valid}
	if !result.ExpiresAt.IsZero() {
		resp.ExpiresAt = result.ExpiresAt.UnixMilli()
	}

	switch {
	case result.Valid:
		metrics.LicenseVerificationsTotal.WithLabelValues("valid").Inc()
	case result.Reason == ports.ReasonBoundMismatch:
		metrics.LicenseVerificationsTotal.WithLabelValues(ports.ReasonBoundMismatch).Inc()
		resp.Error = ports.ReasonBoundMismatch
	default:
		metrics.LicenseVerificationsTotal.WithLabelValues(result.Reason).Inc()
	}

	return c.JSON(http.StatusOK, resp)
}
