package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/api/metrics"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type AdminHandler struct {
	licenseService ports.LicenseService
}

func NewAdminHandler(licenseService ports.LicenseService) *AdminHandler {
	return &AdminHandler{licenseService: licenseService}
}

type grantRequest struct {
	Email        string `json:"email"`
	Passthrough  string `json:"passthrough"`
	LicenseKey   string `json:"licenseKey"`
	DurationDays int    `json:"durationDays"`
	ExpiresAt    int64  `json:"expiresAt"`
	// AdminToken is consumed by the Admin middleware; bound here so it is
	// not rejected as an unknown field.
	AdminToken string `json:"adminToken"`
}

type grantResponse struct {
	OK         bool   `json:"ok"`
	LicenseKey string `json:"licenseKey"`
	ExpiresAt  int64  `json:"expiresAt"`
}

// Grant creates or reissues a license. All identity hints are optional.
//
// @Summary      Grant a license
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminToken
// @Param        body  body      grantRequest  true  "Grant parameters"
// @Success      200   {object}  grantResponse
// @Failure      401   {object}  map[string]any
// @Router       /admin/grant [post]
func (h *AdminHandler) Grant(c echo.Context) error {
	var req grantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_payload"))
	}

	result, err := h.licenseService.Grant(c.Request().Context(), ports.GrantInput{
		LicenseKey:   req.LicenseKey,
		Email:        req.Email,
		Passthrough:  req.Passthrough,
		DurationDays: req.DurationDays,
		ExpiresAt:    req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	metrics.LicensesIssuedTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusOK, grantResponse{
		OK:         true,
		LicenseKey: result.LicenseKey,
		ExpiresAt:  result.ExpiresAt.UnixMilli(),
	})
}
