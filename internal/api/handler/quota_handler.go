package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/api/metrics"
	"github.com/quickconvert/entitlement-system/internal/api/middleware"
	"github.com/quickconvert/entitlement-system/internal/core/domain"
	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type QuotaHandler struct {
	quotaService ports.QuotaService
}

func NewQuotaHandler(quotaService ports.QuotaService) *QuotaHandler {
	return &QuotaHandler{quotaService: quotaService}
}

type quotaRequest struct {
	Tool      string `json:"tool"`
	Increment int    `json:"increment"`
	Email     string `json:"email"`
}

// Check consumes one (or increment) units of the tool's daily free quota for
// the calling identity and reports what is left. Hitting the cap is a normal
// 200 outcome with ok:false.
//
// @Summary      Check and consume daily quota
// @Tags         quota
// @Accept       json
// @Produce      json
// @Param        body  body      quotaRequest  true  "Tool and optional increment/email"
// @Success      200   {object}  domain.QuotaDecision
// @Failure      400   {object}  map[string]any
// @Router       /quota/check [post]
func (h *QuotaHandler) Check(c echo.Context) error {
	var req quotaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_payload"))
	}

	tool, err := domain.ParseTool(req.Tool)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid_tool"))
	}

	identity := quotaIdentity(c, req.Email)
	decision, err := h.quotaService.CheckAndIncrement(c.Request().Context(), tool, identity, req.Increment)
	if err != nil {
		return err
	}

	result := "allowed"
	if !decision.Allowed {
		result = "rejected"
	}
	metrics.QuotaDecisionsTotal.WithLabelValues(req.Tool, result).Inc()

	return c.JSON(http.StatusOK, decision)
}

// quotaIdentity picks the identity counters are keyed by: the session email
// when authenticated, else the email supplied in the request, else the first
// forwarded client IP.
func quotaIdentity(c echo.Context, email string) string {
	if session := middleware.SessionEmail(c); session != "" {
		return "email:" + session
	}
	if email != "" {
		return "email:" + email
	}

	ip := c.Request().Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.Request().Header.Get("X-Real-IP")
	}
	if ip == "" {
		return "ip:anon"
	}
	first := strings.TrimSpace(strings.SplitN(ip, ",", 2)[0])
	return "ip:" + first
}
