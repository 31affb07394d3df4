package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type ProxyHandler struct {
	proxyService ports.ProxyService
}

func NewProxyHandler(proxyService ports.ProxyService) *ProxyHandler {
	return &ProxyHandler{proxyService: proxyService}
}

type ocrRequest struct {
	Base64   string `json:"base64"`
	URL      string `json:"url"`
	Language string `json:"language"`
}

type ocrResponse struct {
	OK   bool   `json:"ok"`
	Text string `json:"text"`
}

// OCR extracts text from an image via the ocr.space API. Upstream failures
// are a normal ok:false outcome, not a server error.
//
// @Summary      OCR an image
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Param        body  body      ocrRequest  true  "Inline base64 image or URL"
// @Success      200   {object}  ocrResponse
// @Failure      400   {object}  map[string]any
// @Router       /ocr [post]
func (h *ProxyHandler) OCR(c echo.Context) error {
	var req ocrRequest
	if err := c.Bind(&req); err != nil || (req.Base64 == "" && req.URL == "") {
		return c.JSON(http.StatusBadRequest, errorBody("missing_input"))
	}

	text, err := h.proxyService.OCR(c.Request().Context(), ports.OCRInput{
		Base64:   req.Base64,
		URL:      req.URL,
		Language: req.Language,
	})
	if err != nil {
		if errors.Is(err, ports.ErrOCRFailed) {
			return c.JSON(http.StatusOK, errorBody("ocr_failed"))
		}
		return err
	}

	return c.JSON(http.StatusOK, ocrResponse{OK: true, Text: text})
}

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	OK    bool   `json:"ok"`
	Short string `json:"short"`
}

// Shorten turns a URL into a short link via the is.gd API.
//
// @Summary      Shorten a URL
// @Tags         proxy
// @Accept       json
// @Produce      json
// @Param        body  body      shortenRequest  true  "URL to shorten"
// @Success      200   {object}  shortenResponse
// @Failure      400   {object}  map[string]any
// @Router       /shorten [post]
func (h *ProxyHandler) Shorten(c echo.Context) error {
	var req shortenRequest
	if err := c.Bind(&req); err != nil || req.URL == "" {
		return c.JSON(http.StatusBadRequest, errorBody("missing_url"))
	}

	short, err := h.proxyService.Shorten(c.Request().Context(), req.URL)
	if err != nil {
		if errors.Is(err, ports.ErrShortenFailed) {
			return c.JSON(http.StatusOK, errorBody("shorten_failed"))
		}
		return err
	}

	return c.JSON(http.StatusOK, shortenResponse{OK: true, Short: short})
}
