package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

const (
	defaultOCREndpoint     = "https://api.ocr.space/parse/image"
	defaultShortenEndpoint = "https://is.gd/create.php"
	proxyTimeout           = 30 * time.Second
)

// ProxyService forwards OCR and URL-shortening requests to their third-party
// APIs, keeping the API keys server-side.
type ProxyService struct {
	client          *http.Client
	ocrAPIKey       string
	ocrEndpoint     string
	shortenEndpoint string
	logger          zerolog.Logger
}

func NewProxyService(client *http.Client, ocrAPIKey string, logger zerolog.Logger) *ProxyService {
	if client == nil {
		client = &http.Client{Timeout: proxyTimeout}
	}
	return &ProxyService{
		client:          client,
		ocrAPIKey:       ocrAPIKey,
		ocrEndpoint:     defaultOCREndpoint,
		shortenEndpoint: defaultShortenEndpoint,
		logger:          logger,
	}
}

type ocrResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

func (s *ProxyService) OCR(ctx context.Context, input ports.OCRInput) (string, error) {
	language := input.Language
	if language == "" {
		language = "eng"
	}

	form := url.Values{}
	form.Set("language", language)
	form.Set("isOverlayRequired", "false")
	form.Set("OCREngine", "2")
	form.Set("apikey", s.ocrAPIKey)
	switch {
	case input.Base64 != "":
		form.Set("base64Image", input.Base64)
	case input.URL != "":
		form.Set("url", input.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ocrEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn().Int("status", resp.StatusCode).Msg("ocr upstream returned non-200")
		return "", ports.ErrOCRFailed
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if len(out.ParsedResults) == 0 {
		return "", nil
	}
	return out.ParsedResults[0].ParsedText, nil
}

type shortenResponse struct {
	ShortURL string `json:"shorturl"`
}

func (s *ProxyService) Shorten(ctx context.Context, long string) (string, error) {
	endpoint := fmt.Sprintf("%s?format=json&url=%s", s.shortenEndpoint, url.QueryEscape(long))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build shorten request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("shorten request: %w", err)
	}
	defer resp.Body.Close()

	var out shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode shorten response: %w", err)
	}
	if out.ShortURL == "" {
		return "", ports.ErrShortenFailed
	}
	return out.ShortURL, nil
}
