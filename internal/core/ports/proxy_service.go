package ports

import (
	"context"
	"errors"
)

var ErrOCRFailed = errors.New("ocr request failed")
var ErrShortenFailed = errors.New("shorten request failed")

// OCRInput is an image to extract text from, either inline or by URL.
type OCRInput struct {
	Base64   string
	URL      string
	Language string
}

// ProxyService fronts the third-party OCR and URL-shortening APIs so their
// keys never reach the browser.
type ProxyService interface {
	// OCR returns the recognised text, or ErrOCRFailed when the upstream
	// service rejects the request.
	OCR(ctx context.Context, input OCRInput) (text string, err error)
	// Shorten returns a shortened URL, or ErrShortenFailed when the upstream
	// service does not produce one.
	Shorten(ctx context.Context, url string) (short string, err error)
}
