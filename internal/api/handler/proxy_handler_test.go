package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/quickconvert/entitlement-system/internal/core/ports"
)

type stubProxyService struct {
	text       string
	ocrErr     error
	short      string
	shortenErr error
	lastInput  ports.OCRInput
}

func (s *stubProxyService) OCR(_ context.Context, input ports.OCRInput) (string, error) {
	s.lastInput = input
	return s.text, s.ocrErr
}

func (s *stubProxyService) Shorten(context.Context, string) (string, error) {
	return s.short, s.shortenErr
}

func TestProxyHandler_OCR(t *testing.T) {
	stub := &stubProxyService{text: "hello"}
	h := NewProxyHandler(stub)

	c, rec := newJSONContext("/ocr", `{"base64":"aGVsbG8=","language":"spa"}`)
	if err := h.OCR(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != true || body["text"] != "hello" {
		t.Fatalf("body = %v", body)
	}
	if stub.lastInput.Base64 != "aGVsbG8=" || stub.lastInput.Language != "spa" {
		t.Fatalf("input = %+v", stub.lastInput)
	}
}

func TestProxyHandler_OCR_MissingInput(t *testing.T) {
	h := NewProxyHandler(&stubProxyService{})

	c, rec := newJSONContext("/ocr", `{"language":"eng"}`)
	if err := h.OCR(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "missing_input" {
		t.Fatalf("body = %v", body)
	}
}

func TestProxyHandler_OCR_UpstreamFailure(t *testing.T) {
	h := NewProxyHandler(&stubProxyService{ocrErr: ports.ErrOCRFailed})

	c, rec := newJSONContext("/ocr", `{"url":"http://example.com/x.png"}`)
	if err := h.OCR(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("upstream failure is a business outcome, status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "ocr_failed" {
		t.Fatalf("body = %v", body)
	}
}

func TestProxyHandler_Shorten(t *testing.T) {
	h := NewProxyHandler(&stubProxyService{short: "https://is.gd/abc"})

	c, rec := newJSONContext("/shorten", `{"url":"https://example.com/long"}`)
	if err := h.Shorten(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	body := decodeBody(t, rec)
	if body["ok"] != true || body["short"] != "https://is.gd/abc" {
		t.Fatalf("body = %v", body)
	}
}

func TestProxyHandler_Shorten_MissingURL(t *testing.T) {
	h := NewProxyHandler(&stubProxyService{})

	c, rec := newJSONContext("/shorten", `{}`)
	if err := h.Shorten(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "missing_url" {
		t.Fatalf("body = %v", body)
	}
}
