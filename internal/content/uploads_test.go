package content_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"confreg/internal/config"
	"confreg/internal/content"
	"confreg/internal/logger"

	"github.com/stretchr/testify/assert"
)

func newUploader(t *testing.T, maxBytes int64) *content.Uploader {
	uploader, err := content.NewUploader(config.UploadConfig{Dir: t.TempDir(), MaxBytes: maxBytes}, logger.NewLogger())
	if err != nil {
		t.Fatalf("Failed to create uploader: %v", err)
	}
	return uploader
}

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/speakers", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSaveImageStoresPNG(t *testing.T) {
	uploader := newUploader(t, 1<<20)

	req := multipartRequest(t, "image", "portrait.png", pngBytes(t))
	path, err := uploader.SaveImage(req, "image")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	stored := filepath.Join(uploader.Dir(), strings.TrimPrefix(path, "/uploads/"))
	data, err := os.ReadFile(stored)
	assert.NoError(t, err)
	assert.Equal(t, pngBytes(t), data)
}

func TestSaveImageMissingFieldIsNoop(t *testing.T) {
	uploader := newUploader(t, 1<<20)

	req := multipartRequest(t, "other", "portrait.png", pngBytes(t))
	path, err := uploader.SaveImage(req, "image")
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestSaveImageRejectsOversized(t *testing.T) {
	uploader := newUploader(t, 16)

	req := multipartRequest(t, "image", "portrait.png", pngBytes(t))
	_, err := uploader.SaveImage(req, "image")
	assert.ErrorIs(t, err, content.ErrUploadRejected)

	// Nothing may be written on rejection.
	entries, readErr := os.ReadDir(uploader.Dir())
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	uploader := newUploader(t, 1<<20)

	req := multipartRequest(t, "image", "notes.txt", []byte("just some text, not an image"))
	_, err := uploader.SaveImage(req, "image")
	assert.ErrorIs(t, err, content.ErrUploadRejected)

	entries, readErr := os.ReadDir(uploader.Dir())
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}
