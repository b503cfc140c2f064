package content

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"confreg/internal/config"
	"confreg/internal/logger"

	"github.com/google/uuid"
)

// ErrUploadRejected marks size/content-type violations the client caused.
var ErrUploadRejected = errors.New("upload rejected")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Uploader stores admin-uploaded images on local disk under a fixed
// directory, served back at /uploads/.
type Uploader struct {
	dir      string
	maxBytes int64
	logger   *logger.Logger
}

func NewUploader(cfg config.UploadConfig, log *logger.Logger) (*Uploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Uploader{dir: cfg.Dir, maxBytes: cfg.MaxBytes, logger: log}, nil
}

func (u *Uploader) Dir() string {
	return u.dir
}

// SaveImage reads the named multipart field and persists it with a generated
// name. Returns ("", nil) when the field is absent. Oversized or non-image
// uploads fail with ErrUploadRejected and nothing is written.
func (u *Uploader) SaveImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: invalid multipart upload", ErrUploadRejected)
	}
	defer file.Close()

	if header.Size > u.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, u.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, u.maxBytes)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrUploadRejected, contentType)
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	u.logger.Info("UPLOAD", fmt.Sprintf("Stored %s (%d bytes, %s)", name, len(data), contentType))
	return "/uploads/" + name, nil
}
