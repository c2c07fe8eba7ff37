package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/devcampr/devcampr/internal/pkg/apperrors"
	"github.com/devcampr/devcampr/internal/pkg/logger"
)

// LocalStorage saves uploaded photos on the local filesystem.
type LocalStorage struct {
	basePath      string
	maxUploadSize int64
}

// NewLocalStorage creates a LocalStorage rooted at basePath. The directory
// is created if missing.
func NewLocalStorage(basePath string, maxUploadSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath, maxUploadSize: maxUploadSize}, nil
}

// ValidatePhoto rejects uploads that are not images or exceed the size
// ceiling. Returns an ErrUploadRejected wrap describing the problem.
func (ls *LocalStorage) ValidatePhoto(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewUploadRejectedError("please upload a file")
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return apperrors.NewUploadRejectedError("please upload an image file")
	}
	if fileHeader.Size > ls.maxUploadSize {
		return apperrors.NewUploadRejectedError(fmt.Sprintf("please upload an image less than %d bytes", ls.maxUploadSize))
	}
	return nil
}

// SavePhoto validates and stores an uploaded photo under the given base name
// (the original extension is kept) and returns the stored filename.
func (ls *LocalStorage) SavePhoto(fileHeader *multipart.FileHeader, baseName string) (string, error) {
	if err := ls.ValidatePhoto(fileHeader); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := baseName + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", filename).Msg("Photo saved")
	return filename, nil
}

// Delete removes a stored file. Missing files are treated as already
// deleted.
func (ls *LocalStorage) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	path := filepath.Join(ls.basePath, filepath.Base(filename))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// BasePath returns the storage root, used for static file serving.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}
