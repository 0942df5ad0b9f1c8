package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"etik/internal/shared/config"
	"etik/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("unsupported image type")
)

type Service interface {
	UploadImage(ctx context.Context, fileName string, r io.Reader) (*ImageResponse, error)
}

type service struct {
	repo         Repository
	maxSize      int64
	allowedTypes []string
	logger       *logger.Logger
}

func NewService(repo Repository, cfg config.UploadConfig, l *logger.Logger) Service {
	return &service{
		repo:         repo,
		maxSize:      cfg.MaxSize,
		allowedTypes: cfg.AllowedTypes,
		logger:       l,
	}
}

// UploadImage sniffs the content type from the bytes rather than trusting the
// client header, then pushes the file through a presigned storage slot.
func (s *service) UploadImage(ctx context.Context, fileName string, r io.Reader) (*ImageResponse, error) {
	// One extra byte tells an exact-limit file apart from an oversized one
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	contentType := http.DetectContentType(data)
	if !slices.Contains(s.allowedTypes, contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := storageName(fileName)
	upload, err := s.repo.RequestPresignedURL(ctx, name, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to request upload slot: %w", err)
	}

	if err := s.repo.PutObject(ctx, upload.UploadURL, contentType, data); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Image uploaded",
		slog.String("key", upload.Key),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)),
	)

	return &ImageResponse{
		URL:         upload.PublicURL,
		Key:         upload.Key,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// storageName keeps the extension of the original name behind a random stem
func storageName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	return uuid.NewString() + ext
}
