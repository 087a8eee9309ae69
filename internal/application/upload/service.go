package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/pkg/id"
)

// MaxImageSize bounds a single uploaded image.
const MaxImageSize = 5 << 20

// sniffLen is how many bytes http.DetectContentType looks at.
const sniffLen = 512

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type UploadInput struct {
	Reader     io.Reader
	Size       int64
	UploaderID string
}

type Service interface {
	UploadImage(ctx context.Context, input UploadInput) (*domain.Image, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	store objectStore
}

func NewService(store objectStore) Service {
	return &service{store: store}
}

// UploadImage stores an image under images/{uploader}/{ulid}{ext}. The content type is
// sniffed from the bytes, not taken from the client.
func (s *service) UploadImage(ctx context.Context, input UploadInput) (*domain.Image, error) {
	if input.Size > MaxImageSize {
		return nil, fmt.Errorf("image exceeds %d bytes: %w", MaxImageSize, domain.ErrValidation)
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(input.Reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("image is empty: %w", domain.ErrValidation)
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %q: %w", contentType, domain.ErrValidation)
	}

	key := fmt.Sprintf("images/%s/%s%s", input.UploaderID, id.New(), ext)
	url, err := s.store.Upload(ctx, key, io.MultiReader(bytes.NewReader(head), input.Reader), contentType)
	if err != nil {
		return nil, err
	}
	return &domain.Image{Key: key, URL: url, ContentType: contentType, Size: input.Size}, nil
}
