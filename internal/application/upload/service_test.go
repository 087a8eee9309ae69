package upload

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Bug-Bust3rs/CARE-Community-Aid-and-Resource-Exchange/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectStore struct {
	mock.Mock
	body []byte
}

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	m.body, _ = io.ReadAll(r)
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

// pngHeader is the 8-byte PNG signature followed by filler.
var pngHeader = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 1024)...)

func TestUploadImage_PNG(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "images/acc1/") && strings.HasSuffix(key, ".png")
	}), "image/png").Return("https://bucket/images/acc1/x.png", nil)

	img, err := NewService(store).UploadImage(context.Background(), UploadInput{
		Reader: bytes.NewReader(pngHeader), Size: int64(len(pngHeader)), UploaderID: "acc1",
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "https://bucket/images/acc1/x.png", img.URL)
	assert.Equal(t, pngHeader, store.body)
	store.AssertExpectations(t)
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	store := &mockObjectStore{}
	_, err := NewService(store).UploadImage(context.Background(), UploadInput{
		Reader: strings.NewReader("just some text"), Size: 14, UploaderID: "acc1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImage_TooLarge(t *testing.T) {
	_, err := NewService(&mockObjectStore{}).UploadImage(context.Background(), UploadInput{
		Reader: bytes.NewReader(pngHeader), Size: MaxImageSize + 1, UploaderID: "acc1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUploadImage_Empty(t *testing.T) {
	_, err := NewService(&mockObjectStore{}).UploadImage(context.Background(), UploadInput{
		Reader: bytes.NewReader(nil), UploaderID: "acc1",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
