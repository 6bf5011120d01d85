package services

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"catalog-backend/internal/apperr"
	"catalog-backend/internal/testutil"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOfflineMinIO skips bucket setup; presigning with a fixed region needs no network.
func newOfflineMinIO(t *testing.T) *MinIOService {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)

	return &MinIOService{
		client:    client,
		bucket:    "covers",
		publicURL: "https://cdn.example.com/ignored/path",
		logger:    testutil.NewLogger(),
	}
}

func TestMinIOService_GeneratePresignedURL(t *testing.T) {
	s := newOfflineMinIO(t)

	presigned, public, err := s.GeneratePresignedURL(context.Background(), "the hobbit.JPG", "image/jpeg")
	require.NoError(t, err)

	u, err := url.Parse(presigned)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/covers/covers/the hobbit_"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))

	assert.True(t, strings.HasPrefix(public, "https://cdn.example.com/covers/covers/the hobbit_"))
	assert.True(t, strings.HasSuffix(public, ".jpg"))
	assert.True(t, s.IsManagedURL(public))

	_, _, err = s.GeneratePresignedURL(context.Background(), "notes.pdf", "application/pdf")
	assert.True(t, apperr.IsValidation(err))
}

func TestMinIOService_ObjectKey(t *testing.T) {
	s := newOfflineMinIO(t)

	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/covers/covers/a_1.png", "covers/a_1.png"},
		{"http://localhost:9000/covers/covers/a_1.png?X-Amz-Signature=abc", "covers/a_1.png"},
		{"covers/a_1.png", "covers/a_1.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.objectKey(tt.in), tt.in)
	}
}

func TestMinIOService_IsManagedURL(t *testing.T) {
	s := newOfflineMinIO(t)

	assert.True(t, s.IsManagedURL("http://localhost:9000/covers/covers/x.png"))
	assert.False(t, s.IsManagedURL("https://covers.openlibrary.org/b/id/1-L.jpg"))
	assert.False(t, s.IsManagedURL("covers/covers/x.png"))
	assert.False(t, s.IsManagedURL(""))
}

func TestCoverObjectPath(t *testing.T) {
	p := coverObjectPath("/tmp/uploads/Dune.PNG")
	assert.True(t, strings.HasPrefix(p, "covers/Dune_"))
	assert.True(t, strings.HasSuffix(p, ".png"))
	assert.Len(t, p, len("covers/Dune_")+8+len(".png"))
}
