package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// smallest valid GIF
var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func gifDataURI() string {
	return "data:image/gif;base64," + base64.StdEncoding.EncodeToString(gifBytes)
}

func TestDecodeDataURI(t *testing.T) {
	data, contentType, err := DecodeDataURI(gifDataURI())
	require.NoError(t, err)
	assert.Equal(t, "image/gif", contentType)
	assert.Equal(t, gifBytes, data)
}

func TestDecodeDataURIRejects(t *testing.T) {
	cases := map[string]string{
		"not a data uri": "https://example.com/x.png",
		"not base64":     "data:image/png;base64,@@@",
		"plain text":     "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello world")),
		"empty":          "data:image/png;base64,",
		"no encoding":    "data:image/png," + base64.StdEncoding.EncodeToString(gifBytes),
	}
	for name, uri := range cases {
		_, _, err := DecodeDataURI(uri)
		assert.ErrorIs(t, err, ErrInvalidImage, name)
	}
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), gifBytes, "image/gif")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".gif"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	require.NoError(t, err)
	assert.Equal(t, gifBytes, saved)
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func TestS3StoreSave(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "foodgram-media" &&
			strings.HasPrefix(aws.ToString(in.Key), "recipes/") &&
			aws.ToString(in.ContentType) == "image/png" &&
			string(body) == "png-bytes"
	})).Return(&s3.PutObjectOutput{}, nil)

	store := &S3Store{Client: client, BucketName: "foodgram-media"}
	url, err := store.Save(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://foodgram-media.s3.amazonaws.com/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	client.AssertExpectations(t)
}

func TestS3StoreSaveError(t *testing.T) {
	client := new(mockS3)
	boom := errors.New("access denied")
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, boom)

	store := &S3Store{Client: client, BucketName: "foodgram-media"}
	_, err := store.Save(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, boom)
}
