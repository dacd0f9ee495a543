package imagestore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput,
	_ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput,
	_ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_UploadDelete(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
	store := newStore(objects, "evidence", "https://cdn.example.com/", zap.NewNop())
	ctx := context.Background()

	img, err := store.Upload(ctx, "Receipt.PNG", bytes.NewBufferString("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(img.PublicID, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+img.PublicID, img.URL)
	assert.Equal(t, []byte("png-bytes"), objects.objects[img.PublicID])
	assert.Equal(t, "image/png", objects.types[img.PublicID])

	require.NoError(t, store.Delete(ctx, img.PublicID))
	assert.Empty(t, objects.objects)
}

func TestS3Store_UploadError(t *testing.T) {
	errDown := errors.New("bucket unavailable")
	store := newStore(&fakeObjects{fail: errDown}, "evidence", "https://cdn.example.com", zap.NewNop())

	_, err := store.Upload(context.Background(), "a.jpg", bytes.NewBufferString("x"))
	assert.ErrorIs(t, err, errDown)
}
