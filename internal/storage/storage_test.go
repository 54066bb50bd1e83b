package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failures int
	calls    int
}

func (f *fakeS3) fail() error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return errors.New("connection reset by peer")
	}
	return nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func newTestStore(f *fakeS3) *Store {
	s := NewWithClient(f, "resumes-bucket")
	s.delay = 0
	return s
}

func TestUploadDownload_RetriesTransientErrors(t *testing.T) {
	f := &fakeS3{objects: map[string][]byte{}, failures: 2}
	s := newTestStore(f)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "resumes/sre/sre_resume.pdf", []byte("%PDF"), "application/pdf"))
	assert.Equal(t, 3, f.calls)
	assert.Contains(t, f.objects, s.Bucket()+"/resumes/sre/sre_resume.pdf")

	data, err := s.Download(ctx, "resumes/sre/sre_resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestDownload_GivesUp(t *testing.T) {
	f := &fakeS3{objects: map[string][]byte{}}
	s := newTestStore(f)

	_, err := s.Download(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "NoSuchKey"))
	assert.Equal(t, 3, f.calls)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestConfigEndpoint(t *testing.T) {
	assert.Equal(t, "https://abc.r2.cloudflarestorage.com", Config{AccountID: "abc"}.endpoint())
	assert.Equal(t, "auto", Config{AccountID: "abc"}.region())
	assert.Equal(t, "http://localhost:9000", Config{AccountID: "abc", Endpoint: "http://localhost:9000"}.endpoint())
	assert.Equal(t, "", Config{}.endpoint())
	assert.Equal(t, "us-east-1", Config{}.region())
}

func TestPublishKeyAndContentType(t *testing.T) {
	assert.Equal(t, "resumes/sre/sre_resume.pdf", PublishKey("sre", "/out/sre_resume.pdf"))
	assert.Equal(t, "application/pdf", ContentType("x.pdf"))
	assert.Equal(t, "application/octet-stream", ContentType("x.unknownext"))
}
