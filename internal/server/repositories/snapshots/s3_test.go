package snapshots

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

// memBucket is an in-memory ObjectAPI keyed by bucket/key.
type memBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
	lastPut *s3.PutObjectInput
}

func newMemBucket() *memBucket {
	return &memBucket{objects: map[string][]byte{}}
}

func (m *memBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = b
	m.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (m *memBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:         io.NopCloser(bytes.NewReader(b)),
		LastModified: aws.Time(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	}, nil
}

func TestS3Repository_RoundTrip(t *testing.T) {
	api := newMemBucket()
	repo := NewS3Repository(api, "casekeeper", "snapshots")
	stamp := time.Date(2024, 6, 30, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return stamp }
	ctx := context.Background()

	_, err := repo.Get(ctx, "u1")
	require.ErrorIs(t, err, common.ErrNotFound)

	snap := &models.Snapshot{UserID: "u1", Data: []byte(`{"cases":[]}`)}
	require.NoError(t, repo.Put(ctx, snap))
	assert.Equal(t, stamp, snap.UpdatedAt)
	assert.Equal(t, "snapshots/u1.json", aws.ToString(api.lastPut.Key))
	assert.Equal(t, int64(len(snap.Data)), aws.ToInt64(api.lastPut.ContentLength))
	assert.Equal(t, "application/json", aws.ToString(api.lastPut.ContentType))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.JSONEq(t, `{"cases":[]}`, string(got.Data))
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), got.UpdatedAt)
}

func TestS3Repository_Errors(t *testing.T) {
	ctx := context.Background()

	api := newMemBucket()
	api.putErr = errors.New("access denied")
	repo := NewS3Repository(api, "b", "")
	assert.ErrorContains(t, repo.Put(ctx, &models.Snapshot{UserID: "u1", Data: []byte(`{}`)}), "s3 put: access denied")

	api = newMemBucket()
	api.getErr = errors.New("503 slow down")
	repo = NewS3Repository(api, "b", "")
	_, err := repo.Get(ctx, "u1")
	assert.ErrorContains(t, err, "s3 get: 503 slow down")
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestS3Repository_KeyWithoutPrefix(t *testing.T) {
	repo := NewS3Repository(newMemBucket(), "b", "")
	assert.Equal(t, "u9.json", repo.key("u9"))
}

func TestNewS3Client(t *testing.T) {
	c, err := NewS3Client(context.Background(), S3Options{
		User: "admin", Password: "secret", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000/",
	})
	require.NoError(t, err)
	assert.True(t, c.Options().UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000/", aws.ToString(c.Options().BaseEndpoint))
	assert.Equal(t, "us-east-1", c.Options().Region)
}
