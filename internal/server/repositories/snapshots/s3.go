package snapshots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/casekeeper/internal/common"
	"github.com/dmitrijs2005/casekeeper/internal/server/models"
)

// ObjectAPI is the slice of the S3 client the repository needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options configures the S3-compatible endpoint (MinIO in development).
type S3Options struct {
	User         string
	Password     string
	Region       string
	BaseEndpoint string
}

// NewS3Client builds an S3 client with static credentials and path-style
// addressing, which MinIO requires.
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(o.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.User, o.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		so.UsePathStyle = true
	}), nil
}

// S3Repository stores each snapshot as <prefix>/<userID>.json.
type S3Repository struct {
	api    ObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Repository(api ObjectAPI, bucket, prefix string) *S3Repository {
	return &S3Repository{api: api, bucket: bucket, prefix: prefix, now: time.Now}
}

func (r *S3Repository) key(userID string) string {
	return path.Join(r.prefix, userID+".json")
}

func (r *S3Repository) Put(ctx context.Context, snap *models.Snapshot) error {
	_, err := r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key(snap.UserID)),
		Body:          bytes.NewReader(snap.Data),
		ContentLength: aws.Int64(int64(len(snap.Data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	snap.UpdatedAt = r.now().UTC()
	return nil
}

func (r *S3Repository) Get(ctx context.Context, userID string) (*models.Snapshot, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(userID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read: %w", err)
	}

	snap := &models.Snapshot{UserID: userID, Data: data}
	if out.LastModified != nil {
		snap.UpdatedAt = out.LastModified.UTC()
	}
	return snap, nil
}
