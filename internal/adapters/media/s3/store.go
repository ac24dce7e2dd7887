package s3

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/domain/user/media"
	"github.com/vidtube/user-service/internal/infra/config"
)

type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.S3PublicBaseURL, "/"),
	}, nil
}

func (s *Store) Upload(ctx context.Context, f media.File) (media.Upload, error) {
	key := storageKey(f.Name)

	input := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   f.Content,
	}
	if f.ContentType != "" {
		input.ContentType = &f.ContentType
	}
	if f.Size > 0 {
		input.ContentLength = aws.Int64(f.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return media.Upload{}, err
	}

	return media.Upload{
		URL: s.publicBaseURL + "/" + key,
		Key: key,
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	return err
}

// storageKey spreads objects by date and keeps the original extension so
// the CDN can infer the content type.
func storageKey(name string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(name))
}
