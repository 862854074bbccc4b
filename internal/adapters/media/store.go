package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"speakeradmin/internal/domain"
)

// S3Config holds configuration for the S3 media provider.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL overrides the default virtual-hosted bucket URL, e.g.
	// a CDN in front of the bucket. No trailing slash.
	PublicBaseURL string
}

// StoreConfig holds configuration for creating a media store.
type StoreConfig struct {
	Provider string
	// Local provider: directory uploads are written to and the base URL they
	// are served under.
	LocalDir     string
	LocalBaseURL string
	S3           S3Config
}

// NewStore creates a media store from config. Provider "s3" uploads to AWS S3;
// "local" or unknown writes to the local upload directory.
func NewStore(config StoreConfig) (domain.MediaStore, error) {
	switch config.Provider {
	case "s3":
		awsCfg := aws.Config{
			Region: config.S3.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.S3.AccessKeyID,
					config.S3.SecretAccessKey,
					"",
				),
			),
		}
		return &s3Store{
			client: s3.NewFromConfig(awsCfg),
			bucket: config.S3.Bucket,
			region: config.S3.Region,
			base:   strings.TrimSuffix(config.S3.PublicBaseURL, "/"),
		}, nil
	case "local":
	default:
		log.Printf("[MEDIA] Unknown media provider %q, using local", config.Provider)
	}
	if config.LocalDir == "" {
		return nil, fmt.Errorf("local media store requires an upload directory")
	}
	if err := os.MkdirAll(config.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &localStore{
		dir:  config.LocalDir,
		base: strings.TrimSuffix(config.LocalBaseURL, "/"),
	}, nil
}

// objectKey builds a collision-free key for an upload bound to a record.
func objectKey(recordID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return fmt.Sprintf("speakers/%d/%d%s", recordID, time.Now().UnixNano(), ext)
}

type s3Store struct {
	client *s3.Client
	bucket string
	region string
	base   string
}

func (s *s3Store) Upload(ctx context.Context, up *domain.ImageUpload, recordID int64) (string, error) {
	key := objectKey(recordID, up.Filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          up.Content,
		ContentType:   aws.String(up.ContentType),
		ContentLength: aws.Int64(up.Size),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	if s.base != "" {
		return s.base + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

type localStore struct {
	dir  string
	base string
}

func (l *localStore) Upload(ctx context.Context, up *domain.ImageUpload, recordID int64) (string, error) {
	key := objectKey(recordID, up.Filename)
	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, up.Content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.base + "/" + key, nil
}
