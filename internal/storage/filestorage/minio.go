package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioFileStorage хранит изображения в S3-совместимом бакете.
type MinioFileStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	maxSize   int64
}

type MinioOptions struct {
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxSize   int64
}

func NewMinioFileStorage(opts MinioOptions) (*MinioFileStorage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}

		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, opts.Bucket)
		if err := client.SetBucketPolicy(ctx, opts.Bucket, policy); err != nil {
			return nil, fmt.Errorf("failed to set bucket policy: %w", err)
		}
	}

	return &MinioFileStorage{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: opts.PublicURL,
		maxSize:   opts.MaxSize,
	}, nil
}

func (s *MinioFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, error) {
	if err := checkImage(file, s.maxSize); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	name := objectName(subPath, file.Filename)

	_, err = s.client.PutObject(ctx, s.bucket, name, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", name, err)
	}

	return name, nil
}

func (s *MinioFileStorage) Delete(ctx context.Context, filePath string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, filePath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", filePath, err)
	}

	return nil
}

// BaseURL публичный адрес бакета; http://host:9000/ превращается в http://host:9000/bucket
func (s *MinioFileStorage) BaseURL() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.publicURL, "/"), s.bucket)
}
