package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"rental/config"
	"rental/infras/otel"
	"rental/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// S3 stores uploaded receipts and documents in an S3 compatible bucket.
// An empty bucket name means the configured default bucket.
type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

// ObjectName returns a random object name keeping the extension of the uploaded file.
func ObjectName(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

type objectStore struct {
	client *s3.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	store := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(store.AccessKeyID, store.SecretAccessKey, constant.Empty)),
		awsConfig.WithRegion(store.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if store.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(store.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &objectStore{client: client, cfg: cfg, otel: otel}
}

func (o *objectStore) bucket(name string) string {
	if name == constant.Empty {
		return o.cfg.External.S3.BucketName
	}

	return name
}

func (o *objectStore) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	ctx, scope := o.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := o.bucket(bucketName)
	key := path.Join(directory, fileName)

	contentType, err := contentTypeOf(file, fileHeader)
	if err != nil {
		return constant.Empty, err
	}

	scope.SetAttributes(map[string]any{
		"s3.bucket":       bucket,
		"s3.key":          key,
		"s3.content_type": contentType,
		"s3.size":         fileHeader.Size,
	})

	_, err = o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return o.publicURL(key), nil
}

func (o *objectStore) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := o.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucket := o.bucket(bucketName)
	key := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		"s3.bucket": bucket,
		"s3.key":    key,
	})

	if _, err = o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// GetObjectNameFromURL returns the object name, without its directory, of a URL handed out by UploadFile.
// URLs from other hosts give an empty name.
func (o *objectStore) GetObjectNameFromURL(bucketName, url string) string {
	store := o.cfg.External.S3

	for _, base := range []string{
		store.PublicDomain,
		strings.TrimSuffix(store.APIEndpoint, "/") + "/" + o.bucket(bucketName),
	} {
		prefix := strings.TrimSuffix(base, "/") + "/"
		if prefix == "/" || !strings.HasPrefix(url, prefix) {
			continue
		}

		if name := path.Base(strings.TrimPrefix(url, prefix)); name != "." && name != "/" {
			return name
		}
	}

	return constant.Empty
}

func (o *objectStore) publicURL(key string) string {
	return strings.TrimSuffix(o.cfg.External.S3.PublicDomain, "/") + "/" + key
}

// contentTypeOf trusts the declared type unless the client sent none or a generic one.
func contentTypeOf(file multipart.File, header *multipart.FileHeader) (string, error) {
	declared := header.Header.Get(constant.RequestHeaderContentType)
	if declared != constant.Empty && declared != constant.ContentTypeOctetStream {
		return declared, nil
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to detect content type: %w", err)
	}

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind upload: %w", err)
	}

	return detected.String(), nil
}
