package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"litrato/config"
	"litrato/infras/otel"
	"litrato/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrKey    = "object_key"
	otelAttrBucket = "bucket"
)

// S3 stores public images in the configured bucket. Keys are
// "<directory>/<uuid><ext>", URLs are the key under the public domain.
type S3 interface {
	PutImage(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url, key string, err error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

type s3Impl struct {
	client *s3.Client
	bucket string
	public string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	creds := credentials.NewStaticCredentialsProvider(cfg.External.S3.AccessKeyID, cfg.External.S3.SecretAccessKey, "")

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), awsConfig.WithCredentialsProvider(creds))
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: client,
		bucket: cfg.External.S3.BucketName,
		public: strings.TrimSuffix(cfg.External.S3.PublicDomain, "/"),
		otel:   otel,
	}
}

func (svc *s3Impl) PutImage(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url, key string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutImage")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key = path.Join(directory, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))

	scope.SetAttributes(map[string]any{
		otelAttrKey:    key,
		otelAttrBucket: svc.bucket,
	})

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to rewind image: %w", err)
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(header.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(header.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return svc.public + "/" + key, key, nil
}

func (svc *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrKey:    key,
		otelAttrBucket: svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete image from S3")

		return fmt.Errorf("failed to delete image from S3: %w", err)
	}

	return nil
}

// KeyFromURL returns "" for URLs that were not issued by PutImage.
func (svc *s3Impl) KeyFromURL(url string) string {
	key, ok := strings.CutPrefix(url, svc.public+"/")
	if !ok || svc.public == constant.Empty {
		return constant.Empty
	}

	return key
}
