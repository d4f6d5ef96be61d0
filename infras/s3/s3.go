package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cowork/config"
	"cowork/infras/otel"
	"cowork/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrFolder    = "folder"
	otelAttrSize      = "size"

	regionAuto = "auto"
)

// Object is an uploaded document (space image, payment screenshot, KYC file, member photo).
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// S3 stores uploads in the configured bucket. Records keep the public URL; the object key is
// recovered from it with KeyFromURL when the record is replaced or removed.
type S3 interface {
	Upload(ctx context.Context, folder string, object Object) (url string, err error)
	Delete(ctx context.Context, objectKey string) error
	KeyFromURL(url string) (objectKey string)
}

type s3Impl struct {
	client *s3.Client
	bucket string
	cfg    *config.Config
	otel   otel.Otel
}

func (svc *s3Impl) Upload(ctx context.Context, folder string, object Object) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(folder, object.Name)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrFolder:    folder,
		otelAttrSize:      object.Size,
	})

	input := &s3.PutObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
		Body:   object.Body,
	}

	if object.ContentType != constant.Empty {
		input.ContentType = aws.String(object.ContentType)
	}

	if object.Size > 0 {
		input.ContentLength = aws.Int64(object.Size)
	}

	if _, err = svc.client.PutObject(ctx, input); err != nil {
		return constant.Empty, fmt.Errorf("failed to put object %s: %w", objectKey, err)
	}

	return svc.publicURL(objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectKey, err)
	}

	return nil
}

// KeyFromURL returns the object key of a URL produced by Upload, or empty when the URL points elsewhere.
func (svc *s3Impl) KeyFromURL(url string) string {
	for _, prefix := range svc.urlPrefixes() {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix)
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(objectKey string) string {
	publicDomain := strings.TrimRight(svc.cfg.External.S3.PublicDomain, "/")
	if publicDomain == constant.Empty {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(svc.cfg.External.S3.APIEndpoint, "/"), svc.bucket, objectKey)
	}

	return fmt.Sprintf("%s/%s", publicDomain, objectKey)
}

func (svc *s3Impl) urlPrefixes() []string {
	prefixes := make([]string, 0, 2)

	if publicDomain := strings.TrimRight(svc.cfg.External.S3.PublicDomain, "/"); publicDomain != constant.Empty {
		prefixes = append(prefixes, publicDomain+"/")
	}

	if endpoint := strings.TrimRight(svc.cfg.External.S3.APIEndpoint, "/"); endpoint != constant.Empty {
		prefixes = append(prefixes, fmt.Sprintf("%s/%s/", endpoint, svc.bucket))
	}

	return prefixes
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		cfg.External.S3.AccessKeyID,
		cfg.External.S3.SecretAccessKey,
		constant.Empty,
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(regionAuto),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.External.S3.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		bucket: cfg.External.S3.BucketName,
		cfg:    cfg,
		otel:   otel,
	}
}
