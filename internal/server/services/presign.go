package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/giftbox/internal/common"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Upload is a presigned slot for one media object.
type Upload struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// StorageKey places name under a dated, unique prefix so uploads never
// overwrite each other.
func StorageKey(now time.Time, name string) string {
	return fmt.Sprintf("gifts/%d/%02d/%02d/%v/%s", now.Year(), now.Month(), now.Day(), uuid.New(), name)
}

// cleanUploadPath keeps client-supplied paths relative and inside the key
// prefix.
func cleanUploadPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("empty upload path: %w", common.ErrorInvalidArgument)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("bad upload path %q: %w", p, common.ErrorInvalidArgument)
		}
	}
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" {
		return "", fmt.Errorf("bad upload path %q: %w", p, common.ErrorInvalidArgument)
	}
	return cleaned, nil
}

func (s *GiftService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a presigned PUT for a new object and the URL
// readers will fetch it from once uploaded.
func (s *GiftService) PresignUpload(ctx context.Context, uploadPath, contentType string) (*Upload, error) {
	name, err := cleanUploadPath(uploadPath)
	if err != nil {
		return nil, err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("presign client: %w", err)
	}

	now := s.now()
	bucket := s.config.S3Bucket
	key := StorageKey(now, name)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &Upload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: strings.TrimRight(s.config.PublicObjectBase(), "/") + "/" + bucket + "/" + key,
		ExpiresAt: now.Add(s.config.PresignExpiry),
	}, nil
}
