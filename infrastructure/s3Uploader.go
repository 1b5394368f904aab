package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const bucketPrefix = "com.healthmate.export."

// S3Uploader implements usecase.Uploader on an S3 bucket
type S3Uploader struct {
	uploader     *manager.Uploader
	bucketSuffix string
}

func NewS3Uploader(s3UploadClient manager.UploadAPIClient, bucketSuffix string) (S3Uploader, error) {
	if s3UploadClient == nil {
		return S3Uploader{}, errors.New("s3 upload client nil")
	}
	if bucketSuffix == "" {
		return S3Uploader{}, errors.New("bucket suffix is empty")
	}
	return S3Uploader{
		uploader:     manager.NewUploader(s3UploadClient),
		bucketSuffix: bucketSuffix,
	}, nil
}

func (u S3Uploader) Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error {
	bucket := bucketPrefix + u.bucketSuffix
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(filename),
		Body:   buffer,
	})
	if err != nil {
		return fmt.Errorf("upload failed filename=[%s], bucket=[%s]: %w", filename, bucket, err)
	}
	return nil
}
