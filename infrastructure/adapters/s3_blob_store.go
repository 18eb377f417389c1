package adapters

import (
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/config"
	"bytes"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/rs/zerolog/log"
	"io"
)

type s3BlobStore struct {
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3BlobStore(s3Svc *s3.S3, s3Config *config.S3Config) outbound.BlobStorePort {
	return &s3BlobStore{
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3BlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	getInput := &s3.GetObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(path),
	}

	output, err := s.s3Svc.GetObjectWithContext(ctx, getInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("path", path).
			Msg("Failed to fetch object from S3")
		return nil, err
	}

	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to close S3 object body")
		}
	}(output.Body)

	payload, err := io.ReadAll(output.Body)
	if err != nil {
		log.Error().
			Err(err).
			Str("path", path).
			Msg("Failed to read object body from S3")
		return nil, err
	}

	return payload, nil
}

func (s *s3BlobStore) Put(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		log.Error().
			Err(err).
			Str("bucket", s.s3Config.BucketName).
			Str("path", path).
			Msg("Failed to upload object to S3")
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, path)
	log.Debug().
		Str("s3Url", s3Url).
		Msg("Successfully uploaded object to S3")

	return s3Url, nil
}
