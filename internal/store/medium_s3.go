package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// S3Config holds the connection settings for the S3 medium.
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
	Key             string
}

// S3Medium persists the payload as a single object in an S3 bucket.
type S3Medium struct {
	client *s3.Client
	cfg    *S3Config
	log    *zap.Logger
}

func NewS3Medium(cfg *S3Config, log *zap.Logger) (*S3Medium, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				HostnameImmutable: true,
				Source:            aws.EndpointSourceCustom,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithEndpointResolverWithOptions(customResolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	m := &S3Medium{
		client: client,
		cfg:    cfg,
		log:    log,
	}

	if err := m.ensureBucketExists(context.Background()); err != nil {
		log.Warn("Failed to ensure bucket exists", zap.Error(err))
	}

	return m, nil
}

func (m *S3Medium) ensureBucketExists(ctx context.Context) error {
	_, err := m.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(m.cfg.BucketName),
	})

	if err == nil {
		m.log.Info("Bucket already exists", zap.String("bucket", m.cfg.BucketName))
		return nil
	}

	m.log.Info("Creating bucket", zap.String("bucket", m.cfg.BucketName))

	_, err = m.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(m.cfg.BucketName),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(m.cfg.Region),
		},
	})

	if err != nil {
		return err
	}

	m.log.Info("Bucket created successfully", zap.String("bucket", m.cfg.BucketName))

	// MinIO needs a moment before the bucket accepts writes.
	time.Sleep(1 * time.Second)

	return nil
}

func (m *S3Medium) Read(ctx context.Context) ([]byte, bool, error) {
	output, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.cfg.BucketName),
		Key:    aws.String(m.cfg.Key),
	})

	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, false, nil
		}
		m.log.Error("Failed to read photo sequence from S3",
			zap.String("key", m.cfg.Key),
			zap.Error(err))
		return nil, false, err
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, false, err
	}

	return data, true, nil
}

func (m *S3Medium) Write(ctx context.Context, data []byte) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.cfg.BucketName),
		Key:           aws.String(m.cfg.Key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})

	if err != nil {
		m.log.Error("Failed to write photo sequence to S3",
			zap.String("key", m.cfg.Key),
			zap.Error(err))
		return err
	}

	m.log.Debug("Photo sequence written to S3",
		zap.String("key", m.cfg.Key),
		zap.Int("size", len(data)))

	return nil
}
