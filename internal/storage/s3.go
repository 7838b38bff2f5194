package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Signer 用aws-sdk-go-v2的PresignClient生成PUT URL，endpoint可以指向任何兼容S3的服务
type S3Signer struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewS3Signer 没有显式给出AccessKey时走默认凭证链（环境变量、共享配置、实例角色）
func NewS3Signer(ctx context.Context, region, bucket, endpoint, accessKey, secretKey string) (*S3Signer, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}
	return NewS3SignerFromConfig(awsCfg, bucket, endpoint), nil
}

func NewS3SignerFromConfig(awsCfg aws.Config, bucket, endpoint string) *S3Signer {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Signer{presigner: s3.NewPresignClient(client), bucket: bucket}
}

func (s *S3Signer) PresignUpload(ctx context.Context, objectKey string, ttl time.Duration) (*UploadURL, error) {
	expiresAt := time.Now().UTC().Add(ttl)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return &UploadURL{URL: req.URL, ObjectKey: objectKey, ExpiresAt: expiresAt}, nil
}
