package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioSigner 生成预签名PUT URL
type MinioSigner struct {
	client *minio.Client
	bucket string
}

// region必须给出，否则预签名时minio会先发请求查询存储桶所在区域
func NewMinioSigner(endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioSigner, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}
	return &MinioSigner{client: client, bucket: bucket}, nil
}

func (s *MinioSigner) PresignUpload(ctx context.Context, objectKey string, ttl time.Duration) (*UploadURL, error) {
	expiresAt := time.Now().UTC().Add(ttl)
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, ttl)
	if err != nil {
		return nil, fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return &UploadURL{URL: u.String(), ObjectKey: objectKey, ExpiresAt: expiresAt}, nil
}
