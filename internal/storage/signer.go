// Package storage 为原始视频上传签发只写、限时的URL。
// 客户端拿着URL直接把文件传到对象存储，转码流水线在本服务之外。
package storage

import (
	"StreamHub/internal/config"
	"context"
	"fmt"
	"time"
)

// UploadURL 是签好名的上传地址
type UploadURL struct {
	URL       string
	ObjectKey string
	ExpiresAt time.Time
}

// Signer 为单个对象签发只写URL
type Signer interface {
	PresignUpload(ctx context.Context, objectKey string, ttl time.Duration) (*UploadURL, error)
}

// ObjectKey 视频ID对应的原始文件名
func ObjectKey(videoID string) string {
	return videoID + ".mp4"
}

// NewSigner 根据配置选择存储后端
func NewSigner(ctx context.Context, cfg config.StorageConfig) (Signer, error) {
	switch cfg.Provider {
	case config.StorageAzure:
		return NewAzureSigner(cfg.AzureAccount, cfg.AzureKey, cfg.AzureContainer, cfg.AzureEndpoint)
	case config.StorageMinio:
		return NewMinioSigner(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioRegion, cfg.MinioUseSSL)
	case config.StorageS3:
		return NewS3Signer(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
	default:
		return nil, fmt.Errorf("不支持的存储后端: %q", cfg.Provider)
	}
}
