package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// AzureSigner 用账号共享密钥在本地生成Blob SAS，不需要访问网络
type AzureSigner struct {
	cred      *azblob.SharedKeyCredential
	container string
	endpoint  string
}

// endpoint为空时使用 https://<account>.blob.core.windows.net，本地Azurite可以传 http://127.0.0.1:10000/devstoreaccount1
func NewAzureSigner(account, key, container, endpoint string) (*AzureSigner, error) {
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("创建Azure共享密钥凭证失败: %w", err)
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net", account)
	}
	return &AzureSigner{
		cred:      cred,
		container: container,
		endpoint:  strings.TrimRight(endpoint, "/"),
	}, nil
}

// PresignUpload 只给w权限，范围就是这一个blob
func (s *AzureSigner) PresignUpload(_ context.Context, objectKey string, ttl time.Duration) (*UploadURL, error) {
	expiresAt := time.Now().UTC().Add(ttl)
	perms := sas.BlobPermissions{Write: true}

	qp, err := sas.BlobSignatureValues{
		ExpiryTime:    expiresAt,
		Permissions:   perms.String(),
		ContainerName: s.container,
		BlobName:      objectKey,
	}.SignWithSharedKey(s.cred)
	if err != nil {
		return nil, fmt.Errorf("生成SAS失败: %w", err)
	}

	return &UploadURL{
		URL:       fmt.Sprintf("%s/%s/%s?%s", s.endpoint, s.container, url.PathEscape(objectKey), qp.Encode()),
		ObjectKey: objectKey,
		ExpiresAt: expiresAt,
	}, nil
}
