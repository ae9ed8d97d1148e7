package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"resume-parser-go/internal/config"
)

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	UploadResumeFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error)
	GetResumeFile(ctx context.Context, objectKey string) ([]byte, error)
	DeleteFile(ctx context.Context, objectKey string) error
}

var _ ObjectStorage = (*MinIO)(nil)

// MinIO 原始简历文件的对象存储
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
	logger *log.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶存在
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client: client,
		cfg:    cfg,
		logger: logger,
	}

	if err := m.ensureBucketExists(cfg.OriginalsBucket, cfg.Location); err != nil {
		return nil, err
	}

	if cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(context.Background(), cfg.OriginalsBucket, "expire-originals", cfg.OriginalFileExpireDays); err != nil {
			// 生命周期规则失败不致命，记日志后继续
			m.logger.Printf("设置存储桶生命周期失败: %v", err)
		}
	}

	return m, nil
}

// ensureBucketExists 确保存储桶存在，不存在则创建
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶%s失败: %w", bucketName, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("创建存储桶%s失败: %w", bucketName, err)
	}
	m.logger.Printf("存储桶创建成功: %s", bucketName)
	return nil
}

// setupBucketLifecycle 设置对象过期天数
func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, bucketName, lc)
}

// UploadResumeFile 上传原始简历文件，返回对象键
// 对象键格式: originals/<uuid><ext>
func (m *MinIO) UploadResumeFile(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error) {
	objectKey := fmt.Sprintf("originals/%s%s", submissionUUID, fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.OriginalsBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentTypeForExt(fileExt),
	})
	if err != nil {
		return "", fmt.Errorf("上传对象%s失败: %w", objectKey, err)
	}

	m.logger.Printf("上传原始简历成功: %s (%d 字节)", objectKey, fileSize)
	return objectKey, nil
}

// GetResumeFile 下载原始简历文件内容
func (m *MinIO) GetResumeFile(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.cfg.OriginalsBucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象%s失败: %w", objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象%s失败: %w", objectKey, err)
	}
	return data, nil
}

// DeleteFile 删除对象
func (m *MinIO) DeleteFile(ctx context.Context, objectKey string) error {
	if err := m.client.RemoveObject(ctx, m.cfg.OriginalsBucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("删除对象%s失败: %w", objectKey, err)
	}
	return nil
}

// contentTypeForExt 按扩展名返回Content-Type
func contentTypeForExt(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
