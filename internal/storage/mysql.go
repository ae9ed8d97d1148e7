package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/storage/models"
)

// ErrSubmissionNotFound 提交记录不存在
var ErrSubmissionNotFound = errors.New("提交记录不存在")

// ErrParsedRecordNotFound 解析结果不存在
var ErrParsedRecordNotFound = errors.New("解析结果不存在")

// MySQL 关系型存储：提交记录与解析结果
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL连接并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.ConnectTimeoutSeconds)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}
	if err := m.autoMigrateSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

// autoMigrateSchema 自动迁移表结构
func (m *MySQL) autoMigrateSchema() error {
	if err := m.db.AutoMigrate(
		&models.ResumeSubmission{},
		&models.ParsedResume{},
	); err != nil {
		return fmt.Errorf("自动迁移表结构失败: %w", err)
	}
	return nil
}

// DB 返回底层gorm实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateResumeSubmission 插入一条提交记录
func (m *MySQL) CreateResumeSubmission(ctx context.Context, submission *models.ResumeSubmission) error {
	if err := m.db.WithContext(ctx).Create(submission).Error; err != nil {
		return fmt.Errorf("插入提交记录失败: %w", err)
	}
	return nil
}

// GetResumeSubmission 按UUID读取提交记录
func (m *MySQL) GetResumeSubmission(ctx context.Context, submissionUUID string) (*models.ResumeSubmission, error) {
	var submission models.ResumeSubmission
	err := m.db.WithContext(ctx).First(&submission, "submission_uuid = ?", submissionUUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询提交记录失败: %w", err)
	}
	return &submission, nil
}

// UpdateProcessingStatus 更新提交记录的处理状态
func (m *MySQL) UpdateProcessingStatus(ctx context.Context, submissionUUID string, status string) error {
	err := m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("processing_status", status).Error
	if err != nil {
		return fmt.Errorf("更新处理状态失败: %w", err)
	}
	return nil
}

// MarkParseFailed 记录失败状态和错误信息
func (m *MySQL) MarkParseFailed(ctx context.Context, submissionUUID string, parseErr string) error {
	err := m.db.WithContext(ctx).Model(&models.ResumeSubmission{}).
		Where("submission_uuid = ?", submissionUUID).
		Updates(map[string]interface{}{
			"processing_status": "PARSE_FAILED",
			"parse_error":       parseErr,
		}).Error
	if err != nil {
		return fmt.Errorf("更新失败状态失败: %w", err)
	}
	return nil
}

// SaveParsedResume 保存解析结果，已存在则整行更新（同一提交重新解析）
func (m *MySQL) SaveParsedResume(ctx context.Context, record *models.ParsedResume) error {
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_uuid"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("保存解析结果失败: %w", err)
	}
	return nil
}

// GetParsedResume 按提交UUID读取解析结果
func (m *MySQL) GetParsedResume(ctx context.Context, submissionUUID string) (*models.ParsedResume, error) {
	var record models.ParsedResume
	err := m.db.WithContext(ctx).First(&record, "submission_uuid = ?", submissionUUID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrParsedRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询解析结果失败: %w", err)
	}
	return &record, nil
}
