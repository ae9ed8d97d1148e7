package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/processor"
	"resume-parser-go/internal/storage"
	"resume-parser-go/internal/storage/models"
	"resume-parser-go/internal/types"
)

// ResumeHandler 协调简历的上传与解析流程
type ResumeHandler struct {
	cfg             *config.Config
	storage         *storage.Storage
	processorModule *processor.ResumeProcessor
}

// NewResumeHandler 创建一个新的简历处理器
func NewResumeHandler(cfg *config.Config, storage *storage.Storage, processorModule *processor.ResumeProcessor) *ResumeHandler {
	return &ResumeHandler{
		cfg:             cfg,
		storage:         storage,
		processorModule: processorModule,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// HandleResumeUpload 处理简历上传请求
// 格式标签在进入任何解码之前校验；重复文件按MD5跳过
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, filename string, formatTag string, sourceChannel string) (*ResumeUploadResponse, error) {
	format, err := types.ParseDocumentFormat(formatTag)
	if err != nil {
		return nil, err
	}

	// reader只能读一次，先落内存再算MD5
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	sum := md5.Sum(fileBytes)
	fileMD5Hex := hex.EncodeToString(sum[:])

	exists, err := h.storage.Redis.CheckAndAddRawFileMD5(ctx, fileMD5Hex)
	if err != nil {
		logger.Error().Err(err).Str("md5", fileMD5Hex).Msg("查询Redis文件MD5集合失败")
		return nil, fmt.Errorf("检查文件MD5重复性失败: %w", err)
	}
	if exists {
		logger.Info().
			Str("md5", fileMD5Hex).
			Str("filename", filename).
			Msg("检测到重复的文件MD5，跳过处理")
		return &ResumeUploadResponse{
			SubmissionUUID: "",
			Status:         constants.StatusDuplicateFile,
		}, nil
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()

	objectKey, err := h.storage.MinIO.UploadResumeFile(ctx, submissionUUID, "."+string(format), bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		// 上传失败时回滚去重记录，允许重传
		if rmErr := h.storage.Redis.RemoveRawFileMD5(ctx, fileMD5Hex); rmErr != nil {
			logger.Warn().Err(rmErr).Str("md5", fileMD5Hex).Msg("回滚文件MD5记录失败")
		}
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	submission := &models.ResumeSubmission{
		SubmissionUUID:      submissionUUID,
		SubmissionTimestamp: time.Now(),
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		Format:              string(format),
		OriginalFilePathOSS: objectKey,
		RawFileMD5:          fileMD5Hex,
		ProcessingStatus:    constants.StatusPendingParsing,
	}
	if err := h.storage.MySQL.CreateResumeSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("插入提交记录失败: %w", err)
	}

	message := storage.ResumeUploadMessage{
		SubmissionUUID:      submissionUUID,
		Format:              string(format),
		SubmissionTimestamp: submission.SubmissionTimestamp,
		SourceChannel:       sourceChannel,
		OriginalFilename:    filename,
		OriginalFilePathOSS: objectKey,
		RawFileMD5:          fileMD5Hex,
	}

	// 配置了消息队列走异步，否则同请求内直接处理
	if h.storage.RabbitMQ != nil {
		err = h.storage.RabbitMQ.PublishJSON(
			ctx,
			h.cfg.RabbitMQ.ResumeEventsExchange,
			h.cfg.RabbitMQ.UploadedRoutingKey,
			message,
			true,
		)
		if err != nil {
			return nil, fmt.Errorf("发布消息到RabbitMQ失败: %w", err)
		}
		return &ResumeUploadResponse{
			SubmissionUUID: submissionUUID,
			Status:         constants.StatusPendingParsing,
		}, nil
	}

	if err := h.processorModule.ProcessSubmission(ctx, message); err != nil {
		return nil, err
	}
	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusParsed,
	}, nil
}

// StartResumeUploadConsumer 声明拓扑并启动解析消费者
func (h *ResumeHandler) StartResumeUploadConsumer(ctx context.Context) error {
	if h.storage.RabbitMQ == nil {
		return fmt.Errorf("RabbitMQ未配置，无法启动消费者")
	}

	mqCfg := &h.cfg.RabbitMQ
	if err := h.storage.RabbitMQ.EnsureExchange(mqCfg.ResumeEventsExchange, "direct", true); err != nil {
		return fmt.Errorf("确保交换机存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.EnsureQueue(mqCfg.RawResumeQueue, true); err != nil {
		return fmt.Errorf("确保队列存在失败: %w", err)
	}
	if err := h.storage.RabbitMQ.BindQueue(mqCfg.RawResumeQueue, mqCfg.ResumeEventsExchange, mqCfg.UploadedRoutingKey); err != nil {
		return fmt.Errorf("绑定队列失败: %w", err)
	}

	return h.storage.RabbitMQ.StartConsumer(ctx, mqCfg.RawResumeQueue, mqCfg.ConsumerWorkers, func(data []byte) bool {
		var message storage.ResumeUploadMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logger.Error().Err(err).Msg("解析上传消息失败")
			return false
		}

		if err := h.processorModule.ProcessSubmission(ctx, message); err != nil {
			logger.Error().
				Err(err).
				Str("submission_uuid", message.SubmissionUUID).
				Msg("处理简历提交失败")
			return false
		}
		return true
	})
}

// GetParsedRecord 查询一次提交的解析结果，优先走Redis缓存
func (h *ResumeHandler) GetParsedRecord(ctx context.Context, submissionUUID string) (*types.ResumeRecord, error) {
	cached, err := h.storage.Redis.GetCachedParsedRecord(ctx, submissionUUID)
	if err != nil {
		// 缓存读取失败降级回源
		logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取解析结果缓存失败")
	}
	if cached != "" {
		record := types.NewResumeRecord()
		if err := json.Unmarshal([]byte(cached), record); err == nil {
			return record, nil
		}
		logger.Warn().Str("submission_uuid", submissionUUID).Msg("缓存内容损坏，回源MySQL")
	}

	row, err := h.storage.MySQL.GetParsedResume(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}
	record, err := processor.RecordFromRow(row)
	if err != nil {
		return nil, err
	}

	// 回填缓存
	if recordJSON, err := json.Marshal(record); err == nil {
		if cacheErr := h.storage.Redis.CacheParsedRecord(ctx, submissionUUID, string(recordJSON)); cacheErr != nil {
			logger.Warn().Err(cacheErr).Str("submission_uuid", submissionUUID).Msg("回填解析结果缓存失败")
		}
	}
	return record, nil
}

// GetSubmissionStatus 查询提交记录的处理状态
func (h *ResumeHandler) GetSubmissionStatus(ctx context.Context, submissionUUID string) (*models.ResumeSubmission, error) {
	return h.storage.MySQL.GetResumeSubmission(ctx, submissionUUID)
}

// IsNotFound 判断是否是记录不存在类错误
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrSubmissionNotFound) || errors.Is(err, storage.ErrParsedRecordNotFound)
}
