package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/hertz-contrib/keyauth"

	"resume-parser-go/internal/api/handler"
	"resume-parser-go/internal/config"
	"resume-parser-go/internal/export"
	"resume-parser-go/internal/logger"
	"resume-parser-go/internal/types"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, cfg *config.Config, resumeHandler *handler.ResumeHandler) {
	api := h.Group("/api/v1")

	// 请求ID中间件，便于日志关联
	api.Use(func(c context.Context, ctx *app.RequestContext) {
		requestID := uuid.NewString()
		ctx.Set("request_id", requestID)
		ctx.Header("X-Request-ID", requestID)
		ctx.Next(c)
	})

	// 上传接口用API Key保护
	uploadAuth := newAPIKeyMiddleware(cfg.Server.APIKeys)

	api.POST("/resume/upload", uploadAuth, func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		// 格式标签由调用方显式提供，不从文件名推断
		formatTag := ctx.PostForm("format")
		sourceChannel := ctx.PostForm("source_channel")
		if sourceChannel == "" {
			sourceChannel = "web_upload" // 默认值
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeUpload(c, file, fileHeader.Filename, formatTag, sourceChannel)
		if err != nil {
			if errors.Is(err, types.ErrUnsupportedFormat) {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		record, err := resumeHandler.GetParsedRecord(c, submissionUUID)
		if err != nil {
			if handler.IsNotFound(err) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "解析结果不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	api.GET("/resume/:uuid/status", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		submission, err := resumeHandler.GetSubmissionStatus(c, submissionUUID)
		if err != nil {
			if handler.IsNotFound(err) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "提交记录不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{
			"submission_uuid":   submission.SubmissionUUID,
			"processing_status": submission.ProcessingStatus,
			"original_filename": submission.OriginalFilename,
			"format":            submission.Format,
		})
	})

	api.GET("/resume/:uuid/download", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		record, err := resumeHandler.GetParsedRecord(c, submissionUUID)
		if err != nil {
			if handler.IsNotFound(err) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "解析结果不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		format := ctx.DefaultQuery("fmt", "json")
		var (
			data        []byte
			contentType string
		)
		switch format {
		case "json":
			data, err = export.ToJSON(record)
			contentType = "application/json"
		case "csv":
			data, err = export.ToCSV(record)
			contentType = "text/csv"
		case "xlsx":
			data, err = export.ToXLSX(record)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		default:
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": fmt.Sprintf("不支持的导出格式: %q", format)})
			return
		}
		if err != nil {
			logger.Error().Err(err).Str("fmt", format).Msg("导出解析结果失败")
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "导出失败"})
			return
		}

		ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="resume_%s.%s"`, submissionUUID, format))
		ctx.Data(consts.StatusOK, contentType, data)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}

// newAPIKeyMiddleware 构建keyauth中间件，校验X-API-Key请求头
// 未配置任何key时放行（本地开发）
func newAPIKeyMiddleware(keys []string) app.HandlerFunc {
	if len(keys) == 0 {
		return func(c context.Context, ctx *app.RequestContext) {
			ctx.Next(c)
		}
	}

	allowed := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		allowed[k] = struct{}{}
	}

	return keyauth.New(
		keyauth.WithKeyLookUp("header:X-API-Key", ""),
		keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
			_, ok := allowed[key]
			return ok, nil
		}),
	)
}
