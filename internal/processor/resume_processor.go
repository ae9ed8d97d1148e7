package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-parser-go/internal/constants"
	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/storage"
	"resume-parser-go/internal/storage/models"
	"resume-parser-go/internal/tracing"
	"resume-parser-go/internal/types"
)

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	// 核心组件
	PDFExtractor  TextExtractor        // PDF文本提取
	DOCXExtractor TextExtractor        // DOCX文本提取
	Parser        *parser.ResumeParser // 字段抽取管道

	// 存储层依赖
	Storage *storage.Storage
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	ParseTimeout time.Duration // 单次解码+抽取的超时
	Debug        bool          // 是否开启调试模式
	Logger       *log.Logger   // 日志记录器
}

// ResumeProcessor 简历处理器
// 负责一次提交的完整处理：下载原始文件 → 按格式解码 → 抽取 → 持久化
type ResumeProcessor struct {
	pdfExtractor  TextExtractor
	docxExtractor TextExtractor
	parser        *parser.ResumeParser
	storage       *storage.Storage

	settings Settings
	tracer   trace.Tracer
}

// NewResumeProcessor 用明确分离的组件和设置创建处理器
func NewResumeProcessor(comp *Components, set *Settings, opts ...SettingOpt) (*ResumeProcessor, error) {
	if comp == nil || comp.Parser == nil {
		return nil, fmt.Errorf("组件配置不完整: 缺少抽取管道")
	}
	if set == nil {
		set = &Settings{}
	}
	for _, opt := range opts {
		opt(set)
	}
	if set.ParseTimeout <= 0 {
		set.ParseTimeout = 30 * time.Second
	}
	if set.Logger == nil {
		set.Logger = log.New(io.Discard, "", 0)
	}

	return &ResumeProcessor{
		pdfExtractor:  comp.PDFExtractor,
		docxExtractor: comp.DOCXExtractor,
		parser:        comp.Parser,
		storage:       comp.Storage,
		settings:      *set,
		tracer:        otel.Tracer("resume-parser-go/processor"),
	}, nil
}

// extractorFor 按格式标签选择解码器
// 不认识的标签返回 types.ErrUnsupportedFormat，不触发任何解码
func (p *ResumeProcessor) extractorFor(format types.DocumentFormat) (TextExtractor, error) {
	switch format {
	case types.FormatPDF:
		if p.pdfExtractor == nil {
			return nil, fmt.Errorf("PDF解码器未配置")
		}
		return p.pdfExtractor, nil
	case types.FormatDOCX:
		if p.docxExtractor == nil {
			return nil, fmt.Errorf("DOCX解码器未配置")
		}
		return p.docxExtractor, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}
}

// DecodeAndParse 对一份文档字节流执行解码和字段抽取
// 解码失败原样向上传播，不返回部分结果；抽取阶段永不失败
func (p *ResumeProcessor) DecodeAndParse(ctx context.Context, data []byte, format types.DocumentFormat, uri string) (*types.ResumeRecord, error) {
	ctx, span := p.tracer.Start(ctx, "processor.DecodeAndParse",
		trace.WithAttributes(
			attribute.String("resume.format", string(format)),
			attribute.Int("resume.size_bytes", len(data)),
		))
	defer span.End()

	extractor, err := p.extractorFor(format)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.settings.ParseTimeout)
	defer cancel()

	rawText, err := extractor.ExtractText(ctx, data, uri)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDecoder)
		return nil, fmt.Errorf("解码%s文档失败: %w", format, err)
	}

	record := p.parser.Parse(rawText)
	span.SetAttributes(
		attribute.Int("resume.skills", len(record.Skills)),
		attribute.Int("resume.experience_entries", len(record.Experience)),
		attribute.Int("resume.education_entries", len(record.Education)),
	)
	return record, nil
}

// ProcessSubmission 处理一条上传消息：下载 → 解码+抽取 → 入库 → 缓存
// 任一环节失败时更新提交状态并回滚MD5去重记录，便于用户修正后重传
func (p *ResumeProcessor) ProcessSubmission(ctx context.Context, msg storage.ResumeUploadMessage) error {
	ctx, span := p.tracer.Start(ctx, "processor.ProcessSubmission",
		trace.WithAttributes(attribute.String("submission.uuid", msg.SubmissionUUID)))
	defer span.End()

	err := p.processSubmission(ctx, msg)
	if err == nil {
		return nil
	}

	// 失败路径：记录状态，回滚去重记录
	if dbErr := p.storage.MySQL.MarkParseFailed(ctx, msg.SubmissionUUID, err.Error()); dbErr != nil {
		tracing.RecordError(span, dbErr, tracing.ErrorTypeDB)
		p.settings.Logger.Printf("标记解析失败状态出错: %v", dbErr)
	}
	if msg.RawFileMD5 != "" {
		if redisErr := p.storage.Redis.RemoveRawFileMD5(ctx, msg.RawFileMD5); redisErr != nil {
			tracing.RecordError(span, redisErr, tracing.ErrorTypeRedis)
			p.settings.Logger.Printf("回滚文件MD5记录出错: %v", redisErr)
		}
	}
	return err
}

func (p *ResumeProcessor) processSubmission(ctx context.Context, msg storage.ResumeUploadMessage) error {
	format, err := types.ParseDocumentFormat(msg.Format)
	if err != nil {
		return err
	}

	data, err := p.storage.MinIO.GetResumeFile(ctx, msg.OriginalFilePathOSS)
	if err != nil {
		return NewDownloadError(msg.SubmissionUUID, err.Error())
	}

	record, err := p.DecodeAndParse(ctx, data, format, msg.OriginalFilename)
	if err != nil {
		return NewDecodeError(msg.SubmissionUUID, err.Error())
	}

	row, err := buildParsedResumeRow(msg.SubmissionUUID, record)
	if err != nil {
		return NewStoreError(msg.SubmissionUUID, err.Error())
	}
	if err := p.storage.MySQL.SaveParsedResume(ctx, row); err != nil {
		return NewStoreError(msg.SubmissionUUID, err.Error())
	}

	if err := p.storage.MySQL.UpdateProcessingStatus(ctx, msg.SubmissionUUID, constants.StatusParsed); err != nil {
		return NewUpdateError(msg.SubmissionUUID, err.Error())
	}

	// 缓存失败不影响主流程，下一次读取会回源MySQL
	if recordJSON, err := json.Marshal(record); err == nil {
		if cacheErr := p.storage.Redis.CacheParsedRecord(ctx, msg.SubmissionUUID, string(recordJSON)); cacheErr != nil {
			p.settings.Logger.Printf("缓存解析结果出错: %v", cacheErr)
		}
	}

	p.settings.Logger.Printf("提交处理完成: %s (技能%d项, 经历%d条, 教育%d条)",
		msg.SubmissionUUID, len(record.Skills), len(record.Experience), len(record.Education))
	return nil
}

// buildParsedResumeRow 把抽取记录转换为数据库行，列表字段序列化为JSON列
func buildParsedResumeRow(submissionUUID string, record *types.ResumeRecord) (*models.ParsedResume, error) {
	skillsJSON, err := json.Marshal(record.Skills)
	if err != nil {
		return nil, fmt.Errorf("序列化技能列表失败: %w", err)
	}
	experienceJSON, err := json.Marshal(record.Experience)
	if err != nil {
		return nil, fmt.Errorf("序列化工作经历失败: %w", err)
	}
	educationJSON, err := json.Marshal(record.Education)
	if err != nil {
		return nil, fmt.Errorf("序列化教育经历失败: %w", err)
	}

	return &models.ParsedResume{
		SubmissionUUID:   submissionUUID,
		Email:            record.ContactInfo.Email,
		Phone:            record.ContactInfo.Phone,
		SkillsJSON:       skillsJSON,
		ExperienceJSON:   experienceJSON,
		EducationJSON:    educationJSON,
		ExtractorVersion: constants.ExtractorVersion,
	}, nil
}

// RecordFromRow 把数据库行还原成抽取记录，供查询接口使用
func RecordFromRow(row *models.ParsedResume) (*types.ResumeRecord, error) {
	record := types.NewResumeRecord()
	record.ContactInfo = types.ContactInfo{
		Email: row.Email,
		Phone: row.Phone,
	}
	if len(row.SkillsJSON) > 0 {
		if err := json.Unmarshal(row.SkillsJSON, &record.Skills); err != nil {
			return nil, fmt.Errorf("反序列化技能列表失败: %w", err)
		}
	}
	if len(row.ExperienceJSON) > 0 {
		if err := json.Unmarshal(row.ExperienceJSON, &record.Experience); err != nil {
			return nil, fmt.Errorf("反序列化工作经历失败: %w", err)
		}
	}
	if len(row.EducationJSON) > 0 {
		if err := json.Unmarshal(row.EducationJSON, &record.Education); err != nil {
			return nil, fmt.Errorf("反序列化教育经历失败: %w", err)
		}
	}
	return record, nil
}
