package constants

import "time"

const (
	// 当前抽取器版本，随模式或词表语义变化而递增
	ExtractorVersion = "1.0"

	// Redis键
	RawFileMD5SetKey   = "resumes:file_md5s"   // 原始文件MD5集合，用于上传去重
	RecordCachePrefix  = "resumes:record:"     // 解析结果缓存前缀
	RecordCacheTTL     = 24 * time.Hour        // 解析结果缓存时长
	MD5RecordExpireDur = 30 * 24 * time.Hour   // MD5去重记录过期时间

	// 提交处理状态
	StatusPendingParsing = "PENDING_PARSING"
	StatusParsed         = "PARSED"
	StatusParseFailed    = "PARSE_FAILED"
	StatusDuplicateFile  = "DUPLICATE_FILE_SKIPPED"
)
