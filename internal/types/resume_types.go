package types

import (
	"errors"
	"fmt"
)

// DocumentFormat 表示上传简历的文档格式标签
// 由调用方显式提供，不再通过文件名后缀推断
type DocumentFormat string

const (
	// FormatPDF PDF文档
	FormatPDF DocumentFormat = "pdf"
	// FormatDOCX Word文档
	FormatDOCX DocumentFormat = "docx"
)

// ErrUnsupportedFormat 格式标签不是pdf或docx时返回
// 在任何解码或抽取发生之前校验，不产生部分结果
var ErrUnsupportedFormat = errors.New("不支持的文件格式")

// ParseDocumentFormat 校验并规范化格式标签
func ParseDocumentFormat(tag string) (DocumentFormat, error) {
	switch DocumentFormat(tag) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, tag)
	}
}

// ContactInfo 联系方式，字段没有匹配时为空字符串
// 只做句法层面的模式匹配，不做真实邮箱/电话校验
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExperienceEntry 一条工作经历
// Duration 是 "YYYY-YYYY" 区间或按原文大小写保留的 "present"
type ExperienceEntry struct {
	Role     string `json:"role"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// EducationEntry 一条教育经历，Degree 来自固定学位关键词集合
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ResumeRecord 抽取管道的唯一输出
// 列表字段始终是非nil的空切片而不是缺失，只有ContactInfo内部的标量可为空
type ResumeRecord struct {
	ContactInfo ContactInfo       `json:"contact_info"`
	Skills      []string          `json:"skills"`
	Experience  []ExperienceEntry `json:"experience"`
	Education   []EducationEntry  `json:"education"`
}

// NewResumeRecord 返回所有列表字段已初始化的空记录
func NewResumeRecord() *ResumeRecord {
	return &ResumeRecord{
		Skills:     []string{},
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
	}
}
