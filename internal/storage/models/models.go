package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResumeSubmission 一次简历上传的提交记录
type ResumeSubmission struct {
	SubmissionUUID      string    `gorm:"type:char(36);primaryKey"`
	SubmissionTimestamp time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rs_submission_timestamp"`
	SourceChannel       string    `gorm:"type:varchar(100)"`
	OriginalFilename    string    `gorm:"type:varchar(255)"`
	Format              string    `gorm:"type:varchar(10);not null"` // pdf | docx
	OriginalFilePathOSS string    `gorm:"type:varchar(1024)"`
	RawFileMD5          string    `gorm:"type:char(32);index:idx_rs_raw_file_md5"`
	ProcessingStatus    string    `gorm:"type:varchar(50);default:'PENDING_PARSING';index:idx_rs_processing_status"`
	ParseError          string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt           time.Time `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

// TableName 指定表名
func (ResumeSubmission) TableName() string {
	return "resume_submissions"
}

// ParsedResume 抽取管道输出的结构化记录
// 列表字段存JSON列，空集合存 "[]" 而不是NULL
type ParsedResume struct {
	SubmissionUUID   string         `gorm:"type:char(36);primaryKey"`
	Email            string         `gorm:"type:varchar(255);index:idx_pr_email"`
	Phone            string         `gorm:"type:varchar(50)"`
	SkillsJSON       datatypes.JSON `gorm:"type:json"`
	ExperienceJSON   datatypes.JSON `gorm:"type:json"`
	EducationJSON    datatypes.JSON `gorm:"type:json"`
	ExtractorVersion string         `gorm:"type:varchar(20)"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`

	Submission ResumeSubmission `gorm:"foreignKey:SubmissionUUID;references:SubmissionUUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName 指定表名
func (ParsedResume) TableName() string {
	return "parsed_resumes"
}
