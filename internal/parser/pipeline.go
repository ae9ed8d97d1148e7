package parser

import "resume-parser-go/internal/types"

// ResumeParser 简历字段抽取管道
// 规范化 → {技能匹配, 模式抽取} → 汇总，除只读词表外无任何状态，
// 相同输入永远产生相同输出，可被任意多个请求并发使用
type ResumeParser struct {
	vocab *SkillVocabulary
}

// NewResumeParser 用注入的技能词表构建抽取管道
// vocab为nil时回退到内置默认词表
func NewResumeParser(vocab *SkillVocabulary) *ResumeParser {
	if vocab == nil {
		vocab = DefaultSkillVocabulary()
	}
	return &ResumeParser{vocab: vocab}
}

// Vocabulary 返回管道持有的只读词表
func (p *ResumeParser) Vocabulary() *SkillVocabulary {
	return p.vocab
}

// Parse 对已解码的原始文本执行完整抽取，返回结构化简历记录
// 模式不命中是数据而不是错误：联系方式字段为空、列表为空切片，永不失败
func (p *ResumeParser) Parse(rawText string) *types.ResumeRecord {
	cleaned := Normalize(rawText)
	return assemble(
		ExtractContactInfo(cleaned),
		ExtractSkills(cleaned, p.vocab),
		ExtractExperience(cleaned),
		ExtractEducation(cleaned),
	)
}

// assemble 纯聚合，不做任何校验或跨字段一致性检查
func assemble(contact types.ContactInfo, skills []string, experience []types.ExperienceEntry, education []types.EducationEntry) *types.ResumeRecord {
	return &types.ResumeRecord{
		ContactInfo: contact,
		Skills:      skills,
		Experience:  experience,
		Education:   education,
	}
}
