package parser

import (
	"regexp"

	"resume-parser-go/internal/types"
)

// 固定抽取模式。各自对全文做从左到右的非重叠扫描，
// 非贪婪段取满足两侧锚点的最短串，角色/公司名本身含 " at " 或
// 括号年份时会错误切分，这是既定行为，不做修正
var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}\s?)?(\(\d{3}\)|\d{3})[\s-]?\d{3}[\s-]?\d{4}`)

	// "<角色> at <公司> (<起止年份|present>)"
	experiencePattern = regexp.MustCompile(`(?i)(.+?)\s+at\s+(.+?)\s*\((\d{4}\s*-\s*\d{4}|present)\)`)

	// "<学位关键词> ... at <院校> (<四位年份>)"
	educationPattern = regexp.MustCompile(`(?i)(Bachelor|Master|PhD|B\.?Tech|M\.?Tech|B\.?Sc|M\.?Sc).*?\s+at\s+(.+?)\s*\((\d{4})\)`)
)

// ExtractContactInfo 抽取邮箱和电话
// 各取全文第一个命中，后续命中按设计忽略（对应简历首部的联系行）
func ExtractContactInfo(text string) types.ContactInfo {
	info := types.ContactInfo{}
	if m := emailPattern.FindString(text); m != "" {
		info.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		info.Phone = m
	}
	return info
}

// ExtractExperience 抽取全部工作经历，按出现顺序返回
func ExtractExperience(text string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		entries = append(entries, types.ExperienceEntry{
			Role:     m[1],
			Company:  m[2],
			Duration: m[3],
		})
	}
	return entries
}

// ExtractEducation 抽取全部教育经历，按出现顺序返回
func ExtractEducation(text string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	for _, m := range educationPattern.FindAllStringSubmatch(text, -1) {
		entries = append(entries, types.EducationEntry{
			Degree:      m[1],
			Institution: m[2],
			Year:        m[3],
		})
	}
	return entries
}
