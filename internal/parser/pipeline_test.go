package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResumeText = `
Jane Doe
Contact: jane.doe@example.com, +1 (555) 123-4567

Skills: Python, SQL, Machine Learning, AWS

Senior Engineer at Acme Corp (2018-2021)
Staff Engineer at Globex (present)

Bachelor of Science at State University (2015)
`

func TestResumeParser_Parse_FullRecord(t *testing.T) {
	p := NewResumeParser(nil)

	record := p.Parse(sampleResumeText)

	assert.Equal(t, "jane.doe@example.com", record.ContactInfo.Email)
	assert.Equal(t, "+1 (555) 123-4567", record.ContactInfo.Phone)
	assert.ElementsMatch(t, []string{"Python", "SQL", "Machine Learning", "AWS"}, record.Skills)

	require.Len(t, record.Experience, 2)
	assert.Equal(t, "Acme Corp", record.Experience[0].Company)
	assert.Equal(t, "2018-2021", record.Experience[0].Duration)
	assert.Equal(t, "present", record.Experience[1].Duration)

	require.Len(t, record.Education, 1)
	assert.Equal(t, "Bachelor", record.Education[0].Degree)
	assert.Equal(t, "State University", record.Education[0].Institution)
	assert.Equal(t, "2015", record.Education[0].Year)
}

func TestResumeParser_Parse_NoFalsePositives(t *testing.T) {
	p := NewResumeParser(nil)

	// 不含邮箱/电话/学位/"at"模式的文本：缺失是数据而不是错误
	record := p.Parse("An enthusiastic generalist who enjoys solving problems.")

	assert.Empty(t, record.ContactInfo.Email)
	assert.Empty(t, record.ContactInfo.Phone)
	assert.NotNil(t, record.Skills)
	assert.Empty(t, record.Skills)
	assert.NotNil(t, record.Experience)
	assert.Empty(t, record.Experience)
	assert.NotNil(t, record.Education)
	assert.Empty(t, record.Education)
}

func TestResumeParser_Parse_Deterministic(t *testing.T) {
	p := NewResumeParser(nil)

	first := p.Parse(sampleResumeText)
	second := p.Parse(sampleResumeText)

	assert.Equal(t, first, second, "相同输入必须产生完全一致的记录")
}

func TestResumeParser_Parse_InjectedVocabulary(t *testing.T) {
	vocab := NewSkillVocabulary([]string{"golang", "kubernetes"})
	p := NewResumeParser(vocab)

	record := p.Parse("Built services in Golang on Kubernetes. Also knows Python.")

	// 只按注入的词表匹配，默认词表中的Python不在结果里
	assert.ElementsMatch(t, []string{"Golang", "Kubernetes"}, record.Skills)
	assert.Same(t, vocab, p.Vocabulary())
}

func TestResumeParser_Parse_MisSegmentationPreserved(t *testing.T) {
	p := NewResumeParser(nil)

	// 公司名自带括号年份区间时非贪婪段会提前截断，这是既定行为
	record := p.Parse("Janitor at Building (2001-2002) Management (2010-2012)")

	require.Len(t, record.Experience, 1)
	assert.Equal(t, "Building", record.Experience[0].Company)
	assert.Equal(t, "2001-2002", record.Experience[0].Duration)
}
