package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/types"
)

func TestExtractContactInfo_FirstMatchOnly(t *testing.T) {
	text := "Contact: jane.doe@example.com, +1 (555) 123-4567 | backup: other@example.org, 999-888-7777"

	info := ExtractContactInfo(text)

	assert.Equal(t, "jane.doe@example.com", info.Email)
	assert.Equal(t, "+1 (555) 123-4567", info.Phone)
}

func TestExtractContactInfo_Absent(t *testing.T) {
	info := ExtractContactInfo("no contact details in this text")

	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
}

func TestExtractContactInfo_PhoneVariants(t *testing.T) {
	cases := map[string]string{
		"call 555-123-4567 now":   "555-123-4567",
		"tel (555) 123 4567":      "(555) 123 4567",
		"mobile +86 555 123 4567": "+86 555 123 4567",
		"raw 5551234567 ok":       "5551234567",
	}
	for text, want := range cases {
		info := ExtractContactInfo(text)
		assert.Equal(t, want, info.Phone, "输入: %q", text)
	}
}

func TestExtractExperience_SingleEntry(t *testing.T) {
	entries := ExtractExperience("Senior Engineer at Acme Corp (2018-2021)")

	require.Len(t, entries, 1)
	assert.Equal(t, types.ExperienceEntry{
		Role:     "Senior Engineer",
		Company:  "Acme Corp",
		Duration: "2018-2021",
	}, entries[0])
}

func TestExtractExperience_MultipleInOrder(t *testing.T) {
	text := "Developer at Foo Ltd (2015-2018). Senior Developer at Bar Inc (2018 - 2021). Lead at Baz (present)"

	entries := ExtractExperience(text)

	require.Len(t, entries, 3)
	assert.Equal(t, "Foo Ltd", entries[0].Company)
	assert.Equal(t, "2018 - 2021", entries[1].Duration)
	// "present" 按原文匹配保留，大小写不敏感地接受
	assert.Equal(t, "present", entries[2].Duration)
}

func TestExtractExperience_PresentCaseInsensitive(t *testing.T) {
	entries := ExtractExperience("Architect at Initech (Present)")

	require.Len(t, entries, 1)
	assert.Equal(t, "Present", entries[0].Duration)
}

func TestExtractExperience_NoMatches(t *testing.T) {
	entries := ExtractExperience("worked on many interesting projects over the years")

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExtractEducation_SingleEntry(t *testing.T) {
	entries := ExtractEducation("Bachelor of Science at State University (2015)")

	require.Len(t, entries, 1)
	assert.Equal(t, "Bachelor", entries[0].Degree)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "2015", entries[0].Year)
}

func TestExtractEducation_DegreeKeywordVariants(t *testing.T) {
	cases := map[string]string{
		"B.Tech in CS at IIT Delhi (2012)":     "B.Tech",
		"BTech in CS at IIT Delhi (2012)":      "BTech",
		"M.Sc Physics at ETH Zurich (2019)":    "M.Sc",
		"PhD in Biology at MIT (2020)":         "PhD",
		"master of arts at Oxford (2018)":      "master",
		"MSc Statistics at LSE (2016)":         "MSc",
		"B.Sc Mathematics at Cambridge (2014)": "B.Sc",
	}
	for text, wantDegree := range cases {
		entries := ExtractEducation(text)
		require.Len(t, entries, 1, "输入: %q", text)
		assert.Equal(t, wantDegree, entries[0].Degree, "输入: %q", text)
	}
}

func TestExtractEducation_NoMatches(t *testing.T) {
	entries := ExtractEducation("self-taught, no formal schooling listed")

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExperiencePattern_PathologicalInputBounded(t *testing.T) {
	// 长文本不包含任何锚点时，扫描必须在合理时间内完成
	long := make([]byte, 0, 200*1024)
	for len(long) < 200*1024 {
		long = append(long, "lorem ipsum dolor sit amet "...)
	}

	start := time.Now()
	entries := ExtractExperience(string(long))
	elapsed := time.Since(start)

	assert.Empty(t, entries)
	assert.Less(t, elapsed, 5*time.Second, "病态输入下的匹配耗时超出预期")
}
