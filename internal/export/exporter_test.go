package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"resume-parser-go/internal/types"
)

func sampleRecord() *types.ResumeRecord {
	return &types.ResumeRecord{
		ContactInfo: types.ContactInfo{
			Email: "jane.doe@example.com",
			Phone: "+1 (555) 123-4567",
		},
		Skills: []string{"Python", "SQL"},
		Experience: []types.ExperienceEntry{
			{Role: "Senior Engineer", Company: "Acme Corp", Duration: "2018-2021"},
		},
		Education: []types.EducationEntry{
			{Degree: "Bachelor", Institution: "State University", Year: "2015"},
		},
	}
}

func TestToJSON_KeysMatchRecord(t *testing.T) {
	data, err := ToJSON(sampleRecord())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "contact_info")
	assert.Contains(t, decoded, "skills")
	assert.Contains(t, decoded, "experience")
	assert.Contains(t, decoded, "education")
}

func TestToJSON_EmptyRecordKeepsArrays(t *testing.T) {
	data, err := ToJSON(types.NewResumeRecord())
	require.NoError(t, err)

	// 列表字段序列化为 [] 而不是 null
	assert.Contains(t, string(data), `"skills": []`)
	assert.Contains(t, string(data), `"experience": []`)
	assert.Contains(t, string(data), `"education": []`)
}

func TestFlatten_DotNotationOrder(t *testing.T) {
	fields := Flatten(sampleRecord())

	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{
		"contact_info.email",
		"contact_info.phone",
		"skills.0",
		"skills.1",
		"experience.0.role",
		"experience.0.company",
		"experience.0.duration",
		"education.0.degree",
		"education.0.institution",
		"education.0.year",
	}, keys)
}

func TestToCSV_HeaderAndSingleRow(t *testing.T) {
	data, err := ToCSV(sampleRecord())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "contact_info.email", rows[0][0])
	assert.Equal(t, "jane.doe@example.com", rows[1][0])
	assert.Equal(t, "experience.0.role", rows[0][4])
	assert.Equal(t, "Senior Engineer", rows[1][4])
	assert.Len(t, rows[0], len(rows[1]))
}

func TestToXLSX_RoundTrip(t *testing.T) {
	data, err := ToXLSX(sampleRecord())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Resume", "A1")
	require.NoError(t, err)
	assert.Equal(t, "contact_info.email", header)

	value, err := f.GetCellValue("Resume", "A2")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", value)
}
