package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parser-go/internal/parser"
	"resume-parser-go/internal/types"
)

// fakeExtractor 返回固定文本或固定错误的解码器
type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	return f.text, f.err
}

func newTestProcessor(t *testing.T, pdf, docx TextExtractor) *ResumeProcessor {
	t.Helper()
	p, err := NewResumeProcessor(&Components{
		PDFExtractor:  pdf,
		DOCXExtractor: docx,
		Parser:        parser.NewResumeParser(nil),
	}, &Settings{})
	require.NoError(t, err)
	return p
}

func TestDecodeAndParse_PDFDispatch(t *testing.T) {
	pdf := &fakeExtractor{text: "Jane Doe jane.doe@example.com Senior Engineer at Acme Corp (2018-2021)"}
	p := newTestProcessor(t, pdf, &fakeExtractor{})

	record, err := p.DecodeAndParse(context.Background(), []byte("%PDF"), types.FormatPDF, "a.pdf")

	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", record.ContactInfo.Email)
	require.Len(t, record.Experience, 1)
	assert.Equal(t, "Acme Corp", record.Experience[0].Company)
}

func TestDecodeAndParse_UnsupportedFormat(t *testing.T) {
	p := newTestProcessor(t, &fakeExtractor{}, &fakeExtractor{})

	record, err := p.DecodeAndParse(context.Background(), []byte("x"), types.DocumentFormat("rtf"), "a.rtf")

	// 不产生部分结果
	assert.Nil(t, record)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestDecodeAndParse_DecoderFailurePropagates(t *testing.T) {
	decodeErr := errors.New("文件已损坏")
	p := newTestProcessor(t, &fakeExtractor{err: decodeErr}, &fakeExtractor{})

	record, err := p.DecodeAndParse(context.Background(), []byte("x"), types.FormatPDF, "a.pdf")

	assert.Nil(t, record)
	assert.ErrorIs(t, err, decodeErr)
}

func TestParseDocumentFormat(t *testing.T) {
	f, err := types.ParseDocumentFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, types.FormatPDF, f)

	f, err = types.ParseDocumentFormat("docx")
	require.NoError(t, err)
	assert.Equal(t, types.FormatDOCX, f)

	_, err = types.ParseDocumentFormat("doc")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestBuildParsedResumeRow_RoundTrip(t *testing.T) {
	record := &types.ResumeRecord{
		ContactInfo: types.ContactInfo{Email: "a@b.c", Phone: "555-123-4567"},
		Skills:      []string{"Python"},
		Experience: []types.ExperienceEntry{
			{Role: "Dev", Company: "Acme", Duration: "present"},
		},
		Education: []types.EducationEntry{
			{Degree: "Master", Institution: "MIT", Year: "2019"},
		},
	}

	row, err := buildParsedResumeRow("uuid-1", record)
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", row.SubmissionUUID)
	assert.Equal(t, "a@b.c", row.Email)

	restored, err := RecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, record, restored)
}

func TestBuildParsedResumeRow_EmptyListsAsJSONArrays(t *testing.T) {
	row, err := buildParsedResumeRow("uuid-2", types.NewResumeRecord())
	require.NoError(t, err)

	// 空集合存 "[]" 而不是NULL
	assert.Equal(t, "[]", string(row.SkillsJSON))
	assert.Equal(t, "[]", string(row.ExperienceJSON))
	assert.Equal(t, "[]", string(row.EducationJSON))
}

func TestResumeProcessorErrors(t *testing.T) {
	err := NewDecodeError("uuid-3", "坏文件")
	assert.ErrorIs(t, err, ErrDecodeTextFailed)
	assert.Contains(t, err.Error(), "uuid-3")

	var procErr *ResumeProcessError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "decode", procErr.Op)
}
