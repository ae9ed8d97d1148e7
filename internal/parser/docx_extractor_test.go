package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDOCX 构造一个最小的DOCX容器，每个元素一个段落
func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		if err := xmlEscape(&body, p); err != nil {
			t.Fatalf("转义段落失败: %v", err)
		}
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func xmlEscape(buf *bytes.Buffer, s string) error {
	r := bytes.NewBufferString("")
	for _, c := range s {
		switch c {
		case '<':
			r.WriteString("&lt;")
		case '>':
			r.WriteString("&gt;")
		case '&':
			r.WriteString("&amp;")
		default:
			r.WriteRune(c)
		}
	}
	_, err := buf.Write(r.Bytes())
	return err
}

func TestDOCXTextExtractor_ParagraphsJoinedByNewline(t *testing.T) {
	data := buildDOCX(t, []string{
		"Jane Doe",
		"Senior Engineer at Acme Corp (2018-2021)",
		"Skills: Python, SQL",
	})

	extractor := NewDOCXTextExtractor()
	text, err := extractor.ExtractText(context.Background(), data, "test.docx")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer at Acme Corp (2018-2021)\nSkills: Python, SQL", text)
}

func TestDOCXTextExtractor_CorruptContainer(t *testing.T) {
	extractor := NewDOCXTextExtractor()

	_, err := extractor.ExtractText(context.Background(), []byte("这不是一个zip文件"), "broken.docx")
	assert.Error(t, err)
}

func TestDOCXTextExtractor_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	extractor := NewDOCXTextExtractor()
	_, err = extractor.ExtractText(context.Background(), buf.Bytes(), "empty.docx")
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestDOCXTextExtractor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	extractor := NewDOCXTextExtractor()
	_, err := extractor.ExtractText(ctx, buildDOCX(t, []string{"x"}), "x.docx")
	assert.ErrorIs(t, err, context.Canceled)
}
