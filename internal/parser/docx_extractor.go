package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// DOCXTextExtractor 从DOCX文件提取文本
// DOCX是zip容器，正文在 word/document.xml 中，
// 按段落（w:p）提取文本并以换行符连接
type DOCXTextExtractor struct {
	logger *log.Logger
}

// DOCXOption DOCX提取器的配置选项
type DOCXOption func(*DOCXTextExtractor)

// WithDOCXLogger 配置自定义日志记录器
func WithDOCXLogger(logger *log.Logger) DOCXOption {
	return func(d *DOCXTextExtractor) {
		d.logger = logger
	}
}

// NewDOCXTextExtractor 初始化DOCX文本提取器
func NewDOCXTextExtractor(options ...DOCXOption) *DOCXTextExtractor {
	extractor := &DOCXTextExtractor{
		logger: log.New(os.Stderr, "[DOCX解析器] ", log.LstdFlags),
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor
}

// document.xml 中我们关心的节点：段落、文本run、制表符和断行
type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Texts []docxText `xml:"t"`
	Tabs  []struct{} `xml:"tab"`
	Brs   []struct{} `xml:"br"`
}

type docxText struct {
	Value string `xml:",chardata"`
}

// ExtractText 实现 processor.TextExtractor 接口，从DOCX字节流提取纯文本
func (d *DOCXTextExtractor) ExtractText(ctx context.Context, data []byte, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("打开DOCX容器失败 (URI %s): %w", uri, err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("打开word/document.xml失败: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("读取word/document.xml失败: %w", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", fmt.Errorf("DOCX文件缺少word/document.xml (URI %s)", uri)
	}

	var doc docxDocument
	if err := xml.Unmarshal(docXML, &doc); err != nil {
		return "", fmt.Errorf("解析word/document.xml失败: %w", err)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	for _, p := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			for range r.Tabs {
				sb.WriteByte('\t')
			}
			for _, t := range r.Texts {
				sb.WriteString(t.Value)
			}
		}
		paragraphs = append(paragraphs, sb.String())
	}

	text := strings.Join(paragraphs, "\n")
	d.logger.Printf("DOCX提取完成: %d 个段落, %d 个字符", len(paragraphs), len(text))
	return text, nil
}
