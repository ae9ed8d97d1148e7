package processor

import "context"

// TextExtractor 从文档字节流提取纯文本
// pdf和docx各有一个实现，按调用方提供的格式标签分发
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, uri string) (string, error)
}
