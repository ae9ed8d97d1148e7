package parser

import (
	"regexp"
	"strings"
)

// 匹配任意空白字符的连续段（空格、制表符、换行）
var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize 把原始提取文本压缩成单行规范文本
// 任意空白段折叠为单个空格并去除首尾空白，纯函数且幂等
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
