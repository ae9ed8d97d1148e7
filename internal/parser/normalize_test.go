package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_WhitespaceCollapse(t *testing.T) {
	// 任意空白段折叠为单个空格并去除首尾空白
	assert.Equal(t, "a b c", Normalize("a\n\n  b\tc "))
	assert.Equal(t, "", Normalize("   \t\n  "))
	assert.Equal(t, "hello world", Normalize("hello world"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"a\n\n  b\tc ",
		"  张三  简历\t\n联系方式  ",
		"",
		"already normalized",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize应当幂等: %q", s)
	}
}
