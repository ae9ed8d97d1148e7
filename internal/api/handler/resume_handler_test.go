package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-parser-go/internal/storage"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(storage.ErrSubmissionNotFound))
	assert.True(t, IsNotFound(storage.ErrParsedRecordNotFound))

	// 包装后仍可识别
	wrapped := fmt.Errorf("查询提交记录失败: %w", storage.ErrSubmissionNotFound)
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("其他错误")))
	assert.False(t, IsNotFound(nil))
}
