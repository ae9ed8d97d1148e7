package processor

import (
	"log"
	"time"
)

// SettingOpt 处理器设置选项
type SettingOpt func(*Settings)

// WithDebug 开启调试模式
func WithDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithProcessorLogger 配置自定义日志记录器
func WithProcessorLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// WithParseTimeout 配置单次解码+抽取的超时
func WithParseTimeout(d time.Duration) SettingOpt {
	return func(s *Settings) {
		if d > 0 {
			s.ParseTimeout = d
		}
	}
}
