package xlog

import (
	"log/slog"
	"time"
)

// =============================================================================
// 常用属性 Key 常量
//
// 日志文件写入链路中的标准字段名，保持各组件输出一致。
// =============================================================================

const (
	// KeyError 错误字段的标准 key
	KeyError = "error"

	// KeyStack 堆栈字段的标准 key
	KeyStack = "stack"

	// KeyDuration 耗时字段的标准 key
	KeyDuration = "duration"

	// KeyCount 计数字段的标准 key
	KeyCount = "count"

	// KeyComponent 组件名称字段的标准 key
	KeyComponent = "component"

	// KeyOperation 操作名称字段的标准 key
	KeyOperation = "operation"

	// KeyPath 文件路径字段的标准 key
	KeyPath = "path"

	// KeyRevision 日志文件修订号字段的标准 key
	KeyRevision = "revision"

	// KeySession 写入会话 ID 字段的标准 key
	KeySession = "session"
)

// Err 创建错误属性，err 为 nil 时值为空字符串
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性（人类可读格式，如 "1.5s"）
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Count 创建计数属性
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// Component 创建组件名称属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名称属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Path 创建文件路径属性
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Revision 创建修订号属性
func Revision(rev int) slog.Attr {
	return slog.Int(KeyRevision, rev)
}

// Session 创建会话 ID 属性
func Session(id string) slog.Attr {
	return slog.String(KeySession, id)
}
