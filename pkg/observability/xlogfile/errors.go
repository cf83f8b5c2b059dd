package xlogfile

import "errors"

// 配置错误，由 New 返回
var (
	// ErrEmptyDir 未指定日志目录
	ErrEmptyDir = errors.New("xlogfile: directory is required")

	// ErrInvalidMaxRecords 单文件记录上限小于 1
	ErrInvalidMaxRecords = errors.New("xlogfile: max records must be at least 1")

	// ErrInvalidMaxAge 单文件最长存活时间为负
	ErrInvalidMaxAge = errors.New("xlogfile: max age must not be negative")

	// ErrInvalidFileMode 文件权限包含非权限位
	ErrInvalidFileMode = errors.New("xlogfile: invalid file mode")

	// ErrNilSerializer 序列化函数为 nil 或与记录类型不匹配
	ErrNilSerializer = errors.New("xlogfile: serializer is required")

	// ErrNilNameProvider 文件名生成函数为 nil
	ErrNilNameProvider = errors.New("xlogfile: file name provider is required")
)

// 运行期错误
var (
	// ErrClosed 写入器已关闭。Write、Rotate、Close 在关闭后返回该错误。
	ErrClosed = errors.New("xlogfile: writer is closed")

	// ErrSkipRecord 由序列化函数返回，表示跳过该记录：不写入，不计数。
	ErrSkipRecord = errors.New("xlogfile: skip record")

	// ErrFileExists 新文件名与目录中已有文件冲突，仅出现在诊断日志中。
	ErrFileExists = errors.New("xlogfile: log file already exists")

	// ErrHookPanic 完成回调 panic，仅出现在诊断日志中。
	ErrHookPanic = errors.New("xlogfile: completion hook panicked")
)
