package xfile

import "errors"

var (
	// ErrEmptyPath 表示必需的路径参数为空。
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidName 表示文件名不是单一路径段（含分隔符、"." 或 ".."）。
	ErrInvalidName = errors.New("xfile: invalid file name")

	// ErrNullByte 表示路径中包含空字节（\x00），Linux 内核会在空字节处截断路径，
	// 导致 Go 代码与操作系统看到的路径不一致。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 表示目录权限无效（如缺少所有者执行位，目录无法遍历）。
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")

	// ErrNotDir 表示路径已存在但不是目录。
	ErrNotDir = errors.New("xfile: not a directory")
)
