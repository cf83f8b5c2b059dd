package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
// Linux 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// JoinName 将文件名拼接到目录下，保证结果仍位于该目录内
//
// name 必须是单一路径段。同时将 '/' 和 '\' 视为分隔符，
// 避免 Windows 风格的名称在 Linux 上被当作普通字符写入后产生歧义。
//
// 设计决策: 不接受子目录形式的名称（如 "2024/01/app.log"）。文件名生成器
// 每次轮转都会被调用，允许子目录会让目录创建散落到热路径上。
func JoinName(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ValidateName 检查 name 是否为合法的单一路径段文件名
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("file name is required: %w", ErrEmptyPath)
	}
	if containsNullByte(name) {
		return fmt.Errorf("file name contains null byte: %w", ErrNullByte)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q contains a path separator: %w", name, ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%q is not a file name: %w", name, ErrInvalidName)
	}
	return nil
}
