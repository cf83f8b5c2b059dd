package xfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// statFn 可注入的 Stat 实现，仅用于测试。
// 测试注入点：非并发安全，修改此变量的用例不应使用 t.Parallel()。
var statFn = os.Stat

// Exists 报告 path 是否存在
//
// 文件不存在时返回 (false, nil)；其他 Stat 错误（权限拒绝、I/O 错误）
// 原样返回，由调用方决定如何处理"无法判断"的情况。
func Exists(path string) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	_, err := statFn(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Quarantine 将 path 重命名为 path+suffix 并返回新路径
//
// 用于标记处理失败的文件：保留在原目录中，既不会被静默丢弃，
// 也不会被后续流程当作正常文件重复处理。目标已存在时会被覆盖（os.Rename 语义）。
func Quarantine(path, suffix string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if suffix == "" {
		return "", fmt.Errorf("quarantine suffix is required: %w", ErrEmptyPath)
	}
	target := path + suffix
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}
