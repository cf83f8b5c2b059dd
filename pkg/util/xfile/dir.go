package xfile

import (
	"fmt"
	"os"
)

// DefaultDirPerm 默认目录权限
//
// 0750 权限说明：
//   - 所有者：读写执行 (7)
//   - 组：读执行 (5)
//   - 其他：无权限 (0)
//
// 符合 gosec G301 安全建议
const DefaultDirPerm = 0750

// EnsureDirPath 确保目录本身存在（包括所有父目录）
//
// 使用默认权限 0750 创建目录。目录已存在时不会报错，也不会修改其权限。
// 路径存在但不是目录时返回 [ErrNotDir]。
func EnsureDirPath(dir string) error {
	return EnsureDirPathWithPerm(dir, DefaultDirPerm)
}

// EnsureDirPathWithPerm 确保目录存在，使用指定权限创建
//
// perm 必须包含所有者执行位（0100），否则目录无法遍历。
//
// 安全注意：底层使用 os.MkdirAll，会跟随符号链接。
func EnsureDirPathWithPerm(dir string, perm os.FileMode) error {
	if dir == "" {
		return fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(dir) {
		return fmt.Errorf("directory contains null byte: %w", ErrNullByte)
	}
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		// MkdirAll 对"已存在的普通文件"返回 ENOTDIR 类错误，统一映射为 ErrNotDir
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrNotDir)
		}
		return err
	}
	return nil
}
