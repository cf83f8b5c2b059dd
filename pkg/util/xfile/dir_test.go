package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// EnsureDirPath 单元测试
// =============================================================================

func TestEnsureDirPath(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		dir  string
	}{
		{"创建单层目录", filepath.Join(tmpDir, "spool")},
		{"创建多层目录", filepath.Join(tmpDir, "a", "b", "c")},
		{"目录已存在", tmpDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, EnsureDirPath(tt.dir))

			info, err := os.Stat(tt.dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestEnsureDirPathErrors(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	tests := []struct {
		name    string
		dir     string
		perm    os.FileMode
		wantErr error
	}{
		{"空路径", "", DefaultDirPerm, ErrEmptyPath},
		{"空字节", "spool\x00evil", DefaultDirPerm, ErrNullByte},
		{"缺少执行位", filepath.Join(tmpDir, "noexec"), 0600, ErrInvalidPerm},
		{"路径是普通文件", file, DefaultDirPerm, ErrNotDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureDirPathWithPerm(tt.dir, tt.perm)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEnsureDirPathPermission(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "perm")
	require.NoError(t, EnsureDirPathWithPerm(dir, 0700))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}
