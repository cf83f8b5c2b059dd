package xrotate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 配置校验
// =============================================================================

func TestNewLumberjack_Validation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "diag.log")

	tests := []struct {
		name     string
		filename string
		opts     []Option
		wantErr  error
	}{
		{"空文件名", "", nil, ErrEmptyFilename},
		{"包含空字节", file + "\x00x", nil, ErrInvalidFilename},
		{"指向目录", dir + "/", nil, ErrInvalidFilename},
		{"MaxSize 为 0", file, []Option{WithMaxSize(0)}, ErrInvalidMaxSize},
		{"MaxSize 超上限", file, []Option{WithMaxSize(maxSizeMB + 1)}, ErrInvalidMaxSize},
		{"MaxBackups 为负", file, []Option{WithMaxBackups(-1)}, ErrInvalidMaxBackups},
		{"MaxAge 超上限", file, []Option{WithMaxAge(maxAgeDays + 1)}, ErrInvalidMaxAge},
		{"无清理策略", file, []Option{WithMaxBackups(0), WithMaxAge(0)}, ErrNoCleanupPolicy},
		{"非权限位", file, []Option{WithFileMode(os.ModeDir | 0o644)}, ErrInvalidFileMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewLumberjack(tt.filename, tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, r)
		})
	}
}

func TestNewLumberjack_NilOptionIgnored(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "diag.log"), nil, WithCompress(false))
	require.NoError(t, err)
	require.NoError(t, r.Close())
}

func TestNewLumberjack_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "diag.log")

	r, err := NewLumberjack(path)
	require.NoError(t, err)
	defer r.Close()

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// =============================================================================
// 写入与轮转
// =============================================================================

func TestLumberjack_WriteAndRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diag.log")

	r, err := NewLumberjack(path, WithCompress(false), WithMaxBackups(3))
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Write([]byte("first\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	require.NoError(t, r.Rotate())

	_, err = r.Write([]byte("second\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if e.Name() != "diag.log" && strings.HasPrefix(e.Name(), "diag-") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestLumberjack_Closed(t *testing.T) {
	r, err := NewLumberjack(filepath.Join(t.TempDir(), "diag.log"))
	require.NoError(t, err)

	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Close(), ErrClosed)

	_, err = r.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, r.Rotate(), ErrClosed)
}

func TestLumberjack_ConcurrentWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	r, err := NewLumberjack(path, WithCompress(false))
	require.NoError(t, err)
	defer r.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, werr := r.Write([]byte("line\n"))
				assert.NoError(t, werr)
			}
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 400, strings.Count(string(data), "line\n"))
}

// =============================================================================
// 文件权限
// =============================================================================

func TestLumberjack_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	r, err := NewLumberjack(path, WithFileMode(0o640), WithCompress(false))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Write([]byte("x\n"))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	require.NoError(t, r.Rotate())
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestLumberjack_FileModeErrorReported(t *testing.T) {
	chmodErr := errors.New("chmod denied")
	var got []error

	path := filepath.Join(t.TempDir(), "diag.log")
	rot, err := NewLumberjack(path,
		WithFileMode(0o644),
		WithOnError(func(err error) {
			got = append(got, err)
			panic("回调 panic 不应传播")
		}),
	)
	require.NoError(t, err)
	defer rot.Close()

	r := rot.(*lumberjackRotator)
	r.chmodFn = func(string, os.FileMode) error { return chmodErr }

	_, err = r.Write([]byte("x\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], chmodErr)

	// 未成功应用权限，下次写入重试
	_, err = r.Write([]byte("y\n"))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLumberjack_FileModeStatNotExist(t *testing.T) {
	rot, err := NewLumberjack(filepath.Join(t.TempDir(), "diag.log"), WithFileMode(0o644))
	require.NoError(t, err)
	defer rot.Close()

	r := rot.(*lumberjackRotator)
	r.statFn = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	assert.NoError(t, r.applyFileMode())
	assert.False(t, r.modeApplied.Load())
}
