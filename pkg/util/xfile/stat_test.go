package xfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "present.log")
	require.NoError(t, os.WriteFile(present, nil, 0600))

	ok, err := Exists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(tmpDir, "missing.log"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Exists("")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

// TestExistsStatError 非 NotExist 的 Stat 错误需要原样上报
func TestExistsStatError(t *testing.T) {
	errIO := errors.New("input/output error")
	orig := statFn
	statFn = func(string) (fs.FileInfo, error) { return nil, errIO }
	t.Cleanup(func() { statFn = orig })

	ok, err := Exists("/any")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errIO)
}

func TestQuarantine(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "broken.log")
	require.NoError(t, os.WriteFile(path, []byte("data\n"), 0600))

	target, err := Quarantine(path, ".error")
	require.NoError(t, err)
	assert.Equal(t, path+".error", target)

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "原文件应已被移走")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "data\n", string(data))
}

func TestQuarantineErrors(t *testing.T) {
	_, err := Quarantine("", ".error")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Quarantine("/tmp/x.log", "")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Quarantine(filepath.Join(t.TempDir(), "missing.log"), ".error")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
