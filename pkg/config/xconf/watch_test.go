package xconf

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_Errors(t *testing.T) {
	_, err := NewWatcher(nil, nil)
	assert.ErrorIs(t, err, ErrNotReloadable)

	cfg, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)
	_, err = NewWatcher(cfg, nil)
	assert.ErrorIs(t, err, ErrNotReloadable)
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	path := writeConfig(t, "app.yaml", "log:\n  level: info\n")
	cfg, err := New(path)
	require.NoError(t, err)

	var (
		mu     sync.Mutex
		levels []string
	)
	w, err := NewWatcher(cfg, func(c Config, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		levels = append(levels, c.Client().String("log.level"))
		mu.Unlock()
	}, WithDebounce(20*time.Millisecond), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 其他文件的变更被忽略
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1"), 0o600))

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600)
		mu.Lock()
		defer mu.Unlock()
		return len(levels) > 0 && levels[len(levels)-1] == "debug"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "debug", cfg.Client().String("log.level"))
}

func TestWatcher_ReportsReloadError(t *testing.T) {
	path := writeConfig(t, "app.json", `{"a":1}`)
	cfg, err := New(path)
	require.NoError(t, err)

	errs := make(chan error, 16)
	w, err := NewWatcher(cfg, func(_ Config, err error) {
		if err != nil {
			errs <- err
		}
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrParseFailed)
	case <-time.After(3 * time.Second):
		t.Fatal("reload error not reported")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, cfg.Client().Int("a"))
}
