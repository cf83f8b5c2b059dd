package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 默认防抖时间
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 配置文件变更回调，err 非 nil 表示重载或监视失败
type WatchCallback func(cfg Config, err error)

// WatchOption 监视器选项
type WatchOption func(*Watcher)

// WithDebounce 设置防抖时间，窗口内的多次变更只触发一次重载，非正值忽略
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher 配置文件监视器
type Watcher struct {
	cfg      Config
	fs       *fsnotify.Watcher
	filename string
	callback WatchCallback
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	// pending 跟踪已触发、正在执行的重载回调
	pending sync.WaitGroup
}

// NewWatcher 为从文件创建的配置创建监视器
//
// 监视的是配置文件所在目录而不是文件本身：编辑器保存时可能先删除再创建，
// 直接监视文件会丢失后续事件。
func NewWatcher(cfg Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if cfg == nil || cfg.Path() == "" {
		return nil, ErrNotReloadable
	}

	w := &Watcher{
		cfg:      cfg,
		filename: filepath.Base(cfg.Path()),
		callback: callback,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.Path())
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch directory %s: %w", dir, err), fsw.Close())
	}
	w.fs = fsw
	return w, nil
}

// Run 处理文件事件直到 ctx 取消
//
// 返回前停止防抖定时器并等待正在执行的回调，返回后不会再有回调。
// ctx 取消属于正常退出，返回 nil。
func (w *Watcher) Run(ctx context.Context) error {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.filename {
		return
	}
	// Write: 直接修改；Create/Rename: 原子替换
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.pending.Done()
		w.notify(w.cfg.Reload())
	})
}

func (w *Watcher) notify(err error) {
	if w.callback != nil {
		w.callback(w.cfg, err)
	}
}

func (w *Watcher) shutdown() {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.timer = nil
	w.mu.Unlock()

	w.pending.Wait()
	_ = w.fs.Close()
}
