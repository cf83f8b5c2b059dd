package xlog

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// =============================================================================
// 全局 Logger
//
// 定位：组件未显式注入 Logger 时的兜底输出。
// 在服务端推荐依赖注入（显式持有 Logger）。
// =============================================================================

// globalLogger 全局 Logger 实例（并发安全）
var globalLogger atomic.Pointer[LoggerWithLevel]

// globalMu 保护 globalOnce 及其 Do 执行（也用于 ResetDefault）
var globalMu sync.Mutex

// globalOnce 确保默认 Logger 只初始化一次
var globalOnce sync.Once

// defaultLogger 创建默认 Logger（惰性初始化）
//
// 设计决策: 在持锁状态下执行 once.Do，确保 ResetDefault（重置 globalOnce）
// 与 once.Do 之间不会发生并发竞争。初始化后 Default() 走 atomic.Load 快速路径。
func defaultLogger() LoggerWithLevel {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalOnce.Do(func() {
		logger, _, err := New().Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "xlog: failed to build default logger: %v, using fallback\n", err)
			var fallback LoggerWithLevel = &xlogger{
				handler:        slog.NewTextHandler(os.Stderr, nil),
				levelVar:       new(slog.LevelVar),
				errorCount:     new(atomic.Uint64),
				inErrorHandler: new(atomic.Bool),
			}
			globalLogger.Store(&fallback)
			return
		}
		globalLogger.Store(&logger)
	})
	return *globalLogger.Load()
}

// Default 返回全局默认 Logger
//
// 懒初始化：首次调用时创建默认 Logger（stderr，Info 级别，text 格式）。
func Default() LoggerWithLevel {
	if l := globalLogger.Load(); l != nil {
		return *l
	}
	return defaultLogger()
}

// SetDefault 替换全局默认 Logger
//
// 传入 nil 会被忽略。要重置为默认 logger，请使用 ResetDefault()。
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	globalLogger.Store(&l)
}

// ResetDefault 重置全局 Logger 为未初始化状态（仅用于测试）
func ResetDefault() {
	globalMu.Lock()
	globalLogger.Store(nil)
	globalOnce = sync.Once{}
	globalMu.Unlock()
}
