package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// 编译时接口检查
var (
	_ Logger          = (*xlogger)(nil)
	_ LoggerWithLevel = (*xlogger)(nil)
)

const (
	// initialStackSize 初始堆栈缓冲区大小
	initialStackSize = 4096
	// maxStackSize 最大堆栈缓冲区大小（64KB）
	maxStackSize = 64 * 1024
)

// xlogger Logger 接口的实现
type xlogger struct {
	handler        slog.Handler
	levelVar       *slog.LevelVar
	onError        func(error)    // 内部错误回调
	errorCount     *atomic.Uint64 // 内部错误计数器，派生 logger 共享
	addSource      bool           // 是否记录源码位置（热路径优化）
	inErrorHandler *atomic.Bool   // 防止 onError 递归调用，派生 logger 共享
}

// log 通用日志方法，正确捕获调用者位置
//
//go:noinline
func (l *xlogger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	if l.addSource {
		var pcs [1]uintptr
		// skip=3: Callers(0) → log(1) → Debug/Info/…(2) → 业务代码(3)
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)

	if err := l.handler.Handle(ctx, r); err != nil {
		l.handleError(err)
	}
}

// handleError 处理内部错误（Handler.Handle 失败）
//
// 设计决策: 日志子系统遵循"失败不扩散"原则。errorCount 计入所有错误；
// onError 回调是 best-effort 通知，递归保护期间到达的错误只计数不回调。
func (l *xlogger) handleError(err error) {
	l.errorCount.Add(1)
	if l.onError == nil {
		return
	}
	if !l.inErrorHandler.CompareAndSwap(false, true) {
		return
	}
	defer l.inErrorHandler.Store(false)
	defer func() {
		if r := recover(); r != nil {
			l.errorCount.Add(1)
		}
	}()
	l.onError(err)
}

// Debug 记录 Debug 级别日志
func (l *xlogger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, msg, attrs)
}

// Info 记录 Info 级别日志
func (l *xlogger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, msg, attrs)
}

// Warn 记录 Warn 级别日志
func (l *xlogger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelWarn, msg, attrs)
}

// Error 记录 Error 级别日志
func (l *xlogger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelError, msg, attrs)
}

// Stack 记录带完整堆栈的错误日志
func (l *xlogger) Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, slog.LevelError) {
		return
	}

	// 获取堆栈，如果被截断则翻倍扩展缓冲区
	buf := make([]byte, initialStackSize)
	n := runtime.Stack(buf, false)
	for n == len(buf) && len(buf) < maxStackSize {
		buf = make([]byte, min(len(buf)*2, maxStackSize))
		n = runtime.Stack(buf, false)
	}

	r := slog.NewRecord(time.Now(), slog.LevelError, msg, 0)
	r.AddAttrs(attrs...)
	r.AddAttrs(slog.String(KeyStack, string(buf[:n])))

	if err := l.handler.Handle(ctx, r); err != nil {
		l.handleError(err)
	}
}

// With 返回带额外属性的派生 Logger
func (l *xlogger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return &xlogger{
		handler:        l.handler.WithAttrs(attrs),
		levelVar:       l.levelVar,
		onError:        l.onError,
		errorCount:     l.errorCount,
		addSource:      l.addSource,
		inErrorHandler: l.inErrorHandler,
	}
}

// SetLevel 动态设置日志级别（实现 Leveler 接口）
func (l *xlogger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

// GetLevel 获取当前日志级别（实现 Leveler 接口）
func (l *xlogger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

// Enabled 检查指定级别是否启用（实现 Leveler 接口）
func (l *xlogger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, slog.Level(level))
}

// ErrorCount 返回 logger 的内部错误次数（Handler 写失败、回调 panic）
//
// 对非 Build 创建的 Logger 返回 0。
func ErrorCount(l Logger) uint64 {
	xl, ok := l.(*xlogger)
	if !ok {
		return 0
	}
	return xl.errorCount.Load()
}
