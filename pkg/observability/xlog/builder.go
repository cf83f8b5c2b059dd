package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xlogfile/pkg/observability/xrotate"
)

// ErrBuilderUsed Builder 已经调用过 Build
var ErrBuilderUsed = errors.New("xlog: builder already built")

// Builder 日志配置构建器
//
// first-error-wins：遇到第一个配置错误后，后续 Set 操作不会覆盖它，
// Build 返回该错误。
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	attrs     []slog.Attr
	rotator   xrotate.Rotator
	onError   func(error)
	built     bool
	err       error
}

// New 创建配置构建器
//
// 默认：输出到 stderr、Info 级别、text 格式。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)

	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

func (b *Builder) setErr(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SetOutput 设置日志输出目标
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w == nil {
		return b.setErr(errors.New("xlog: output writer is nil"))
	}
	b.output = w
	return b
}

// SetLevel 设置日志级别
func (b *Builder) SetLevel(level Level) *Builder {
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		return b.setErr(err)
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "":
		// 空值视为使用默认格式，避免误把"没填"变成配置错误。
		b.format = "text"
	case "text", "json":
		b.format = normalized
	default:
		return b.setErr(fmt.Errorf("xlog: unknown format %q", format))
	}
	return b
}

// SetAddSource 是否在日志中添加源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetAttrs 设置每条日志都携带的固定属性（如服务名、实例 ID）
//
// 固定属性在 Build 时通过 handler.WithAttrs 注入，不在热路径上重复处理。
func (b *Builder) SetAttrs(attrs ...slog.Attr) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// SetRotation 设置按大小轮转的日志文件作为输出目标
//
// 轮转器在 cleanup 函数中关闭。
func (b *Builder) SetRotation(filename string, opts ...xrotate.Option) *Builder {
	if b.err != nil {
		return b
	}
	rotator, err := xrotate.NewLumberjack(filename, opts...)
	if err != nil {
		return b.setErr(err)
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// SetOnError 设置内部错误回调
//
// 当 Handler.Handle() 失败时（如磁盘满、writer 异常）调用。
// 回调在热路径同步执行，应保持轻量；内置递归保护与 panic 隔离。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	b.onError = fn
	return b
}

// Build 构建 Logger 实例
//
// 返回值：
//   - LoggerWithLevel: 日志实例，同时支持动态级别控制
//   - func() error: 清理函数，用于释放资源（如关闭轮转文件），可重复调用
//   - error: 配置错误
func (b *Builder) Build() (LoggerWithLevel, func() error, error) {
	if b.built {
		return nil, nil, ErrBuilderUsed
	}
	if b.err != nil {
		if b.rotator != nil {
			_ = b.rotator.Close()
		}
		return nil, nil, b.err
	}
	b.built = true

	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	switch b.format {
	case "json":
		handler = slog.NewJSONHandler(b.output, opts)
	default:
		handler = slog.NewTextHandler(b.output, opts)
	}
	if len(b.attrs) > 0 {
		handler = handler.WithAttrs(b.attrs)
	}

	logger := &xlogger{
		handler:        handler,
		levelVar:       b.levelVar,
		onError:        b.onError,
		errorCount:     new(atomic.Uint64),
		addSource:      b.addSource,
		inErrorHandler: new(atomic.Bool),
	}

	return logger, b.createCleanup(), nil
}

// createCleanup 创建清理函数
func (b *Builder) createCleanup() func() error {
	var once sync.Once
	rotator := b.rotator

	return func() error {
		var err error
		once.Do(func() {
			if rotator != nil {
				err = rotator.Close()
			}
		})
		return err
	}
}

// Discard 返回丢弃所有输出的 Logger
//
// 用于测试或显式关闭诊断日志的场景。级别仍可调整，但不会产生任何输出。
func Discard() LoggerWithLevel {
	logger, _, err := New().SetOutput(io.Discard).SetLevel(LevelOff).Build()
	if err != nil {
		// 默认参数不会失败；保底返回最小实现，避免库代码 panic
		return &xlogger{
			handler:        slog.NewTextHandler(io.Discard, nil),
			levelVar:       new(slog.LevelVar),
			errorCount:     new(atomic.Uint64),
			inErrorHandler: new(atomic.Bool),
		}
	}
	return logger
}
