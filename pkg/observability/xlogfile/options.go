package xlogfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
	"github.com/omeyang/xlogfile/pkg/observability/xmetrics"
)

// 默认配置
const (
	// DefaultMaxRecords 单文件默认记录上限
	DefaultMaxRecords = 1000

	// DefaultMaxAge 单文件默认最长存活时间（从该文件第一条记录算起）
	DefaultMaxAge = time.Minute

	// DefaultFileMode 日志文件默认权限
	DefaultFileMode os.FileMode = 0o640

	// errorSuffix 无法交付的文件被改名时追加的后缀
	errorSuffix = ".error"
)

// options Writer 配置
//
// serializer 以 any 保存，New[R] 中断言为 func(R) (string, error)，
// 使 Option 不必携带类型参数。
type options struct {
	maxRecords      int
	maxAge          time.Duration
	nameProvider    func(revision int) string
	nameSet         bool
	headerProvider  func() (string, bool)
	serializer      any
	serializerSet   bool
	onCompleted     func(ctx context.Context, path string) error
	logger          xlog.Logger
	observer        xmetrics.Observer
	fileMode        os.FileMode
	now             func() time.Time
	finalizeOnClose bool
}

// Option Writer 配置选项
type Option func(*options)

// WithMaxRecords 设置单文件记录上限
//
// 比较为严格大于：文件写满 n 条后，第 n+1 条记录仍写入当前文件，
// 随后立即轮转。
func WithMaxRecords(n int) Option {
	return func(o *options) { o.maxRecords = n }
}

// WithMaxAge 设置单文件最长存活时间
//
// 计时从上一次轮转后的第一条记录开始，到期后在后台轮转。
func WithMaxAge(d time.Duration) Option {
	return func(o *options) { o.maxAge = d }
}

// WithFileNameProvider 设置文件名生成函数
//
// 参数为新文件的修订号（从 1 开始）；返回值必须是单一路径段，
// 且在目录内唯一。
func WithFileNameProvider(fn func(revision int) string) Option {
	return func(o *options) {
		o.nameProvider = fn
		o.nameSet = true
	}
}

// WithFileHeader 设置文件头生成函数
//
// 每个新文件创建时调用一次；ok 为 true 时 header 作为第一行写入。
// 函数在写入器锁内执行，不得阻塞。
func WithFileHeader(fn func() (header string, ok bool)) Option {
	return func(o *options) { o.headerProvider = fn }
}

// WithSerializer 设置记录序列化函数
//
// 返回 [ErrSkipRecord] 表示跳过该记录；其他错误导致该记录被丢弃并记录诊断日志。
// fn 的参数类型必须与 Writer 的记录类型一致，否则 New 返回 [ErrNilSerializer]。
func WithSerializer[R any](fn func(R) (string, error)) Option {
	return func(o *options) {
		o.serializerSet = true
		if fn == nil {
			o.serializer = nil
			return
		}
		o.serializer = fn
	}
}

// WithOnFileCompleted 设置文件完成回调
//
// 文件关闭后以其路径调用。回调收到的 ctx 不随触发写入的 ctx 取消；
// 返回的错误和 panic 只记录诊断日志，不会传播，也不会重试。
// 多个回调可能并发执行。
func WithOnFileCompleted(fn func(ctx context.Context, path string) error) Option {
	return func(o *options) { o.onCompleted = fn }
}

// WithLogger 设置诊断日志输出，nil 忽略
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver 设置可观测性 Observer，nil 忽略
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithFileMode 设置新建日志文件的权限
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) { o.fileMode = mode }
}

// WithClock 设置时间源，用于默认文件名和 Stats 中的时间字段，nil 忽略
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFinalizeOnClose 设置 Close 时是否交付当前文件
//
// 默认 false：当前文件关闭后留在磁盘上，不调用完成回调。
// 为 true 时，若当前文件至少有一条记录，按正常轮转流程交付。
func WithFinalizeOnClose(enable bool) Option {
	return func(o *options) { o.finalizeOnClose = enable }
}

func defaultOptions() *options {
	return &options{
		maxRecords: DefaultMaxRecords,
		maxAge:     DefaultMaxAge,
		fileMode:   DefaultFileMode,
		observer:   xmetrics.NoopObserver{},
		now:        time.Now,
	}
}

func (o *options) validate() error {
	if o.maxRecords < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxRecords, o.maxRecords)
	}
	if o.maxAge < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidMaxAge, o.maxAge)
	}
	if o.nameSet && o.nameProvider == nil {
		return ErrNilNameProvider
	}
	if o.serializerSet && o.serializer == nil {
		return ErrNilSerializer
	}
	if o.fileMode == 0 || o.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o", ErrInvalidFileMode, o.fileMode)
	}
	return nil
}
