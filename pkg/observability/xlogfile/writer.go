package xlogfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
	"github.com/omeyang/xlogfile/pkg/observability/xmetrics"
	"github.com/omeyang/xlogfile/pkg/util/xfile"
)

const componentName = "xlogfile"

// Writer 把记录逐行追加到本地文件，按记录数或时间轮转
//
// 每个文件在写满 maxRecords 条之后的下一条记录（严格大于）或
// 第一条记录写入 maxAge 之后被关闭，随后以文件路径调用完成回调。
// 同一时刻最多持有一个打开的文件句柄。
//
// Writer 并发安全。追加、计数和轮转判断在同一把锁内完成，
// 完成回调在锁外执行，慢回调不会阻塞后续写入。
type Writer[R any] struct {
	dir       string
	opts      *options
	serialize func(R) (string, error)
	logger    xlog.Logger
	session   string

	mu           sync.Mutex
	initialized  bool
	closed       bool
	revision     int
	count        int
	path         string
	file         *os.File
	timer        *time.Timer
	epoch        uint64
	deadline     time.Time
	lastRotation time.Time

	// inflight 跟踪已轮转出、尚未交付完毕的文件，Close 时等待
	inflight sync.WaitGroup
	stats    counters
}

// counters Stats 中的累计计数
type counters struct {
	completed    atomic.Uint64
	missing      atomic.Uint64
	quarantined  atomic.Uint64
	hookFailures atomic.Uint64
	dropped      atomic.Uint64
	skipped      atomic.Uint64
	collisions   atomic.Uint64
}

// completion 一个已从写入器摘下、等待交付的文件
type completion struct {
	path     string
	file     *os.File
	revision int
	records  int
}

// New 创建写入器
//
// dir 在第一次写入时创建（权限 0750），New 本身不触碰文件系统。
// 配置无效时返回对应的 Err* 错误。
func New[R any](dir string, opts ...Option) (*Writer[R], error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if !o.nameSet {
		o.nameProvider = DefaultFileName(o.now)
	}

	serialize := AutoSerializer[R]()
	if o.serializerSet {
		fn, ok := o.serializer.(func(R) (string, error))
		if !ok {
			var zero R
			return nil, fmt.Errorf("%w: got %T for records of type %T", ErrNilSerializer, o.serializer, zero)
		}
		serialize = fn
	}

	logger := o.logger
	if logger == nil {
		logger = xlog.Default()
	}
	session := uuid.NewString()

	return &Writer[R]{
		dir:       dir,
		opts:      o,
		serialize: serialize,
		logger:    logger.With(xlog.Component(componentName), xlog.Session(session)),
		session:   session,
	}, nil
}

// Session 返回写入器的会话 ID，出现在全部诊断日志中
func (w *Writer[R]) Session() string {
	return w.session
}

// Write 序列化并追加一条记录
//
// 只有在写入器关闭后返回 [ErrClosed]。序列化失败、文件不可写等运行期故障
// 会记录诊断日志并计入 Stats，记录被丢弃，Write 仍返回 nil。
//
// 触发按数量轮转的 Write 会在返回前同步执行完成回调。
func (w *Writer[R]) Write(ctx context.Context, rec R) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 序列化只依赖记录本身，放在锁外
	line, serr := w.serializeRecord(rec)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if !w.ensureInitLocked(ctx) {
		w.mu.Unlock()
		w.stats.dropped.Add(1)
		return nil
	}
	if serr != nil {
		w.mu.Unlock()
		if errors.Is(serr, ErrSkipRecord) {
			w.stats.skipped.Add(1)
			return nil
		}
		w.stats.dropped.Add(1)
		w.logger.Error(ctx, "serialize record failed, record dropped", xlog.Err(serr))
		return nil
	}

	if w.file == nil {
		// 上一次轮转没能打开文件，补一次；被摘下的旧文件为空，不需要交付
		w.rotateLocked(ctx)
		if w.file == nil {
			rev := w.revision
			w.mu.Unlock()
			w.stats.dropped.Add(1)
			w.logger.Error(ctx, "no open log file, record dropped", xlog.Revision(rev))
			return nil
		}
	}

	if _, err := w.file.WriteString(line + "\n"); err != nil {
		path := w.path
		w.mu.Unlock()
		w.stats.dropped.Add(1)
		w.logger.Error(ctx, "append record failed, record dropped", xlog.Path(path), xlog.Err(err))
		return nil
	}
	w.count++

	if w.count > w.opts.maxRecords {
		done := w.rotateLocked(ctx)
		w.mu.Unlock()
		w.endFile(ctx, done)
		return nil
	}
	if w.timer == nil {
		w.armTimerLocked()
	}
	w.mu.Unlock()
	return nil
}

// serializeRecord 调用序列化函数，panic 视为普通错误
func (w *Writer[R]) serializeRecord(rec R) (line string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("serializer panicked: %v", r)
		}
	}()
	return w.serialize(rec)
}

// Rotate 立即轮转，当前文件按正常流程交付
//
// 尚未写入过的写入器只完成初始化（打开第一个文件）。
func (w *Writer[R]) Rotate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if !w.initialized {
		w.ensureInitLocked(ctx)
		w.mu.Unlock()
		return nil
	}
	done := w.rotateLocked(ctx)
	w.mu.Unlock()

	w.endFile(ctx, done)
	return nil
}

// Close 关闭写入器
//
// 停止计时器并等待进行中的完成回调，等待受 ctx 约束。
// 当前文件默认关闭后留在磁盘上；配置 [WithFinalizeOnClose] 时，
// 非空的当前文件按正常流程交付。重复调用返回 [ErrClosed]。
func (w *Writer[R]) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	w.stopTimerLocked()

	var (
		final    *completion
		closeErr error
	)
	if w.file != nil {
		if w.opts.finalizeOnClose && w.count > 0 {
			final = w.detachLocked()
		} else {
			if err := w.file.Close(); err != nil {
				closeErr = fmt.Errorf("close %s: %w", w.path, err)
			}
			w.file = nil
		}
	}
	w.mu.Unlock()

	w.endFile(ctx, final)
	return errors.Join(closeErr, w.wait(ctx))
}

// wait 等待进行中的完成回调，ctx 到期时返回 ctx.Err()
func (w *Writer[R]) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for completion hooks: %w", ctx.Err())
	}
}

// ensureInitLocked 首次写入时创建目录并打开第一个文件
//
// 目录创建失败时保持未初始化状态，下一次写入重试。
func (w *Writer[R]) ensureInitLocked(ctx context.Context) bool {
	if w.initialized {
		return true
	}
	if err := xfile.EnsureDirPath(w.dir); err != nil {
		w.logger.Error(ctx, "create log directory failed", xlog.Path(w.dir), xlog.Err(err))
		return false
	}
	w.initialized = true
	w.rotateLocked(ctx)
	return true
}

// rotateLocked 切换到下一个修订号的新文件，返回被摘下的旧文件
//
// 新文件创建和文件头写入都在锁内完成，任何记录都不会先于文件头落盘。
// 返回非 nil 时已计入 inflight，调用方必须在锁外把它交给 endFile。
func (w *Writer[R]) rotateLocked(ctx context.Context) *completion {
	prev := w.detachLocked()

	w.revision++
	w.lastRotation = w.opts.now()

	_, span := xmetrics.Start(ctx, w.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "rotate",
		Attrs:     []xmetrics.Attr{xmetrics.Int(xlog.KeyRevision, w.revision)},
	})
	path, file, err := w.openLocked(ctx)
	span.End(xmetrics.Result{Err: err})
	if err != nil {
		w.logger.Error(ctx, "open log file failed", xlog.Revision(w.revision), xlog.Path(path), xlog.Err(err))
		return prev
	}

	w.path, w.file = path, file
	w.logger.Debug(ctx, "log file opened", xlog.Revision(w.revision), xlog.Path(path))
	return prev
}

// detachLocked 摘下当前文件并重置计数和计时器
func (w *Writer[R]) detachLocked() *completion {
	w.stopTimerLocked()
	if w.file == nil {
		w.path, w.count = "", 0
		return nil
	}
	prev := &completion{
		path:     w.path,
		file:     w.file,
		revision: w.revision,
		records:  w.count,
	}
	w.file, w.path, w.count = nil, "", 0
	w.inflight.Add(1)
	return prev
}

// openLocked 创建新文件并写入文件头
func (w *Writer[R]) openLocked(ctx context.Context) (string, *os.File, error) {
	name := w.opts.nameProvider(w.revision)
	path, err := xfile.JoinName(w.dir, name)
	if err != nil {
		return name, nil, fmt.Errorf("file name for revision %d: %w", w.revision, err)
	}

	//#nosec G304 -- path 由 JoinName 限定在日志目录内
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_APPEND, w.opts.fileMode)
	if errors.Is(err, fs.ErrExist) {
		// 重名是文件名生成函数的缺陷，追加到已有文件，不截断已有数据
		w.stats.collisions.Add(1)
		w.logger.Error(ctx, "log file name collision, appending to existing file",
			xlog.Path(path), xlog.Err(fmt.Errorf("%w: %s", ErrFileExists, path)))
		//#nosec G304 -- 同上
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, w.opts.fileMode)
		if err != nil {
			return path, nil, err
		}
		return path, file, nil
	}
	if err != nil {
		return path, nil, err
	}

	if err := w.writeHeader(file); err != nil {
		_ = file.Close()
		if _, qerr := xfile.Quarantine(path, errorSuffix); qerr == nil {
			w.stats.quarantined.Add(1)
		}
		return path, nil, fmt.Errorf("write header: %w", err)
	}
	return path, file, nil
}

func (w *Writer[R]) writeHeader(file *os.File) (err error) {
	if w.opts.headerProvider == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("header provider panicked: %v", r)
		}
	}()
	header, ok := w.opts.headerProvider()
	if !ok {
		return nil
	}
	_, err = file.WriteString(header + "\n")
	return err
}

// armTimerLocked 为当前文件启动到期计时器
//
// 回调携带启动时的 epoch；任何轮转都会推进 epoch，过期的回调不做任何事。
func (w *Writer[R]) armTimerLocked() {
	epoch := w.epoch
	w.deadline = w.opts.now().Add(w.opts.maxAge)
	w.timer = time.AfterFunc(w.opts.maxAge, func() {
		w.onDeadline(epoch)
	})
}

func (w *Writer[R]) stopTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.deadline = time.Time{}
	w.epoch++
}

func (w *Writer[R]) onDeadline(epoch uint64) {
	ctx := context.Background()

	w.mu.Lock()
	if w.closed || epoch != w.epoch {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	done := w.rotateLocked(ctx)
	w.mu.Unlock()

	w.endFile(ctx, done)
}
