package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xlogfile/pkg/util/xfile"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 诊断日志默认配置
//
// 诊断日志量远小于业务日志，默认值偏小。
const (
	// DefaultMaxSizeMB 默认单个诊断日志文件最大大小（MB）
	DefaultMaxSizeMB = 100

	// DefaultMaxBackups 默认保留的备份文件数量
	DefaultMaxBackups = 5

	// DefaultMaxAgeDays 默认保留备份的天数
	DefaultMaxAgeDays = 14

	// DefaultCompress 默认是否压缩备份
	DefaultCompress = true

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

// config lumberjack 轮转器配置
type config struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	LocalTime  bool

	// FileMode 非零时在首次写入和每次轮转后把文件权限调整为该值。
	// lumberjack 不暴露创建权限，只能事后 chmod，存在短暂的 0600 窗口。
	FileMode os.FileMode

	// OnError 内部操作（权限调整）失败时的回调，不得向同一 Rotator 写入
	OnError func(error)
}

// Option lumberjack 配置选项函数
type Option func(*config)

// WithMaxSize 设置单个文件最大大小（MB）
func WithMaxSize(mb int) Option {
	return func(c *config) { c.MaxSizeMB = mb }
}

// WithMaxBackups 设置保留的备份文件数量，0 表示只按天数清理
func WithMaxBackups(n int) Option {
	return func(c *config) { c.MaxBackups = n }
}

// WithMaxAge 设置保留备份的天数，0 表示只按数量清理
func WithMaxAge(days int) Option {
	return func(c *config) { c.MaxAgeDays = days }
}

// WithCompress 设置是否 gzip 压缩备份文件
func WithCompress(compress bool) Option {
	return func(c *config) { c.Compress = compress }
}

// WithLocalTime 设置备份文件名是否使用本地时间（默认 UTC）
func WithLocalTime(local bool) Option {
	return func(c *config) { c.LocalTime = local }
}

// WithFileMode 设置日志文件权限
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) { c.FileMode = mode }
}

// WithOnError 设置内部错误回调
func WithOnError(fn func(error)) Option {
	return func(c *config) { c.OnError = fn }
}

// lumberjackRotator 基于 lumberjack 的 Rotator 实现
type lumberjackRotator struct {
	logger   *lumberjack.Logger
	path     string
	fileMode os.FileMode
	onError  func(error)

	closed atomic.Bool

	// modeMu 保护 Stat+Chmod 组合操作
	modeMu sync.Mutex
	// modeApplied 为 true 时跳过权限检查；累计写入超过单文件上限时
	// （lumberjack 可能已自动轮转出新文件）重置并重新检查。
	modeApplied  atomic.Bool
	maxSizeBytes int64
	bytesWritten atomic.Int64

	// 可注入的系统调用，仅用于测试
	statFn  func(string) (os.FileInfo, error)
	chmodFn func(string, os.FileMode) error
}

// NewLumberjack 创建基于 lumberjack 的轮转器
//
// 父目录不存在时自动创建（权限 0750）。
func NewLumberjack(filename string, opts ...Option) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	if strings.ContainsRune(filename, 0) || strings.HasSuffix(filename, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	cfg := config{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	path := filepath.Clean(filename)
	if err := xfile.EnsureDirPath(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &lumberjackRotator{
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		},
		path:         path,
		fileMode:     cfg.FileMode,
		onError:      cfg.OnError,
		maxSizeBytes: int64(cfg.MaxSizeMB) * 1024 * 1024,
		statFn:       os.Stat,
		chmodFn:      os.Chmod,
	}, nil
}

func validate(cfg *config) error {
	if cfg.MaxSizeMB <= 0 || cfg.MaxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.MaxSizeMB, maxSizeMB)
	}
	if cfg.MaxBackups < 0 || cfg.MaxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, cfg.MaxBackups, maxBackups)
	}
	if cfg.MaxAgeDays < 0 || cfg.MaxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, cfg.MaxAgeDays, maxAgeDays)
	}
	if cfg.MaxBackups == 0 && cfg.MaxAgeDays == 0 {
		return fmt.Errorf("%w: MaxBackups and MaxAgeDays cannot both be 0", ErrNoCleanupPolicy)
	}
	if cfg.FileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed",
			ErrInvalidFileMode, cfg.FileMode)
	}
	return nil
}

// Write 实现 io.Writer 接口
func (r *lumberjackRotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	n, err := r.logger.Write(p)
	if err != nil {
		// Write 通过前置检查后 Close 可能在 logger.Write 期间完成，
		// 后置检查保证调用方看到 ErrClosed 而不是底层 I/O 错误。
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}

	if r.fileMode != 0 {
		if r.bytesWritten.Add(int64(n)) >= r.maxSizeBytes {
			r.modeApplied.Store(false)
		}
		if !r.modeApplied.Load() {
			r.reportError(r.applyFileMode())
		}
	}
	return n, nil
}

// applyFileMode 确保当前日志文件具有期望的权限
func (r *lumberjackRotator) applyFileMode() error {
	r.modeMu.Lock()
	defer r.modeMu.Unlock()

	info, err := r.statFn(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode().Perm() != r.fileMode {
		//#nosec G302 -- 权限由调用方配置
		if err := r.chmodFn(r.path, r.fileMode); err != nil {
			return err
		}
	}
	r.modeApplied.Store(true)
	r.bytesWritten.Store(0)
	return nil
}

// reportError 通过回调上报内部错误，回调 panic 被隔离
func (r *lumberjackRotator) reportError(err error) {
	if err == nil || r.onError == nil {
		return
	}
	defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
	r.onError(err)
}

// Close 实现 io.Closer 接口
//
// 首次 Close 失败后不重置关闭标记，重试得到 ErrClosed。
func (r *lumberjackRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

// Rotate 手动触发轮转
func (r *lumberjackRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := r.logger.Rotate(); err != nil {
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	if r.fileMode != 0 {
		r.modeApplied.Store(false)
		r.bytesWritten.Store(0)
		r.reportError(r.applyFileMode())
	}
	return nil
}
