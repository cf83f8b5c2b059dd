package xlogfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
)

// RecordWriter 接收记录的写入目标，*Writer[R] 实现该接口
type RecordWriter[R any] interface {
	Write(ctx context.Context, rec R) error
}

// 编译时断言
var _ RecordWriter[string] = (*Writer[string])(nil)

// Fanout 把每条记录转发给多个写入目标
//
// 单个目标返回错误或 panic 只记录诊断日志，不影响其他目标，
// 也不会传播给调用方。
type Fanout[R any] struct {
	writers []RecordWriter[R]
	logger  xlog.Logger
}

// NewFanout 创建 Fanout，nil 目标被忽略，logger 为 nil 时使用 xlog.Default()
func NewFanout[R any](logger xlog.Logger, writers ...RecordWriter[R]) *Fanout[R] {
	if logger == nil {
		logger = xlog.Default()
	}
	ws := make([]RecordWriter[R], 0, len(writers))
	for _, w := range writers {
		if w != nil {
			ws = append(ws, w)
		}
	}
	return &Fanout[R]{
		writers: ws,
		logger:  logger.With(xlog.Component("xlogfile.fanout")),
	}
}

// Write 依次写入每个目标，始终返回 nil
func (f *Fanout[R]) Write(ctx context.Context, rec R) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for i, w := range f.writers {
		if err := safeWrite(ctx, w, rec); err != nil {
			f.logger.Error(ctx, "fanout write failed", slog.Int("writer", i), xlog.Err(err))
		}
	}
	return nil
}

func safeWrite[R any](ctx context.Context, w RecordWriter[R], rec R) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writer panicked: %v", r)
		}
	}()
	return w.Write(ctx, rec)
}

// Close 关闭所有提供 Close(ctx) error 的目标，合并返回错误
func (f *Fanout[R]) Close(ctx context.Context) error {
	var errs []error
	for _, w := range f.writers {
		c, ok := w.(interface{ Close(context.Context) error })
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
