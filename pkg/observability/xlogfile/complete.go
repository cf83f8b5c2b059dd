package xlogfile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
	"github.com/omeyang/xlogfile/pkg/observability/xmetrics"
	"github.com/omeyang/xlogfile/pkg/util/xfile"
)

// endFile 关闭已摘下的文件并交给完成回调
//
// 顺序：关闭句柄，确认文件仍在，调用回调。关闭或确认失败的文件
// 被改名为 path.error 留在原目录；文件已不存在时只记录诊断日志。
// 所有失败都不会传播给调用方。
func (w *Writer[R]) endFile(ctx context.Context, c *completion) {
	if c == nil {
		return
	}
	defer w.inflight.Done()

	ctx = context.WithoutCancel(ctx)
	ctx, span := xmetrics.Start(ctx, w.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "complete",
		Kind:      xmetrics.KindProducer,
		Attrs: []xmetrics.Attr{
			xmetrics.Int(xlog.KeyRevision, c.revision),
			xmetrics.String(xlog.KeyPath, c.path),
			xmetrics.Int(xlog.KeyCount, c.records),
		},
	})
	err := w.finish(ctx, c)
	span.End(xmetrics.Result{Err: err})
}

func (w *Writer[R]) finish(ctx context.Context, c *completion) error {
	attrs := []slog.Attr{xlog.Path(c.path), xlog.Revision(c.revision), xlog.Count(c.records)}

	if err := c.file.Close(); err != nil {
		w.quarantine(ctx, c, fmt.Errorf("close: %w", err))
		return err
	}

	exists, err := xfile.Exists(c.path)
	if err != nil {
		w.quarantine(ctx, c, fmt.Errorf("stat: %w", err))
		return err
	}
	if !exists {
		w.stats.missing.Add(1)
		w.logger.Warn(ctx, "completed log file is missing, skipping", attrs...)
		return nil
	}

	if w.opts.onCompleted != nil {
		if err := w.callHook(ctx, c.path); err != nil {
			w.stats.hookFailures.Add(1)
			w.logger.Error(ctx, "file completed hook failed", append(attrs, xlog.Err(err))...)
			return err
		}
	}
	w.stats.completed.Add(1)
	w.logger.Debug(ctx, "log file completed", attrs...)
	return nil
}

// callHook 调用完成回调，panic 转为 ErrHookPanic，堆栈写入诊断日志
func (w *Writer[R]) callHook(ctx context.Context, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHookPanic, r)
			w.logger.Stack(ctx, "file completed hook panicked", xlog.Path(path), xlog.Err(err))
		}
	}()
	return w.opts.onCompleted(ctx, path)
}

// quarantine 把无法交付的文件改名为 path.error
func (w *Writer[R]) quarantine(ctx context.Context, c *completion, cause error) {
	_, span := xmetrics.Start(ctx, w.opts.observer, xmetrics.SpanOptions{
		Component: componentName,
		Operation: "quarantine",
		Attrs:     []xmetrics.Attr{xmetrics.String(xlog.KeyPath, c.path)},
	})

	target, err := xfile.Quarantine(c.path, errorSuffix)
	span.End(xmetrics.Result{Err: err})
	if err != nil {
		w.logger.Error(ctx, "finish log file failed, quarantine failed too",
			xlog.Path(c.path), xlog.Err(cause), slog.String("quarantine_error", err.Error()))
		return
	}
	w.stats.quarantined.Add(1)
	w.logger.Error(ctx, "finish log file failed, file quarantined",
		xlog.Path(c.path), slog.String("quarantined_to", target), xlog.Err(cause))
}
