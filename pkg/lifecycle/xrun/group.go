package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
)

// Group 基于 errgroup 管理一组服务的并发运行和协调关闭
//
// 任一服务返回错误或父 ctx 取消时，所有服务的 ctx 都被取消。
// Go、Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 ctx 在任一服务出错时取消
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 以 name 启动一个服务，启动和退出写入生命周期日志
//
// fn 应在 ctx 取消后尽快返回；返回非 nil 错误会取消其他服务。
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		attrs := []slog.Attr{slog.String("group", g.opts.name), slog.String("service", name)}

		g.opts.logger.Debug(g.ctx, "service starting", attrs...)
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "service exited with error", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "service stopped", attrs...)
		}
		return err
	})
}

// Wait 等待所有服务退出
//
// 服务因取消而返回的 context.Canceled 被过滤；Cancel(cause) 设置的原因
// （如 *SignalError）会被返回，即使所有服务都返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()

	var cause error
	if g.causeCtx.Err() != nil {
		if c := context.Cause(g.causeCtx); c != nil && !errors.Is(c, context.Canceled) {
			cause = c
		}
	}

	switch {
	case errors.Is(err, context.Canceled) && g.causeCtx.Err() != nil:
		return cause
	case err == nil:
		return cause
	default:
		return err
	}
}

// Cancel 以 cause 为原因取消所有服务
//
// cause 不应包装 context.Canceled，否则 Wait 会把它当作普通取消过滤掉。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 ctx
func (g *Group) Context() context.Context {
	return g.ctx
}

// Run 运行一组服务，任一服务返回（无论是否出错）或收到信号时停止全部服务
//
// 服务都正常返回时 Run 返回 nil；收到信号时返回 *SignalError，
// 可用 errors.Is(err, ErrSignal) 判断；否则返回第一个服务错误。
func Run(ctx context.Context, opts []Option, services map[string]func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)

	if !g.opts.noSignalHandler {
		g.eg.Go(func() error {
			g.watchSignals(g.ctx)
			return nil
		})
	}
	for name, fn := range services {
		if fn == nil {
			g.Go(name, nil)
			continue
		}
		g.Go(name, func(ctx context.Context) error {
			defer g.cancel(nil)
			return fn(ctx)
		})
	}
	return g.Wait()
}

func (g *Group) watchSignals(ctx context.Context) {
	signals := g.opts.signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-testSigChan(ctx):
	case sig = <-sigCh:
	case <-ctx.Done():
		return
	}

	g.opts.logger.Info(ctx, "received signal",
		slog.String("group", g.opts.name), slog.String("signal", sig.String()))
	g.cancel(&SignalError{Signal: sig})
}
