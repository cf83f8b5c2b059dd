package xrun

import (
	"context"
	"os"
	"syscall"
	"time"
)

// DefaultSignals 返回默认监听的信号：SIGINT、SIGTERM
//
// 每次调用返回新切片。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// testSigChanKey 测试时通过 ctx 注入信号，避免向进程发送真实信号
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}

// Ticker 返回周期执行 fn 的服务函数
//
// fn 返回错误时服务以该错误退出；ctx 取消时返回 ctx.Err()。
func Ticker(interval time.Duration, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
