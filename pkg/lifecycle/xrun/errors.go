package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 因收到系统信号而终止，使用 errors.Is(err, ErrSignal) 判断
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 传入的服务函数为 nil
	ErrNilFunc = errors.New("xrun: nil service func")

	// ErrInvalidInterval Ticker 的间隔必须为正数
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

// SignalError 记录触发终止的信号
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//		fmt.Println(sigErr.Signal)
//	}
type SignalError struct {
	Signal os.Signal
}

// Error 实现 error 接口
func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Unwrap 返回 ErrSignal
func (e *SignalError) Unwrap() error {
	return ErrSignal
}
