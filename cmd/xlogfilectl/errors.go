package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/omeyang/xlogfile/pkg/config/xconf"
	"github.com/omeyang/xlogfile/pkg/lifecycle/xrun"
	"github.com/omeyang/xlogfile/pkg/observability/xlogfile"
)

// usageError 参数或配置错误，退出码 2
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *usageError) Unwrap() error { return e.err }

func usagef(err error, format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...), err: err}
}

// configErrors 来自配置层的错误都按参数错误处理
var configErrors = []error{
	xconf.ErrEmptyPath,
	xconf.ErrUnsupportedFormat,
	xconf.ErrLoadFailed,
	xconf.ErrParseFailed,
	xconf.ErrUnmarshalFailed,
	xlogfile.ErrEmptyDir,
	xlogfile.ErrInvalidMaxRecords,
	xlogfile.ErrInvalidMaxAge,
	xlogfile.ErrInvalidFileMode,
}

// exitCode 把命令错误映射为退出码，并向 stderr 输出错误信息
func exitCode(err error, stderr io.Writer) int {
	if errors.Is(err, xrun.ErrSignal) {
		return 0
	}

	var ue *usageError
	if errors.As(err, &ue) || isCLIUsageError(err) || isConfigError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

func isConfigError(err error) bool {
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// isCLIUsageError 识别 urfave/cli 的参数解析错误
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
		"Required flag",
	} {
		if strings.Contains(msg, prefix) {
			return true
		}
	}
	return false
}
