package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xlogfile/pkg/config/xconf"
	"github.com/omeyang/xlogfile/pkg/lifecycle/xrun"
	"github.com/omeyang/xlogfile/pkg/observability/xlog"
	"github.com/omeyang/xlogfile/pkg/observability/xlogfile"
	"github.com/omeyang/xlogfile/pkg/observability/xrotate"
	"github.com/omeyang/xlogfile/pkg/util/xfile"
	"github.com/omeyang/xlogfile/pkg/util/xjson"
)

const (
	// closeTimeout 退出时等待完成回调的上限
	closeTimeout = 30 * time.Second

	// maxLineSize 单行输入上限
	maxLineSize = 1 << 20
)

func createRunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "逐行读取标准输入并写入滚动日志文件",
		Flags:  runFlags(),
		Action: runPipe,
	}
}

func runPipe(ctx context.Context, cmd *cli.Command) error {
	s, conf, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, cleanup, err := buildLogger(s.Log, cmd.Root().ErrWriter)
	if err != nil {
		return usagef(err, "初始化诊断日志")
	}
	defer func() { _ = cleanup() }()

	w, err := newWriter(s.Writer, logger)
	if err != nil {
		return err
	}

	services := map[string]func(context.Context) error{
		"pipe": pipeLines(w, cmd.Root().Reader),
	}
	if s.StatsInterval > 0 {
		services["stats"] = xrun.Ticker(s.StatsInterval, func(ctx context.Context) error {
			logStats(ctx, logger, w.Stats())
			return nil
		})
	}
	if conf != nil {
		watcher, werr := xconf.NewWatcher(conf, reloadLogLevel(logger))
		if werr != nil {
			logger.Warn(ctx, "config watch disabled", xlog.Err(werr))
		} else {
			services["config"] = watcher.Run
		}
	}

	runErr := xrun.Run(ctx, []xrun.Option{xrun.WithLogger(logger), xrun.WithName("xlogfilectl")}, services)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	closeErr := w.Close(closeCtx)
	logStats(closeCtx, logger, w.Stats())

	return errors.Join(runErr, closeErr)
}

func buildLogger(ls logSettings, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetLevelString(ls.Level).
		SetFormat(ls.Format)
	if ls.File != "" {
		b.SetRotation(ls.File,
			xrotate.WithMaxSize(ls.MaxSizeMB),
			xrotate.WithMaxBackups(ls.MaxBackups),
			xrotate.WithFileMode(0o640),
			xrotate.WithOnError(func(err error) {
				fmt.Fprintf(stderr, "xlogfilectl: diagnostics log: %v\n", err)
			}),
		)
	} else {
		b.SetOutput(stderr)
	}
	return b.Build()
}

func newWriter(ws writerSettings, logger xlog.Logger) (*xlogfile.Writer[string], error) {
	if ws.CompletedDir != "" {
		if err := xfile.EnsureDirPath(ws.CompletedDir); err != nil {
			return nil, usagef(err, "创建完成目录 %s", ws.CompletedDir)
		}
	}

	opts := []xlogfile.Option{
		xlogfile.WithMaxRecords(ws.MaxRecords),
		xlogfile.WithMaxAge(ws.MaxAge),
		xlogfile.WithLogger(logger),
		xlogfile.WithOnFileCompleted(completionHook(ws.CompletedDir, logger)),
		xlogfile.WithFinalizeOnClose(true),
	}
	if ws.Header != "" {
		header := ws.Header
		opts = append(opts, xlogfile.WithFileHeader(func() (string, bool) { return header, true }))
	}
	if ws.JSON {
		opts = append(opts, xlogfile.WithSerializer(jsonLine))
	} else {
		opts = append(opts, xlogfile.WithSerializer(textLine))
	}
	return xlogfile.New[string](ws.Dir, opts...)
}

// textLine 原样写入非空行
func textLine(line string) (string, error) {
	if strings.TrimSpace(line) == "" {
		return "", xlogfile.ErrSkipRecord
	}
	return line, nil
}

// jsonLine 只接受 JSON 对象行，压缩为单行后写入
func jsonLine(line string) (string, error) {
	compact, err := xjson.CompactObject(line)
	if err != nil {
		return "", xlogfile.ErrSkipRecord
	}
	return compact, nil
}

// completionHook 把完成的文件移动到 dir；dir 为空时只记录日志
func completionHook(dir string, logger xlog.Logger) func(context.Context, string) error {
	if dir == "" {
		return func(ctx context.Context, path string) error {
			logger.Info(ctx, "log file completed", xlog.Path(path))
			return nil
		}
	}
	return func(ctx context.Context, path string) error {
		target, err := xfile.JoinName(dir, filepath.Base(path))
		if err != nil {
			return err
		}
		if err := os.Rename(path, target); err != nil {
			return fmt.Errorf("move completed file: %w", err)
		}
		logger.Info(ctx, "log file moved", xlog.Path(target))
		return nil
	}
}

// pipeLines 把 r 的每一行写入 w，读到 EOF 时返回 nil
func pipeLines(w *xlogfile.Writer[string], r io.Reader) func(context.Context) error {
	return func(ctx context.Context) error {
		lines, errc := startLineReader(ctx, r)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case line, ok := <-lines:
				if !ok {
					return <-errc
				}
				if err := w.Write(ctx, line); err != nil {
					return err
				}
			}
		}
	}
}

// startLineReader 在后台逐行读取 r
//
// 阻塞在 Read 上的协程无法被取消，stdin 关闭或进程退出时随之结束。
func startLineReader(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := sc.Err(); err != nil {
			errc <- fmt.Errorf("read input: %w", err)
			return
		}
		errc <- nil
	}()
	return lines, errc
}

// reloadLogLevel 配置文件变更时同步诊断日志级别
func reloadLogLevel(logger xlog.LoggerWithLevel) xconf.WatchCallback {
	return func(cfg xconf.Config, err error) {
		ctx := context.Background()
		if err != nil {
			logger.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		raw := cfg.Client().String("log.level")
		if raw == "" {
			return
		}
		level, perr := xlog.ParseLevel(raw)
		if perr != nil {
			logger.Warn(ctx, "invalid log level in config", slog.String("level", raw), xlog.Err(perr))
			return
		}
		if level != logger.GetLevel() {
			logger.SetLevel(level)
			logger.Info(ctx, "log level changed", slog.String("level", level.String()))
		}
	}
}

func logStats(ctx context.Context, logger xlog.Logger, st xlogfile.Stats) {
	logger.Info(ctx, "writer stats",
		xlog.Revision(st.Revision),
		xlog.Count(st.Records),
		slog.Uint64("completed", st.Completed),
		slog.Uint64("missing", st.Missing),
		slog.Uint64("quarantined", st.Quarantined),
		slog.Uint64("hook_failures", st.HookFailures),
		slog.Uint64("dropped", st.Dropped),
		slog.Uint64("skipped", st.Skipped),
		slog.Uint64("collisions", st.Collisions),
	)
}
