// xlogfilectl 把标准输入逐行写入按条数/时间滚动的本地日志文件。
//
// 用法:
//
//	xlogfilectl run [选项] < input
//	xlogfilectl version
//
// run 选项:
//
//	-c, --config         配置文件（.yaml/.yml/.json），命令行参数优先于配置文件
//	-d, --dir            日志目录（必需，可来自配置文件）
//	--max-records        单文件记录上限（默认 1000）
//	--max-age            单文件最长存活时间（默认 1m）
//	--header             每个文件的第一行
//	--completed-dir      完成的文件移动到该目录；未设置时只记录日志
//	--json               只接受 JSON 对象行，其他行跳过
//	--log-file           诊断日志文件（按大小轮转），默认输出到 stderr
//	--log-level          诊断日志级别（debug/info/warn/error/off）
//	--stats-interval     周期输出写入统计，0 表示关闭
//
// 读到 EOF 或收到 SIGINT/SIGTERM 时停止，当前文件非空时同样被交付。
// 指定配置文件时监视其变更，log.level 修改即时生效。
//
// 退出码:
//
//	0: 正常结束（含信号退出）
//	1: 运行期错误
//	2: 参数或配置错误
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，通过 -ldflags 注入：
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run 执行命令并把错误映射为退出码
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xlogfilectl",
		Usage:     "把标准输入写入滚动日志文件",
		Version:   versionString(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			createRunCommand(),
			createVersionCommand(),
		},
		// 由 run 统一映射退出码，禁止 urfave/cli 直接 os.Exit
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

func createVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "显示版本信息",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "xlogfilectl %s\n", versionString())
			return err
		},
	}
}
