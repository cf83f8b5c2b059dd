// Package xlog 基于 log/slog 的结构化诊断日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、按大小轮转、固定属性）
//   - 动态级别调整（运行时热更新）
//   - 失败不扩散：Handler 写失败只计数并通知 onError，不向调用方返回错误
//   - 全局 Logger 兜底（Default/SetDefault）
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：第一个配置错误在 Build 时返回）。
// Builder 为一次性使用：调用 [Builder.Build] 后不可复用。
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/app/diag.log", xrotate.WithMaxSize(50)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// # 递归写入
//
// 诊断日志与业务日志文件应使用不同的输出目标：xlogfile.Writer 通过本包记录
// 内部故障，如果把诊断日志再写回同一个 Writer，一次写失败会引发新的写入。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// 可通过 [ParseLevel] 从字符串解析。Level 实现 encoding.TextMarshaler/TextUnmarshaler，
// 支持配置文件直接反序列化。
//
// # 便捷属性
//
// [Err]、[Duration]、[Count]、[Component]、[Operation]、[Path]、[Revision]、[Session]。
package xlog
