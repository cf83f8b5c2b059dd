// Package observability 提供日志文件写入与可观测性相关的子包。
//
// 子包列表：
//   - xlogfile: 按记录数/时间滚动的本地日志文件写入器，文件写完后交给完成回调
//   - xlog: 结构化日志，基于 log/slog 扩展，作为各组件的诊断日志
//   - xrotate: 诊断日志文件按大小轮转（lumberjack）
//   - xmetrics: 统一可观测性接口（指标、追踪），OpenTelemetry 实现
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 诊断日志与业务记录分离，诊断输出失败不影响记录写入
//   - 支持动态级别控制
package observability
