// Package xmetrics 为 xlogfile 提供最小化的可观测性接口（metrics + tracing）。
//
// 写入器只依赖 [Observer] / [Span] / [Attr] 三个抽象；默认 [NoopObserver]
// 不产生任何开销，接入 OpenTelemetry 时使用 [NewOTelObserver]。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xlogfile",
//		Operation: "complete",
//		Kind:      xmetrics.KindProducer,
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
//   - xlogfile.operation.total     操作次数（按 component/operation/status 分组）
//   - xlogfile.operation.duration  操作耗时（秒）
//
// xlogfile 上报的 operation：rotate（打开新文件）、complete（关闭并交付完成文件）、
// quarantine（把无法交付的文件改名为 .error）。
package xmetrics
