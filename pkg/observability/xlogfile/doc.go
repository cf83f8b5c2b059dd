// Package xlogfile 把应用记录写入本地滚动文件，并在文件写完后交给下游处理。
//
// # 轮转
//
// [Writer] 为每个文件维护一个修订号和记录计数：
//
//   - 按数量：第 maxRecords+1 条记录追加到当前文件后立即轮转，
//     触发轮转的 Write 在返回前同步执行完成回调。
//   - 按时间：当前文件第一条记录写入 maxAge 之后，由后台计时器轮转。
//
// 两种轮转共用一个 epoch 令牌，同一个文件只会被交付一次。
//
// # 完成回调
//
// 文件关闭后以路径调用 [WithOnFileCompleted] 注册的回调，典型用途是上传或
// 移动到待处理目录。回调的错误和 panic 只写诊断日志，写入器从不删除文件：
//
//   - 文件在交付前已被外部删除：记录诊断日志后跳过
//   - 关闭或确认文件失败：改名为 path.error 留在原目录
//
// # 序列化
//
// 默认的 [AutoSerializer] 原样写入 string、[]byte 和 encoding.TextMarshaler，
// 其他类型编码为单行 JSON。自定义序列化函数返回 [ErrSkipRecord] 可跳过记录，
// 被跳过的记录不计数。
//
// # 使用示例
//
//	w, err := xlogfile.New[Event]("/var/log/app/events",
//		xlogfile.WithMaxRecords(5000),
//		xlogfile.WithMaxAge(30*time.Second),
//		xlogfile.WithOnFileCompleted(upload),
//	)
//	if err != nil {
//		return err
//	}
//	defer w.Close(ctx)
//	_ = w.Write(ctx, ev)
//
// # 诊断与指标
//
// 运行期故障通过 xlog 输出（携带 component=xlogfile 和 session 字段），
// 并累计在 [Writer.Stats] 中；配置 [WithObserver] 后 rotate、complete、
// quarantine 三类操作会产生 xmetrics 跨度和指标。
package xlogfile
