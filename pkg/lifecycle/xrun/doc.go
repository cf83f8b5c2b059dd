// Package xrun 管理 xlogfilectl 中并发运行的服务（stdin 读取、配置监视、
// 状态上报）的启动和协调关闭。
//
// 基于 errgroup：[Group] 在任一服务出错时取消全部服务；[Run] 更进一步，
// 任一服务返回或收到 SIGINT/SIGTERM 即停止全部服务，返回第一个错误或 *[SignalError]。
//
//	err := xrun.Run(ctx, nil, map[string]func(context.Context) error{
//		"pipe":  pipe,
//		"stats": xrun.Ticker(time.Minute, report),
//	})
//	if errors.Is(err, xrun.ErrSignal) {
//		// 正常退出
//	}
package xrun
