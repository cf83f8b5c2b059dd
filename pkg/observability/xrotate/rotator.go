package xrotate

import "io"

// 编译时断言：Rotator 接口是 io.WriteCloser 的超集
var _ io.WriteCloser = (Rotator)(nil)

// Rotator 按大小轮转的字节流输出目标
//
// 隐式实现 [io.WriteCloser]，可直接作为 xlog 的输出。
// 与 xlogfile.Writer 的区别：Rotator 面向无结构字节流（诊断日志），
// 轮转后旧文件改名为备份并按数量/天数清理；xlogfile.Writer 面向记录，
// 轮转后把完整文件交给下游处理。
//
// 约定：
//   - Write 必须是并发安全的
//   - Close 后调用 Write 或 Rotate 返回 [ErrClosed]
//   - Rotate 可以在任意时刻调用
type Rotator interface {
	// Write 写入数据，达到大小上限时自动轮转
	Write(p []byte) (n int, err error)

	// Close 关闭轮转器，重复调用返回 [ErrClosed]
	Close() error

	// Rotate 手动触发轮转
	Rotate() error
}
