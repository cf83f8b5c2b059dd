// Package xrotate 为诊断日志提供按大小轮转的输出目标。
//
// xlogfile 把业务记录写入按条数/时间滚动的文件；它自身的诊断日志
// （轮转失败、下游回调报错等）需要另一个与之隔离的输出。本包基于
// lumberjack v2 实现该输出：单文件超过上限后改名为带时间戳的备份，
// 按备份数量和天数清理，可选 gzip 压缩。
//
// # 文件权限
//
// lumberjack 默认使用 0600 权限创建日志文件。
// 如需不同权限（如 0644），使用 WithFileMode 选项。
//
// # 递归写入
//
// 内部错误通过 WithOnError 回调通知，而不是写日志：Rotator 本身就是日志
// 输出目标，写失败时再写日志会形成递归。
package xrotate
