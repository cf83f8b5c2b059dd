package xlogfile

import "time"

// Stats 写入器状态快照
type Stats struct {
	// Revision 当前文件的修订号，未初始化时为 0
	Revision int
	// Records 当前文件已写入的记录数，轮转后归零
	Records int
	// Path 当前文件路径，没有打开的文件时为空
	Path string
	// Deadline 当前文件的到期时间，未启动计时器时为零值
	Deadline time.Time
	// LastRotation 最近一次轮转的时间，从未轮转时为零值
	LastRotation time.Time

	// Completed 成功交付的文件数（未配置回调时关闭即算交付）
	Completed uint64
	// Missing 交付时已不存在的文件数
	Missing uint64
	// Quarantined 被改名为 .error 的文件数
	Quarantined uint64
	// HookFailures 完成回调返回错误或 panic 的次数
	HookFailures uint64
	// Dropped 因序列化失败或 I/O 错误丢弃的记录数
	Dropped uint64
	// Skipped 序列化函数要求跳过的记录数
	Skipped uint64
	// Collisions 新文件名与已有文件冲突的次数
	Collisions uint64
}

// Stats 返回写入器状态快照
func (w *Writer[R]) Stats() Stats {
	w.mu.Lock()
	s := Stats{
		Revision:     w.revision,
		Records:      w.count,
		Path:         w.path,
		Deadline:     w.deadline,
		LastRotation: w.lastRotation,
	}
	w.mu.Unlock()

	s.Completed = w.stats.completed.Load()
	s.Missing = w.stats.missing.Load()
	s.Quarantined = w.stats.quarantined.Load()
	s.HookFailures = w.stats.hookFailures.Load()
	s.Dropped = w.stats.dropped.Load()
	s.Skipped = w.stats.skipped.Load()
	s.Collisions = w.stats.collisions.Load()
	return s
}
