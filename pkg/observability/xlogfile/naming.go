package xlogfile

import (
	"fmt"
	"time"
)

// fileTimeLayout 文件名中的时间格式，精确到毫秒，字段之间全部用 '-' 分隔
const fileTimeLayout = "2006-01-02-15-04-05.000"

// DefaultFileName 返回默认的文件名生成函数
//
// 生成形如 log-file-2024-05-01-08-30-00-123-00001.log 的名称：
// UTC 时间（毫秒精度）加 5 位补零的修订号。修订号在同一 Writer 内单调递增，
// 同一毫秒内的多次轮转也不会重名。
func DefaultFileName(now func() time.Time) func(revision int) string {
	if now == nil {
		now = time.Now
	}
	return func(revision int) string {
		ts := now().UTC().Format(fileTimeLayout)
		// Go 的毫秒格式只能以 '.' 或 ',' 引出
		ts = ts[:len(ts)-4] + "-" + ts[len(ts)-3:]
		return fmt.Sprintf("log-file-%s-%05d.log", ts, revision)
	}
}
