// Package xfile 提供日志目录与日志文件的文件系统辅助函数。
//
// 本包服务于 xlogfile 等需要在固定目录下滚动生成文件的组件：
//
//   - EnsureDirPath: 创建日志目录（含父目录），已存在时不报错
//   - JoinName: 将生成的文件名拼接到目录下，拒绝任何能逃逸目录的名称
//   - Exists: 区分"文件不存在"与"无法判断"两种情况
//   - Quarantine: 将处理失败的文件重命名为带后缀的隔离文件
//
// # 文件名约束
//
// JoinName 只接受单一路径段：不含 "/" 或 "\"，不是 "." 或 ".."，不含空字节。
// 以点开头的合法文件名（如 "..config"、".hidden"）不受影响：
//
//	JoinName("/var/spool", "log-00001.log") // ✓ "/var/spool/log-00001.log"
//	JoinName("/var/spool", "../passwd")     // ✗ ErrInvalidName
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.JoinName(dir, name)
//	if errors.Is(err, xfile.ErrInvalidName) {
//	    // 文件名生成器返回了非法名称
//	}
package xfile
