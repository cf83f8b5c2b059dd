// Package xconf 加载 xlogfilectl 的 YAML/JSON 配置文件，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// Reload 通过互斥锁串行化，解析成功后用 atomic.Pointer 原子替换 koanf 实例；
// 解析失败时保留旧配置。Client 返回的实例是快照，Reload 后仍可用但数据过期，
// 需要最新值时每次重新调用 Client。
//
// # 热重载
//
// [Watcher] 基于 fsnotify 监视配置文件所在目录（兼容编辑器先写临时文件再
// rename 的保存方式），变更经防抖后调用 Reload 并通知回调。Run 阻塞到 ctx
// 取消，可以直接交给 xrun.Group 管理：
//
//	w, _ := xconf.NewWatcher(cfg, func(c xconf.Config, err error) {
//		if err == nil {
//			var lc LogConfig
//			_ = c.Unmarshal("log", &lc)
//			logger.SetLevel(lc.Level)
//		}
//	})
//	g.Go(w.Run)
package xconf
