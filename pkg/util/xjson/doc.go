// Package xjson 提供面向行式日志的 JSON 编码工具函数。
//
// # 功能概览
//
//   - [Line]: 将任意值序列化为单行 JSON，失败时返回 [ErrMarshal] 包装的错误。
//   - [CompactObject]: 校验一段文本是 JSON 对象并去掉多余空白，
//     非对象或非法 JSON 返回 [ErrNotObject]。
//
// 两个函数的结果都不含换行符，可以直接作为一行写入日志文件。
//
// # 注意事项
//
// 遵循 [encoding/json] 默认行为，HTML 特殊字符（<, >, &）会被转义为
// Unicode 形式（\u003c, \u003e, \u0026）。
package xjson
