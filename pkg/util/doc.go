// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、文件名校验、存在性检查、隔离改名
//   - xjson: JSON 工具，单行编码和对象压缩
//
// 设计原则：
//   - 提供常用的文件和路径操作封装
//   - 安全处理路径遍历
//   - 输出适合按行写入的文本
package util
