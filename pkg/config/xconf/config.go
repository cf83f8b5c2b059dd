package xconf

import "github.com/knadh/koanf/v2"

// Format 配置文件格式
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Config 配置接口
//
// 只提供增值功能，基础读取直接使用 Client() 返回的 koanf 实例。
type Config interface {
	// Client 返回当前 koanf 实例快照
	Client() *koanf.Koanf

	// Unmarshal 将 path 下的配置反序列化到 target，path 为空时反序列化整个配置
	Unmarshal(path string, target any) error

	// Reload 重新读取配置文件，失败时保留旧配置。
	// 从字节数据创建的 Config 返回 ErrNotReloadable。
	Reload() error

	// Path 返回配置文件路径，从字节数据创建的 Config 返回空字符串
	Path() string

	// Format 返回配置格式
	Format() Format
}
