package xconf

// options 配置加载选项
type options struct {
	delim string
	tag   string
}

// Option 配置加载选项函数
type Option func(*options)

func defaultOptions() *options {
	return &options{
		delim: ".",
		tag:   "koanf",
	}
}

// WithDelim 设置配置键分隔符，默认 "."（如 "writer.max_records"），空字符串忽略
func WithDelim(delim string) Option {
	return func(o *options) {
		if delim != "" {
			o.delim = delim
		}
	}
}

// WithTag 设置 Unmarshal 使用的结构体标签名，默认 "koanf"，空字符串忽略
func WithTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.tag = tag
		}
	}
}
