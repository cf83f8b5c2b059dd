package xmetrics

// String 创建字符串属性。
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Bool 创建布尔属性。
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Int 创建整数属性。
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

// Int64 创建 int64 属性。
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

// Any 创建任意类型属性。
func Any(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}
