package xlogfile

import (
	"encoding"
	"fmt"

	"github.com/omeyang/xlogfile/pkg/util/xjson"
)

// TextSerializer 原样写入字符串记录
//
// 每条记录占一行，调用方保证记录内不含换行符。
func TextSerializer(rec string) (string, error) {
	return rec, nil
}

// JSONSerializer 返回把记录编码为单行 JSON 的序列化函数
//
// 编码结果为 null（nil 指针、nil map 等）时返回 [ErrSkipRecord]。
func JSONSerializer[R any]() func(R) (string, error) {
	return func(rec R) (string, error) {
		return encodeJSON(rec)
	}
}

// AutoSerializer 返回按记录能力选择编码方式的序列化函数，是 Writer 的默认值
//
//   - string、[]byte：原样写入
//   - encoding.TextMarshaler：写入 MarshalText 的结果
//   - nil 接口值：跳过
//   - 其他：单行 JSON
func AutoSerializer[R any]() func(R) (string, error) {
	return func(rec R) (string, error) {
		switch v := any(rec).(type) {
		case nil:
			return "", ErrSkipRecord
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case encoding.TextMarshaler:
			b, err := v.MarshalText()
			if err != nil {
				return "", fmt.Errorf("marshal text: %w", err)
			}
			return string(b), nil
		}
		return encodeJSON(rec)
	}
}

func encodeJSON(v any) (string, error) {
	line, err := xjson.Line(v)
	if err != nil {
		return "", err
	}
	if line == "null" {
		return "", ErrSkipRecord
	}
	return line, nil
}
