package xjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMarshal 值无法序列化为 JSON
	ErrMarshal = errors.New("xjson: marshal failed")

	// ErrNotObject 文本不是合法的 JSON 对象
	ErrNotObject = errors.New("xjson: not a json object")
)

// Line 将 v 序列化为单行 JSON
func Line(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return string(data), nil
}

// CompactObject 校验 s 是 JSON 对象并返回压缩后的单行形式
//
// 首尾空白被忽略。
func CompactObject(s string) (string, error) {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", ErrNotObject
	}
	var buf bytes.Buffer
	buf.Grow(len(trimmed))
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotObject, err)
	}
	return buf.String(), nil
}
