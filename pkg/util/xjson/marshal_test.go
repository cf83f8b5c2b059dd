package xjson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUser 用于测试的用户结构体，避免在多个测试函数中重复定义。
type testUser struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestLine(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "struct", input: testUser{Name: "Alice", Age: 30}, want: `{"name":"Alice","age":30}`},
		{name: "map", input: map[string]int{"a": 1}, want: `{"a":1}`},
		{name: "nil", input: nil, want: "null"},
		{name: "slice", input: []int{1, 2, 3}, want: "[1,2,3]"},
		{name: "含换行的字符串", input: "a\nb", want: `"a\nb"`},
		{name: "html 转义", input: "<a&b>", want: `"\u003ca\u0026b\u003e"`},
		{name: "error_NaN", input: math.NaN(), wantErr: true},
		{name: "error_channel", input: make(chan int), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Line(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMarshal)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "已压缩", input: `{"a":1}`, want: `{"a":1}`},
		{name: "去掉空白", input: "  { \"a\" : [1, 2],\n \"b\": {} }\t", want: `{"a":[1,2],"b":{}}`},
		{name: "空对象", input: "{}", want: "{}"},
		{name: "空串", input: "", wantErr: true},
		{name: "只有空白", input: " \t ", wantErr: true},
		{name: "数组", input: "[1,2]", wantErr: true},
		{name: "字符串", input: `"x"`, wantErr: true},
		{name: "非法", input: `{"a":`, wantErr: true},
		{name: "对象后有多余内容", input: `{"a":1} {}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompactObject(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotObject)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
