package xjson

import (
	"encoding/json"
	"strings"
	"testing"
)

func FuzzLine(f *testing.F) {
	f.Add("hello")
	f.Add("")
	f.Add("special chars: <>&\"'")
	f.Add("中文字符串")
	f.Add("\x00\x01\x02") // 控制字符
	f.Add("a\nb\tc")      // 含换行和 tab

	f.Fuzz(func(t *testing.T, s string) {
		got, err := Line(s)
		if err != nil {
			t.Fatalf("Line(%q) error: %v", s, err)
		}
		if strings.ContainsAny(got, "\r\n") {
			t.Errorf("Line(%q) contains a line break: %s", s, got)
		}
		if !json.Valid([]byte(got)) {
			t.Errorf("Line(%q) produced invalid JSON: %s", s, got)
		}
	})
}

func FuzzCompactObject(f *testing.F) {
	f.Add(`{"a":1}`)
	f.Add("{\n  \"a\": [1, 2]\n}")
	f.Add("[]")
	f.Add(`{"a":`)
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		got, err := CompactObject(s)
		if err != nil {
			return
		}
		if strings.ContainsAny(got, "\r\n") {
			t.Errorf("CompactObject(%q) contains a line break: %s", s, got)
		}
		if !json.Valid([]byte(got)) || got[0] != '{' {
			t.Errorf("CompactObject(%q) produced a non-object: %s", s, got)
		}
	})
}
