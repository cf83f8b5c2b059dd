package xjson_test

import (
	"fmt"

	"github.com/omeyang/xlogfile/pkg/util/xjson"
)

func ExampleLine() {
	type User struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	line, _ := xjson.Line(User{Name: "Alice", Age: 30})
	fmt.Println(line)
	// Output:
	// {"name":"Alice","age":30}
}

func ExampleCompactObject() {
	line, _ := xjson.CompactObject(`{ "level": "info",  "msg": "ready" }`)
	fmt.Println(line)

	_, err := xjson.CompactObject("[1, 2]")
	fmt.Println(err)
	// Output:
	// {"level":"info","msg":"ready"}
	// xjson: not a json object
}
