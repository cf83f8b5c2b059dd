package xlogfile_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
	"github.com/omeyang/xlogfile/pkg/observability/xlogfile"
)

func ExampleWriter() {
	dir, _ := os.MkdirTemp("", "xlogfile-example")
	defer os.RemoveAll(dir)

	w, err := xlogfile.New[string](dir,
		xlogfile.WithMaxRecords(2),
		xlogfile.WithMaxAge(time.Hour),
		xlogfile.WithLogger(xlog.Discard()),
		xlogfile.WithFileNameProvider(func(rev int) string { return fmt.Sprintf("app-%d.log", rev) }),
		xlogfile.WithOnFileCompleted(func(_ context.Context, path string) error {
			data, _ := os.ReadFile(path)
			fmt.Printf("completed %s: %q\n", filepath.Base(path), data)
			return nil
		}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	for _, rec := range []string{"a", "b", "c", "d"} {
		_ = w.Write(ctx, rec)
	}
	fmt.Println("records in current file:", w.Stats().Records)
	_ = w.Close(ctx)
	// Output:
	// completed app-1.log: "a\nb\nc\n"
	// records in current file: 1
}

func ExampleJSONSerializer() {
	type login struct {
		User string `json:"user"`
	}

	line, _ := xlogfile.JSONSerializer[login]()(login{User: "alice"})
	fmt.Println(line)
	// Output: {"user":"alice"}
}
