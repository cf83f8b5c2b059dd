package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xlogfile/pkg/observability/xrotate"
)

func ExampleNewLumberjack() {
	dir, _ := os.MkdirTemp("", "xrotate-example")
	defer os.RemoveAll(dir)

	r, err := xrotate.NewLumberjack(filepath.Join(dir, "xlogfile-diag.log"),
		xrotate.WithMaxSize(10),
		xrotate.WithMaxBackups(2),
		xrotate.WithCompress(false),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	n, _ := r.Write([]byte("rotation failed\n"))
	fmt.Println(n)
	// Output: 16
}
