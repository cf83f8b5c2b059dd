package xlogfile

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain 在所有测试完成后检测 goroutine 泄漏（轮转计时器、Close 等待协程）。
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
