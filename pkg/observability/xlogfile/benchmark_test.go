package xlogfile

import (
	"context"
	"testing"
	"time"

	"github.com/omeyang/xlogfile/pkg/observability/xlog"
)

func BenchmarkWriter_Write(b *testing.B) {
	w, err := New[string](b.TempDir(),
		WithMaxRecords(10000),
		WithMaxAge(time.Hour),
		WithLogger(xlog.Discard()),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close(context.Background())

	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Write(ctx, "benchmark record with some payload")
	}
}

func BenchmarkWriter_WriteParallel(b *testing.B) {
	w, err := New[map[string]int](b.TempDir(),
		WithMaxRecords(10000),
		WithMaxAge(time.Hour),
		WithLogger(xlog.Discard()),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer w.Close(context.Background())

	rec := map[string]int{"a": 1, "b": 2}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_ = w.Write(ctx, rec)
		}
	})
}
