package xmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nilObserver struct{}

func (nilObserver) Start(context.Context, SpanOptions) (context.Context, Span) {
	return nil, nil
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInternal, "Internal"},
		{KindProducer, "Producer"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		observer Observer
	}{
		{"nil observer", context.Background(), nil},
		{"nil ctx", nil, NoopObserver{}},
		{"observer 返回 nil", context.Background(), nilObserver{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, span := Start(tt.ctx, tt.observer, SpanOptions{Operation: "rotate"})
			assert.NotNil(t, ctx)
			assert.NotNil(t, span)
			span.End(Result{})
		})
	}
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, Attr{Key: "path", Value: "/tmp/a.log"}, String("path", "/tmp/a.log"))
	assert.Equal(t, Attr{Key: "finalize", Value: true}, Bool("finalize", true))
	assert.Equal(t, Attr{Key: "revision", Value: 3}, Int("revision", 3))
	assert.Equal(t, Attr{Key: "records", Value: int64(7)}, Int64("records", 7))
	assert.Equal(t, Attr{Key: "x", Value: 1.5}, Any("x", 1.5))
}
