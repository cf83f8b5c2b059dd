package xlogfile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	mu       sync.Mutex
	recs     []string
	err      error
	panicMsg string
	closeErr error
	closed   bool
}

func (m *memWriter) Write(_ context.Context, rec string) error {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return m.err
}

func (m *memWriter) Close(context.Context) error {
	m.closed = true
	return m.closeErr
}

type writeOnly struct{ n int }

func (w *writeOnly) Write(context.Context, string) error {
	w.n++
	return nil
}

func TestFanout_Isolation(t *testing.T) {
	logger, buf := newTestLogger(t)
	ok := &memWriter{}
	failing := &memWriter{err: errors.New("disk full")}
	panicking := &memWriter{panicMsg: "broken writer"}

	f := NewFanout[string](logger, failing, panicking, nil, ok)
	require.NoError(t, f.Write(context.Background(), "a"))
	require.NoError(t, f.Write(context.Background(), "b"))

	assert.Equal(t, []string{"a", "b"}, ok.recs)
	assert.Equal(t, []string{"a", "b"}, failing.recs)
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "broken writer")
}

func TestFanout_Close(t *testing.T) {
	closeErr := errors.New("flush failed")
	a := &memWriter{}
	b := &memWriter{closeErr: closeErr}
	c := &writeOnly{}

	f := NewFanout[string](nil, a, b, c)
	require.NoError(t, f.Write(context.Background(), "x"))

	err := f.Close(context.Background())
	require.ErrorIs(t, err, closeErr)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Equal(t, 1, c.n)
}

func TestFanout_Writers(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	w1, _ := newTestWriter(t, dir1)
	w2, _ := newTestWriter(t, dir2, WithSerializer(func(s string) (string, error) { return "[" + s + "]", nil }))

	f := NewFanout[string](nil, w1, w2)
	require.NoError(t, f.Write(context.Background(), "rec"))

	assert.Equal(t, "rec\n", readFile(t, w1.Stats().Path))
	assert.Equal(t, "[rec]\n", readFile(t, w2.Stats().Path))
	require.NoError(t, f.Close(context.Background()))
}
