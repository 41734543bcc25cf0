package transport

import (
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/indigo-web/h1pipe/config"
	"github.com/indigo-web/h1pipe/http/status"
	"github.com/indigo-web/h1pipe/transport/dummy"
	"github.com/stretchr/testify/require"
)

func newSource(chunkSize int, data ...string) *Source {
	chunks := make([][]byte, len(data))
	for i, d := range data {
		chunks[i] = []byte(d)
	}

	cfg := config.Default().NET
	cfg.ReadBufferSize = chunkSize

	return NewSource(dummy.NewConn(chunks...).Once(), cfg)
}

func TestSource(t *testing.T) {
	t.Run("accumulates until consumed", func(t *testing.T) {
		src := newSource(64, "Hello, ", "world")

		result, err := src.Read()
		require.NoError(t, err)
		require.Equal(t, "Hello, ", result.Buffer.String())
		require.False(t, result.IsCompleted)
		src.AdvanceTo(result.Buffer.Start(), result.Buffer.End())

		result, err = src.Read()
		require.NoError(t, err)
		require.Equal(t, "Hello, world", result.Buffer.String())
		src.AdvanceTo(result.Buffer.Seek(result.Buffer.Start(), 7), result.Buffer.End())
		require.Equal(t, 5, src.Buffered())

		result, err = src.Read()
		require.NoError(t, err)
		require.Equal(t, "world", result.Buffer.String())
		require.True(t, result.IsCompleted)
		require.Equal(t, int64(7), result.Buffer.Start().Index())
	})

	t.Run("unexamined bytes are re-presented", func(t *testing.T) {
		src := newSource(64, "Hello", "world")

		result, err := src.Read()
		require.NoError(t, err)
		require.Equal(t, "Hello", result.Buffer.String())
		src.AdvanceTo(result.Buffer.Start(), result.Buffer.Seek(result.Buffer.Start(), 2))

		result, err = src.Read()
		require.NoError(t, err)
		require.Equal(t, "Hello", result.Buffer.String())
	})

	t.Run("chunks are split by the buffer size", func(t *testing.T) {
		src := newSource(4, "Hello, world")
		var sizes []int

		for {
			result, err := src.Read()
			require.NoError(t, err)
			if result.IsCompleted {
				require.Equal(t, "Hello, world", result.Buffer.String())
				break
			}

			sizes = append(sizes, result.Buffer.Len())
			src.AdvanceTo(result.Buffer.Start(), result.Buffer.End())
		}

		require.Equal(t, []int{4, 8, 12}, sizes)
	})

	t.Run("released memory is reused", func(t *testing.T) {
		src := newSource(4, "abcd", "efgh", "ijkl")

		for _, want := range []string{"abcd", "efgh", "ijkl"} {
			result, err := src.Read()
			require.NoError(t, err)
			require.Equal(t, want, result.Buffer.String())
			require.True(t, result.Buffer.IsSingleSegment())
			src.AdvanceTo(result.Buffer.End(), result.Buffer.End())
			require.Zero(t, src.Buffered())
		}

		require.Equal(t, 1, src.free.Len())
	})

	t.Run("completed source is not read anymore", func(t *testing.T) {
		src := newSource(64)

		for i := 0; i < 3; i++ {
			result, err := src.Read()
			require.NoError(t, err)
			require.True(t, result.IsCompleted)
			require.True(t, result.Buffer.IsEmpty())
			src.AdvanceTo(result.Buffer.End(), result.Buffer.End())
		}
	})

	t.Run("advancing out of range", func(t *testing.T) {
		src := newSource(64, "Hello")
		result, err := src.Read()
		require.NoError(t, err)
		src.AdvanceTo(result.Buffer.End(), result.Buffer.End())

		require.Panics(t, func() {
			src.AdvanceTo(result.Buffer.Start(), result.Buffer.End())
		})
	})
}

type failingReader struct {
	err error
}

func (f failingReader) Read([]byte) (int, error) {
	return 0, f.err
}

func TestSourceErrors(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		opErr := &net.OpError{Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded}
		src := NewSource(failingReader{err: opErr}, config.Default().NET)
		_, err := src.Read()
		require.ErrorIs(t, err, status.ErrRequestTimeout)
	})

	t.Run("reset", func(t *testing.T) {
		reset := errors.New("connection reset by peer")
		src := NewSource(failingReader{err: reset}, config.Default().NET)
		_, err := src.Read()
		require.ErrorIs(t, err, reset)
	})

	t.Run("pipe deadline", func(t *testing.T) {
		client, server := net.Pipe()
		defer func() {
			_ = client.Close()
			_ = server.Close()
		}()

		cfg := config.Default().NET
		cfg.ReadTimeout = -time.Second
		_, err := NewSource(server, cfg).Read()
		require.ErrorIs(t, err, status.ErrRequestTimeout)
	})

	t.Run("empty reader", func(t *testing.T) {
		src := NewSource(io.MultiReader(), config.Default().NET)
		result, err := src.Read()
		require.NoError(t, err)
		require.True(t, result.IsCompleted)
	})
}

func TestSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture")
	require.NoError(t, os.WriteFile(path, []byte("GET / HTTP/1.1\r\n\r\n"), 0o600))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	src := NewSource(file, config.Default().NET)
	result, err := src.Read()
	require.NoError(t, err)
	require.Equal(t, "GET / HTTP/1.1\r\n\r\n", result.Buffer.String())
}
