package dummy

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, conn *Conn, size int) (chunks []string) {
	buff := make([]byte, size)

	for {
		n, err := conn.Read(buff)
		if err == io.EOF {
			return chunks
		}

		require.NoError(t, err)
		chunks = append(chunks, string(buff[:n]))
	}
}

func TestConn(t *testing.T) {
	t.Run("no looping", func(t *testing.T) {
		conn := NewConn([]byte("Hello"), []byte("world!")).Once()
		require.Equal(t, []string{"Hello", "world!"}, readAll(t, conn, 64))

		_, err := conn.Read(make([]byte, 1))
		require.EqualError(t, err, io.EOF.Error())
	})

	t.Run("looped slices", func(t *testing.T) {
		slices := []string{"Hello", "world", "!"}
		conn := NewConn([]byte(slices[0]), []byte(slices[1]), []byte(slices[2]))
		buff := make([]byte, 64)

		for i := 0; i < len(slices)*2; i++ {
			n, err := conn.Read(buff)
			require.NoError(t, err)
			require.Equal(t, slices[i%len(slices)], string(buff[:n]))
		}
	})

	t.Run("small buffer", func(t *testing.T) {
		conn := NewConn([]byte("Hello"), []byte("world")).Once()
		require.Equal(t, []string{"He", "ll", "o", "wo", "rl", "d"}, readAll(t, conn, 2))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewConn().Read(make([]byte, 1))
		require.Equal(t, io.EOF, err)
	})

	t.Run("journaling", func(t *testing.T) {
		conn := NewConn()
		_, _ = conn.Write([]byte("Hello, "))
		_, _ = conn.Write([]byte("world!"))
		require.Equal(t, "Hello, world!", conn.Written())

		nop := NewConn().Nop()
		_, _ = nop.Write([]byte("Hello"))
		require.Empty(t, nop.Written())
	})
}
