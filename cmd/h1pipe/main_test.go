package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indigo-web/h1pipe/internal/requestgen"
	"github.com/stretchr/testify/require"
)

func TestReplay(t *testing.T) {
	capture := requestgen.Pipelined(requestgen.PlaintextRequest, 3)

	t.Run("stdin", func(t *testing.T) {
		for _, chunk := range []string{"1", "13", "4096"} {
			var stdout, stderr bytes.Buffer
			err := run([]string{"replay", "-chunk", chunk, "-"}, bytes.NewReader(capture), &stdout, &stderr)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
			require.Len(t, lines, 3)
			for _, line := range lines {
				require.Contains(t, line, `"path":"/plaintext"`)
				require.Contains(t, line, `"kind":"plaintext"`)
				require.Contains(t, line, `"remote":"stdin"`)
			}
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.http")
		require.NoError(t, os.WriteFile(path, []byte(requestgen.JSONRequest), 0o600))

		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"replay", "-trace", path}, nil, &stdout, &stderr))
		require.Contains(t, stdout.String(), `"kind":"json"`)
		require.Contains(t, stderr.String(), "GET /json HTTP/1.1 (json)")
	})

	t.Run("truncated", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		input := strings.NewReader("GET /plaintext HTTP/1.1\r\nHost: local")
		err := run([]string{"replay", "-"}, input, &stdout, &stderr)
		require.Error(t, err)
		require.Contains(t, stdout.String(), `"kind":"premature end of data"`)
	})

	t.Run("missing file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		err := run([]string{"replay", filepath.Join(t.TempDir(), "nope")}, nil, &stdout, &stderr)
		require.Error(t, err)
	})
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	for _, args := range [][]string{
		nil,
		{"unknown"},
		{"replay"},
		{"replay", "-chunk", "0", "-"},
		{"listen", "extra"},
	} {
		require.ErrorIs(t, run(args, nil, &stdout, &stderr), errUsage, args)
	}

	require.NoError(t, run([]string{"help"}, nil, &stdout, &stderr))
	require.Contains(t, stdout.String(), "usage: h1pipe")
}
