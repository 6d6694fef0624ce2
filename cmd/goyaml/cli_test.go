package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCLI executes rootCmd with args, returning combined stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	if stdin != "" {
		f, err := os.CreateTemp(t.TempDir(), "goyaml-stdin-*")
		require.NoError(t, err)
		_, err = f.WriteString(stdin)
		require.NoError(t, err)
		require.NoError(t, f.Close())

		old := os.Stdin
		in, err := os.Open(f.Name())
		require.NoError(t, err)
		os.Stdin = in
		t.Cleanup(func() { os.Stdin = old; in.Close() })
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	rootCmd.SetArgs(args)
	runErr := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	buf.ReadFrom(r)

	return buf.String(), runErr
}

func TestCheckValidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: [2, 3]\n"), 0o644))

	out, err := runCLI(t, "", "check", path)
	require.NoError(t, err)
	require.Equal(t, "ok\n", out)
}

func TestCheckInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2\n"), 0o644))

	_, err := runCLI(t, "", "check", path)
	require.Error(t, err)
}

func TestFmtRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: test\ncount: 3\n"), 0o644))

	out, err := runCLI(t, "", "fmt", path)
	require.NoError(t, err)
	require.Contains(t, out, "name: test")
	require.Contains(t, out, "count: 3")
}

func TestFmtFromStdin(t *testing.T) {
	out, err := runCLI(t, "key: value\n", "fmt")
	require.NoError(t, err)
	require.Equal(t, "key: value\n", out)
}
