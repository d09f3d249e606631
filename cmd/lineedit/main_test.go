package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	path := writeScript(t, "s.led", "a hello\\nworld\ns/o/0/g\n")
	out, err := execute(t, "run", path)
	require.NoError(t, err)
	require.Equal(t, "hello\nw0rld\n", out)
}

func TestRun_SeedAndNumber(t *testing.T) {
	seed := writeScript(t, "seed.txt", "one\ntwo\nthree\n")
	path := writeScript(t, "s.led", "?one?\n")
	out, err := execute(t, "run", path, "--seed", seed, "--number")
	require.NoError(t, err)
	require.Equal(t, "1> one\n2  two\n3  three\n", out)
}

func TestRun_Failure(t *testing.T) {
	path := writeScript(t, "s.led", "d\n")
	_, err := execute(t, "run", path)
	require.ErrorContains(t, err, "cannot delete from an empty buffer")
}

func TestCheck(t *testing.T) {
	path := writeScript(t, "s.led", "# comment\na x\n1,$d\n")
	out, err := execute(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, out, "2 commands")

	bad := writeScript(t, "bad.led", "a x\nz\n")
	_, err = execute(t, "check", bad)
	require.ErrorContains(t, err, "line 2")
}

func TestRun_RequiresScript(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)
}
