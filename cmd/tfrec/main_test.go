package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_GenWriteInspect(t *testing.T) {
	dir := t.TempDir()
	arrows := filepath.Join(dir, "data.arrows")

	out, err := runCmd(t, "gen", "-out", arrows, "-rows", "4", "-genes", "6", "-tokens", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 rows (6 genes, 3 tokens)")

	out, err = runCmd(t, "write", "-in", arrows, "-root", dir, "-out", "TEST.tfrecords", "-manifest")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 records")

	_, err = os.Stat(filepath.Join(dir, "TEST.tfrecords.manifest.json"))
	require.NoError(t, err)

	out, err = runCmd(t, "inspect", "-in", "TEST.tfrecords", "-root", dir, "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "row 0: ")
	assert.Contains(t, out, "row 1: ")
	assert.NotContains(t, out, "row 2: ")
	assert.Contains(t, out, "4 records")
	assert.Contains(t, out, "manifest ok: 4 records")
}

func TestRun_WriteSynthetic(t *testing.T) {
	dir := t.TempDir()

	out, err := runCmd(t, "write", "-root", dir, "-rows", "3", "-genes", "5", "-tokens", "2", "-codec", "json", "-buffer", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 records")

	out, err = runCmd(t, "inspect", "-root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "3 records")
	assert.NotContains(t, out, "manifest ok")
}

func TestRun_Errors(t *testing.T) {
	_, err := runCmd(t)
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = runCmd(t, "frobnicate")
	assert.ErrorContains(t, err, "unknown command")

	_, err = runCmd(t, "gen")
	assert.ErrorContains(t, err, "-out is required")

	_, err = runCmd(t, "write", "-store", "ftp", "-root", t.TempDir())
	assert.ErrorContains(t, err, "unknown store")

	_, err = runCmd(t, "write", "-store", "s3", "-rows", "1")
	assert.ErrorContains(t, err, "-bucket is required")

	_, err = runCmd(t, "write", "-codec", "xml")
	assert.ErrorContains(t, err, "unknown codec")

	_, err = runCmd(t, "write", "-rows", "-1")
	assert.Error(t, err)

	_, err = runCmd(t, "inspect", "-root", t.TempDir(), "-in", "missing.tfrecords")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "[1 2]", preview([]int{1, 2}))
	assert.Equal(t, "[1 2 3 4 ...]", preview([]int{1, 2, 3, 4, 5}))
}
