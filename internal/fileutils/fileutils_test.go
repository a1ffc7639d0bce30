package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/lease-audit/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "lease.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestRequireFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "invoice.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("%PDF"), 0600))

	assert.NoError(t, fileutils.RequireFile(testFile))

	err := fileutils.RequireFile(filepath.Join(tmpDir, "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")

	err = fileutils.RequireFile(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2026", "audit.txt")
	require.NoError(t, fileutils.WriteFile(path, []byte("report"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report", string(data))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirectoryExists_CurrentDir(t *testing.T) {
	assert.NoError(t, fileutils.EnsureDirectoryExists("."))
	assert.NoError(t, fileutils.EnsureDirectoryExists(""))
}
