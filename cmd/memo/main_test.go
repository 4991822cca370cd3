package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, tmpDir string)
		args         []string
		expectedExit int
	}{
		{
			name: "Successful command",
			setup: func(t *testing.T, tmpDir string) {
				writeFile(t, filepath.Join(tmpDir, "in.txt"), "hello")
			},
			args:         []string{"memo", "run", "-i", "in.txt", "--", "true"},
			expectedExit: 0,
		},
		{
			name:         "Command exit code is passed through",
			setup:        func(*testing.T, string) {},
			args:         []string{"memo", "run", "--", "sh", "-c", "exit 7"},
			expectedExit: 7,
		},
		{
			name:         "Missing command separator",
			setup:        func(*testing.T, string) {},
			args:         []string{"memo", "run", "-i", "in.txt"},
			expectedExit: 2,
		},
		{
			name:         "Version",
			setup:        func(*testing.T, string) {},
			args:         []string{"memo", "version"},
			expectedExit: 0,
		},
		{
			name:         "Clean empty cache",
			setup:        func(*testing.T, string) {},
			args:         []string{"memo", "clean"},
			expectedExit: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))

			tt.setup(t, tmpDir)

			originalWd, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			exitCode := run()
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_SecondInvocationSkips(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	writeFile(t, filepath.Join(tmpDir, "in.txt"), "hello")

	originalWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	os.Args = []string{
		"memo", "run", "-i", "in.txt", "-o", "out.txt",
		"--", "sh", "-c", "cat in.txt > out.txt",
	}

	assert.Equal(t, 0, run())
	assert.Equal(t, 0, run())

	data, err := os.ReadFile(filepath.Join(tmpDir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
