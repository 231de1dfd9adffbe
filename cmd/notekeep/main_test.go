package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notekeep"
)

// run executes the root command with args, resetting every flag first since
// the commands keep their state in package variables.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestCLI_CRUD(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized empty note store")
	assert.DirExists(t, filepath.Join(dir, ".notekeep"))

	out, err = run(t, "create", "--dir", dir, "--title", "Groceries", "--body", "milk", "--tags", "home, errands ,")
	require.NoError(t, err)
	assert.Equal(t, "Created note 1\n", out)

	out, err = run(t, "get", "1", "--dir", dir, "--json")
	require.NoError(t, err)
	var note notekeep.Note
	require.NoError(t, json.Unmarshal([]byte(out), &note))
	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, []string{"home", "errands"}, note.Tags)
	assert.Equal(t, int64(1), note.Version)

	out, err = run(t, "update", "1", "--dir", dir, "--title", "Shopping", "--archived")
	require.NoError(t, err)
	assert.Equal(t, "Updated note 1 (v2)\n", out)

	out, err = run(t, "get", "1", "--dir", dir, "--yaml")
	require.NoError(t, err)
	var updated notekeep.Note
	require.NoError(t, yaml.Unmarshal([]byte(out), &updated))
	assert.Equal(t, "Shopping", updated.Title)
	assert.Equal(t, "milk", updated.Body, "unset flags keep their value")
	assert.Equal(t, []string{"home", "errands"}, updated.Tags)
	assert.True(t, updated.Archived)

	out, err = run(t, "get", "1", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Title:   Shopping")
	assert.Contains(t, out, "Archived")

	out, err = run(t, "delete", "1", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Deleted note 1\n", out)

	_, err = run(t, "get", "1", "--dir", dir)
	assert.ErrorIs(t, err, notekeep.ErrNotFound)

	_, err = run(t, "delete", "1", "--dir", dir)
	assert.NoError(t, err, "deleting a missing note succeeds")
}

func TestCLI_List(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Your Notes (0)\n", out)

	_, err = run(t, "create", "--dir", dir, "--title", "a", "--tags", "work")
	require.NoError(t, err)
	_, err = run(t, "create", "--dir", dir, "--title", "b", "--tags", "home, work")
	require.NoError(t, err)

	out, err = run(t, "list", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Your Notes (2)\n[1] a #work\n[2] b #home #work\n", out)

	out, err = run(t, "list", "--dir", dir, "--tag", "home")
	require.NoError(t, err)
	assert.Equal(t, "Your Notes (1)\n[2] b #home #work\n", out)

	out, err = run(t, "list", "--dir", dir, "--tag", "missing")
	require.NoError(t, err)
	assert.Equal(t, "No notes match the filter\n", out)

	out, err = run(t, "list", "--dir", dir, "--json")
	require.NoError(t, err)
	var notes []notekeep.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	assert.Len(t, notes, 2)
}

func TestCLI_Adapters(t *testing.T) {
	for _, name := range []string{"badger", "sqlite"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := run(t, "create", "--dir", dir, "--adapter", name, "--title", "x")
			require.NoError(t, err)

			out, err := run(t, "list", "--dir", dir, "--adapter", name)
			require.NoError(t, err)
			assert.Equal(t, "Your Notes (1)\n[1] x\n", out)
		})
	}
}

func TestCLI_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := "adapter: sqlite\nsystem_dir: .data\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".notekeep.yaml"), []byte(config), 0644))

	_, err := run(t, "create", "--dir", dir, "--title", "configured")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".data", "notes.db"))

	t.Run("explicit config with relative path", func(t *testing.T) {
		cfgDir := t.TempDir()
		cfgPath := filepath.Join(cfgDir, "custom.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("path: store\n"), 0644))

		_, err := run(t, "create", "--config", cfgPath, "--title", "elsewhere")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(cfgDir, "store", ".notekeep", "notes"))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: loud\n"), 0644))

		_, err := run(t, "list", "--config", cfgPath)
		assert.ErrorContains(t, err, "unknown log level")
	})
}

func TestCLI_UpdateVersionConflict(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "create", "--dir", dir, "--title", "v1")
	require.NoError(t, err)
	_, err = run(t, "update", "1", "--dir", dir, "--title", "v2")
	require.NoError(t, err)

	_, err = run(t, "update", "1", "--dir", dir, "--title", "stale", "--if-version", "1")
	assert.ErrorIs(t, err, notekeep.ErrVersionConflict)
}

func TestCLI_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		_, err := run(t, "get", "--dir", t.TempDir(), "--", id)
		assert.ErrorContains(t, err, "invalid note id", id)
	}
}

func TestCLI_LockTimeout(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", "--dir", dir)
	require.NoError(t, err)

	// A lock owned by a live process (this one) is never broken.
	lockPath := filepath.Join(dir, ".notekeep", ".lock")
	require.NoError(t, os.WriteFile(lockPath, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644))

	_, err = run(t, "create", "--dir", dir, "--title", "blocked", "--timeout", "100ms")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Once the owner is gone the next command takes the lock over.
	dead := exec.Command(os.Args[0], "-test.run=^$")
	require.NoError(t, dead.Run())
	require.NoError(t, os.WriteFile(lockPath, []byte(fmt.Sprintf("%d\n", dead.ProcessState.Pid())), 0644))

	out, err := run(t, "create", "--dir", dir, "--title", "recovered", "--timeout", "2s")
	require.NoError(t, err)
	assert.Equal(t, "Created note 1\n", out)
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "notekeep version "))
	assert.Contains(t, out, notekeep.Version)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseTags(" a, ,b "))
	assert.Equal(t, []string{}, parseTags(""))
}
