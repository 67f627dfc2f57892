package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	newLogger = func(string, bool) (*zap.Logger, error) {
		return zap.NewNop(), nil
	}
}

// execute runs the CLI in a fresh working directory shared by the calls of one test.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	a := newApp()
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	a.close()
	require.NoError(t, err)
	return out.String()
}

func readInventoryFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDemo_FreshInventory(t *testing.T) {
	chdir(t, t.TempDir())

	out := execute(t)

	want := "Apple stock: 7\n" +
		"Low items: [banana]\n" +
		"\n--- Items Report ---\n" +
		"apple -> 7\n" +
		"banana -> 2\n" +
		"--------------------\n\n" +
		"Program finished.\n"
	assert.Equal(t, want, out)
	assert.Equal(t, "{\n    \"apple\": 7,\n    \"banana\": 2\n}\n", readInventoryFile(t, "inventory.json"))
}

func TestDemo_AccumulatesAcrossRuns(t *testing.T) {
	chdir(t, t.TempDir())

	execute(t)
	out := execute(t)

	assert.Contains(t, out, "Apple stock: 14\n")
	assert.Contains(t, out, "Low items: [banana]\n")
	assert.Contains(t, out, "banana -> 4\n")
}

func TestDemo_CorruptFileStartsFresh(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("inventory.json", []byte("not json"), 0o644))

	out := execute(t)

	assert.Contains(t, out, "Apple stock: 7\n")
	assert.Contains(t, out, "Program finished.\n")
}

func TestDemo_FileFlag(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "stock.json")

	execute(t, "--file", path)

	assert.Contains(t, readInventoryFile(t, path), `"apple": 7`)
	_, err := os.Stat("inventory.json")
	assert.True(t, os.IsNotExist(err))
}

func TestAddRemoveGet(t *testing.T) {
	chdir(t, t.TempDir())

	execute(t, "add", "apple", "10")
	execute(t, "remove", "apple", "3")
	assert.Equal(t, "apple stock: 7\n", execute(t, "get", "apple"))

	execute(t, "remove", "apple", "7")
	assert.Equal(t, "apple stock: 0\n", execute(t, "get", "apple"))
	assert.Equal(t, "{}\n", readInventoryFile(t, "inventory.json"))
}

func TestAddRemove_NegativeQuantities(t *testing.T) {
	chdir(t, t.TempDir())

	execute(t, "add", "apple", "10")
	execute(t, "add", "apple", "-3")
	assert.Equal(t, "apple stock: 7\n", execute(t, "get", "apple"))

	execute(t, "remove", "apple", "-2")
	assert.Equal(t, "apple stock: 9\n", execute(t, "get", "apple"))
}

func TestAdd_FlagsBeforeArguments(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "stock.json")

	execute(t, "add", "--file", path, "apple", "-1")

	assert.Equal(t, "{\n    \"apple\": -1\n}\n", readInventoryFile(t, path))
}

func TestAdd_InvalidQuantityIsLoggedAndSkipped(t *testing.T) {
	chdir(t, t.TempDir())
	core, logs := observer.New(zapcore.DebugLevel)
	prev := newLogger
	newLogger = func(string, bool) (*zap.Logger, error) { return zap.New(core), nil }
	t.Cleanup(func() { newLogger = prev })

	execute(t, "add", "apple", "ten")

	assert.Equal(t, 1, logs.FilterMessage("Invalid quantity").Len())
	_, err := os.Stat("inventory.json")
	assert.True(t, os.IsNotExist(err), "nothing should be saved")
}

func TestRemove_MissingItemExitsCleanly(t *testing.T) {
	chdir(t, t.TempDir())

	execute(t, "add", "apple", "2")
	execute(t, "remove", "orange", "1")

	assert.Equal(t, "apple stock: 2\n", execute(t, "get", "apple"))
}

func TestLow_Threshold(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("inventory.json", []byte(`{"apple": 3, "banana": 10}`), 0o644))

	assert.Equal(t, "Low items: [apple]\n", execute(t, "low"))
	assert.Equal(t, "Low items: [apple banana]\n", execute(t, "low", "--threshold", "11"))
	assert.Equal(t, "Low items: []\n", execute(t, "low", "--threshold", "1"))
}

func TestReport_Formats(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("inventory.json", []byte(`{"apple": 3, "banana": 10}`), 0o644))

	assert.Contains(t, execute(t, "report"), "apple -> 3\nbanana -> 10\n")
	assert.Equal(t, "{\n  \"apple\": 3,\n  \"banana\": 10\n}\n", execute(t, "report", "--format", "json"))
	assert.Contains(t, execute(t, "report", "-f", "yaml"), "- name: apple\n  quantity: 3\n")
}

func TestReport_UnknownFormat(t *testing.T) {
	chdir(t, t.TempDir())

	a := newApp()
	cmd := a.rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"report", "--format", "xml"})

	err := cmd.Execute()
	a.close()
	assert.Error(t, err)
}

func TestReport_EmptyInventory(t *testing.T) {
	chdir(t, t.TempDir())

	assert.Contains(t, execute(t, "report"), "Inventory is empty.")
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
