package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pthm/craft"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "craft version "+version+"\n", out)
}

func TestDefaults(t *testing.T) {
	out, err := run(t, "defaults")
	require.NoError(t, err)

	var got craft.Defaults
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, craft.NewDefaults(), got)
}

func TestDefaults_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "craft.yaml")
	require.NoError(t, os.WriteFile(path, []byte("router: path\nmodal:\n  mask_color: \"#333\"\n"), 0o644))

	out, err := run(t, "defaults", "--config", path)
	require.NoError(t, err)

	var got craft.Defaults
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Equal(t, craft.RouterPath, got.Router)
	require.Equal(t, "#333", got.Modal.MaskColor)
	require.Equal(t, craft.NewDefaults().Transition, got.Transition)
}

func TestDefaults_MissingConfig(t *testing.T) {
	_, err := run(t, "defaults", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGenerateAndClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "root.go"), []byte(`package app

import "github.com/pthm/craft"

type AppRoot struct{ *craft.RootViewController }
`), 0o644))
	generated := filepath.Join(dir, "root_craft.go")

	out, err := run(t, "generate", "--dry-run", dir)
	require.NoError(t, err)
	require.Contains(t, out, "would write")
	require.NoFileExists(t, generated)

	_, err = run(t, "generate", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(generated)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `return "app.AppRoot"`), string(data))

	_, err = run(t, "generate", "--full-path", dir)
	require.NoError(t, err)
	data, err = os.ReadFile(generated)
	require.NoError(t, err)
	require.Contains(t, string(data), `return "example.com/app.AppRoot"`)

	out, err = run(t, "clean", dir)
	require.NoError(t, err)
	require.Contains(t, out, "removing")
	require.NoFileExists(t, generated)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "frobnicate")
	require.Error(t, err)
}
