package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/chains/internal/script"
	"github.com/mesh-intelligence/chains/pkg/types"
)

func TestLoadConfigWritesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	v, err := loadConfig(dir, pflag.NewFlagSet("t", pflag.ContinueOnError))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(data))

	cfg := configFrom(v)
	assert.Equal(t, types.Config{Topology: defaultTopology}, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, defaultLogLevel, v.GetString(cfgKeyLogLevel))
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	custom := "topology: circular\nmax_nodes: 8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(custom), 0o644))

	v, err := loadConfig(dir, pflag.NewFlagSet("t", pflag.ContinueOnError))
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, types.TopologyCircular, cfg.Topology)
	assert.Equal(t, 8, cfg.MaxNodes)

	data, err := os.ReadFile(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt),
		[]byte("topology: circular\nmax_bytes: 10\nmax_nodes: 3\n"), 0o644))
	t.Setenv("CHAINS_MAX_BYTES", "20")
	t.Setenv("CHAINS_TOPOLOGY", "singly")

	flags := pflag.NewFlagSet("t", pflag.ContinueOnError)
	flags.String("topology", "", "")
	flags.Int("max-nodes", 0, "")
	require.NoError(t, flags.Parse([]string{"--topology", "doubly"}))

	v, err := loadConfig(dir, flags)
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, types.TopologyDoubly, cfg.Topology, "flag beats env and file")
	assert.Equal(t, 20, cfg.MaxBytes, "env beats file")
	assert.Equal(t, 3, cfg.MaxNodes, "unset flag keeps file value")
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("topology: [\n"), 0o644))

	_, err := loadConfig(dir, pflag.NewFlagSet("t", pflag.ContinueOnError))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger("debug", true, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("list", "x").Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger("loud", false, &buf)
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("bad flag")))
	assert.Equal(t, exitUserError, exitCode(userError(errors.New("x"))))
	assert.Equal(t, exitSysError, exitCode(sysError(errors.New("x"))))

	base := errors.New("disk")
	assert.ErrorIs(t, sysError(base), base)
}

func TestResultText(t *testing.T) {
	idx := 2
	got := resultText(script.Result{OK: true, Len: 3, Value: "B", Index: &idx, SlotCleared: true})
	assert.Equal(t, `ok  len=3  value="B"  index=2  slot cleared`, got)

	got = resultText(script.Result{Len: 0, Error: "get: list is empty: not found"})
	assert.Equal(t, "FAIL  len=0  (get: list is empty: not found)", got)

	assert.Equal(t, "push_back/move", opLabel(script.Result{Op: "push_back", Mode: "move"}))
	assert.Equal(t, "len", opLabel(script.Result{Op: "len"}))
}
