package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/chains/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CHAINS"

	cfgKeyTopology = "topology"
	cfgKeyMaxNodes = "max_nodes"
	cfgKeyMaxBytes = "max_bytes"
	cfgKeyLogLevel = "log_level"

	defaultTopology = types.TopologyDoubly
	defaultLogLevel = "warn"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# chains CLI configuration

# List topology: singly, doubly, or circular
topology: doubly

# Limits (0 = unlimited)
max_nodes: 0
max_bytes: 0

# Log level: trace, debug, info, warn, error
log_level: warn
`

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"topology":  cfgKeyTopology,
	"max-nodes": cfgKeyMaxNodes,
	"max-bytes": cfgKeyMaxBytes,
	"log-level": cfgKeyLogLevel,
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. Values resolve as flag > CHAINS_* env >
// config.yaml > default.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyTopology, defaultTopology)
	v.SetDefault(cfgKeyMaxNodes, 0)
	v.SetDefault(cfgKeyMaxBytes, 0)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// configFrom extracts the list settings. Validation happens when a list is
// built so that version works with a broken config.
func configFrom(v *viper.Viper) types.Config {
	return types.Config{
		Topology: strings.ToLower(strings.TrimSpace(v.GetString(cfgKeyTopology))),
		MaxNodes: v.GetInt(cfgKeyMaxNodes),
		MaxBytes: v.GetInt(cfgKeyMaxBytes),
	}
}

// newLogger builds the CLI logger. Logs go to w, never to stdout.
func newLogger(level string, asJSON bool, w io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	if asJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}
