// Config loading for the tablectl CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/noobCode-69/reusable-table/internal/paths"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "TABLECTL"

	cfgKeyDataSource    = "data_source"
	cfgKeyRowIdentifier = "row_identifier"
	cfgKeyPageSize      = "page_size"
	cfgKeyHTTPTimeout   = "http_timeout"
	cfgKeySheet         = "sheet"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogFormat     = "log_format"

	defaultRowIdentifier = "id"
	defaultHTTPTimeout   = 30 * time.Second
	defaultLogLevel      = "warn"
	defaultLogFormat     = "text"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# tablectl configuration

# Data source: an http(s) URL, a .json/.jsonl/.ndjson/.xlsx path, or
# sqlite://path.db?table=name. Relative paths are resolved against this
# directory. Overridable by --source or TABLECTL_SOURCE.
# data_source: users.json

# Field that uniquely identifies a row.
row_identifier: id

# Rows per page.
page_size: 10

# Timeout of one HTTP fetch.
http_timeout: 30s

# Worksheet of an Excel source (default: first sheet).
# sheet: Sheet1

# Logging: debug, info, warn, error; text or json.
log_level: warn
log_format: text
`

// settings is the resolved configuration of one tablectl invocation.
type settings struct {
	DataSource    string        `mapstructure:"data_source"`
	RowIdentifier string        `mapstructure:"row_identifier"`
	PageSize      int           `mapstructure:"page_size"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	Sheet         string        `mapstructure:"sheet"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
}

// tableConfig returns the controller configuration for s.
func (s settings) tableConfig() types.Config {
	return types.Config{
		DataSource:    s.DataSource,
		RowIdentifier: s.RowIdentifier,
		PageSize:      s.PageSize,
	}
}

// loadSettings resolves the config directory, reads config.yaml and layers
// environment variables and flags over it.
func (a *app) loadSettings(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		cfgKeyRowIdentifier: "id",
		cfgKeyPageSize:      "page-size",
		cfgKeyLogLevel:      "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return sysError(fmt.Errorf("bind flag %s: %w", flag, err))
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return userError(fmt.Errorf("parse %s: %w", filepath.Join(configDir, configFileExt), err))
	}
	// The data source has its own precedence: flag > config.yaml > env.
	s.DataSource = paths.ResolveDataSource(a.source, v.GetString(cfgKeyDataSource), configDir)

	a.cfg = v
	a.settings = s
	return nil
}

// loadConfig reads config.yaml from the config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if _, err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyRowIdentifier, defaultRowIdentifier)
	v.SetDefault(cfgKeyPageSize, types.DefaultPageSize)
	v.SetDefault(cfgKeyHTTPTimeout, defaultHTTPTimeout)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)

	// data_source is resolved by paths.ResolveDataSource, so it is not
	// bound to the environment here.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		cfgKeyRowIdentifier, cfgKeyPageSize, cfgKeyHTTPTimeout,
		cfgKeySheet, cfgKeyLogLevel, cfgKeyLogFormat,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory. It reports whether a file was written.
func ensureDefaultConfigFile(configDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
