// Config loading for the toybox CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/toybox/internal/logging"
	"github.com/mesh-intelligence/toybox/internal/paths"
	"github.com/mesh-intelligence/toybox/internal/toys"
	"github.com/mesh-intelligence/toybox/pkg/network"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TOYBOX"

	// Config keys.
	cfgKeyBaseURL     = "base_url"
	cfgKeyCatalogFile = "catalog_file"
	cfgKeyLogLevel    = "log.level"
	cfgKeyLogFormat   = "log.format"
	cfgKeyLogOutput   = "log.output"
	cfgKeyLogFilePath = "log.file_path"
)

// errInvalidConfig marks a config.yaml that exists but cannot be parsed or
// decoded.
var errInvalidConfig = errors.New("invalid config file")

// appConfig is the decoded content of config.yaml after defaults and
// environment overrides.
type appConfig struct {
	BaseURL     string         `mapstructure:"base_url" yaml:"base_url"`
	CatalogFile string         `mapstructure:"catalog_file" yaml:"catalog_file,omitempty"`
	Log         logging.Config `mapstructure:"log" yaml:"log"`
}

// defaultAppConfig is what init writes and what loadConfig falls back to.
func defaultAppConfig() appConfig {
	return appConfig{
		BaseURL: network.DefaultBaseURL,
		Log:     logging.DefaultConfig(),
	}
}

// loadConfig reads config.yaml from configDir using Viper. A missing file
// is not an error. Values can be overridden by TOYBOX_* environment
// variables (TOYBOX_BASE_URL, TOYBOX_LOG_LEVEL, ...) and the log level by
// the --log-level flag.
func loadConfig(configDir string, flags *pflag.FlagSet) (appConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBaseURL, def.BaseURL)
	v.SetDefault(cfgKeyCatalogFile, def.CatalogFile)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyLogOutput, def.Log.Output)
	v.SetDefault(cfgKeyLogFilePath, def.Log.FilePath)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag(cfgKeyLogLevel, f); err != nil {
				return appConfig{}, fmt.Errorf("bind log-level flag: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var parseErr viper.ConfigParseError
		switch {
		case errors.As(err, &notFound):
		case errors.As(err, &parseErr):
			return appConfig{}, fmt.Errorf("%w: %w", errInvalidConfig, err)
		default:
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("%w: decode: %w", errInvalidConfig, err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values pointing at
// the catalog file. If the file already exists it is left alone and false
// is returned.
func writeConfigIfMissing(configDir string) (bool, error) {
	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultAppConfig()
	cfg.CatalogFile = paths.CatalogFileName

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# toybox configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// writeCatalogIfMissing writes the built-in catalog to catalog.yaml so it
// can be edited. An existing file is left alone and false is returned.
func writeCatalogIfMissing(configDir string) (bool, error) {
	path := filepath.Join(configDir, paths.CatalogFileName)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat catalog file: %w", err)
	}

	data, err := toys.DefaultCatalog().Encode()
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
