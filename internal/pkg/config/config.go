// Package config loads ponderctl settings with viper from a yaml file,
// PONDER_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kiosk404/ponder/pkg/logger"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PONDER_MODEL_NAME.
	EnvPrefix = "PONDER"
	// FlagConfig is the global --config flag.
	FlagConfig = "config"
)

// HomeDir is the per-user directory searched for <name>.yaml.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ponder"
	}
	return filepath.Join(home, ".ponder")
}

// LoadConfig points v at cfgFile, or searches ./ and $HOME/.ponder for
// <defaultName>.yaml, and enables env overrides. A missing default file is
// not an error; a missing or broken explicit file is.
func LoadConfig(v *viper.Viper, cfgFile, defaultName string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(HomeDir())
		v.SetConfigName(defaultName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			logger.Debug("[Config] no %s.yaml found, using flags and defaults", defaultName)
			return nil
		}
		return fmt.Errorf("failed to read configuration file(%s): %w", cfgFile, err)
	}
	logger.Info("[Config] using config file %s", v.ConfigFileUsed())
	return nil
}

// Load binds fs to v, reads the configuration and decodes the merged result
// into out.
func Load(v *viper.Viper, fs *pflag.FlagSet, cfgFile, defaultName string, out interface{}) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if err := LoadConfig(v, cfgFile, defaultName); err != nil {
		return err
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}
	return nil
}
