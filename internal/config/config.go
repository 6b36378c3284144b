// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the Keyvault configuration with Viper. Settings come
// from an optional YAML file (--config flag, then .keyvault.yaml in the home
// or current directory) and KEYVAULT_* environment variables, falling back
// to built-in defaults. A missing config file is not an error.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for Keyvault.
type Config struct {
	// KeysFile is the managed inventory file, relative to the working
	// directory unless absolute.
	KeysFile string `mapstructure:"keys_file"`
	// AliasesFile is the JSON metadata sidecar.
	AliasesFile string `mapstructure:"aliases_file"`
	// BackupDir receives timestamped copies of the inventory before saves.
	BackupDir string `mapstructure:"backup_dir"`
	// SSHDir is the local SSH directory used for capture, deploy and
	// system key management.
	SSHDir string `mapstructure:"ssh_dir"`
	// Language selects the console language ("en", "de").
	Language string `mapstructure:"language"`
}

// Load reads the configuration. cfgFile, when non-empty, points at an
// explicit config file and takes precedence over the search paths.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("keys_file", "authorized_keys")
	v.SetDefault("aliases_file", "key_aliases.json")
	v.SetDefault("backup_dir", ".key_backups")
	v.SetDefault("ssh_dir", defaultSSHDir())
	v.SetDefault("language", "en")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".keyvault")
	}

	v.SetEnvPrefix("KEYVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is fine; anything else (a malformed
		// file, an unreadable explicit --config path) is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// defaultSSHDir returns ~/.ssh, or a relative ".ssh" when the home
// directory cannot be determined.
func defaultSSHDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ssh"
	}
	return filepath.Join(home, ".ssh")
}
