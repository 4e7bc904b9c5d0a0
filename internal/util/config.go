/**
 * Copyright (c) 2024 Peking University and Peking University
 * Changsha Institute for Computing and Digital Economy
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "BATCHELOR"

// Report formats accepted by the report key.
const (
	ReportNone  = "none"
	ReportTable = "table"
	ReportJson  = "json"
	ReportYaml  = "yaml"
)

// Config holds the settings that may come from a config file or the
// environment. Per-run values such as the worker script and the input
// patterns are command line only.
type Config struct {
	InputFlag     string `mapstructure:"input-flag"`
	Batch         uint   `mapstructure:"batch"`
	OutDir        string `mapstructure:"out-dir"`
	Submit        string `mapstructure:"submit"`
	JobNamePrefix string `mapstructure:"job-name-prefix"`
	Keep          bool   `mapstructure:"keep"`
	LogLevel      string `mapstructure:"log-level"`
	LogFile       string `mapstructure:"log-file"`
	Report        string `mapstructure:"report"`
}

var configKeys = []string{
	"input-flag",
	"batch",
	"out-dir",
	"submit",
	"job-name-prefix",
	"keep",
	"log-level",
	"log-file",
	"report",
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "batchelor", "config.yaml")
}

// LoadConfig merges built-in defaults, the YAML file at path, BATCHELOR_*
// environment variables and the flags the user actually set, in increasing
// order of precedence. A missing file is only an error when explicit is set.
func LoadConfig(path string, explicit bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaultConfig(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range configKeys {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", key, err)
				}
			}
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil || explicit {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			log.Debugf("Loaded config file %s", path)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("input-flag", "--input")
	v.SetDefault("batch", 1)
	v.SetDefault("out-dir", ".batchelor")
	v.SetDefault("submit", "sbatch")
	v.SetDefault("job-name-prefix", "batch")
	v.SetDefault("keep", false)
	v.SetDefault("log-level", DefaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetDefault("report", ReportNone)
}

func validateConfig(cfg *Config) error {
	if err := CheckLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	switch cfg.Report {
	case "", ReportNone, ReportTable, ReportJson, ReportYaml:
	default:
		return fmt.Errorf("unsupported report format: %s", cfg.Report)
	}

	if strings.ContainsRune(cfg.JobNamePrefix, filepath.Separator) {
		return fmt.Errorf("job name prefix must not contain %q", filepath.Separator)
	}

	return nil
}
