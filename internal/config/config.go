package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// ValidateConfig holds configuration for the validate command.
type ValidateConfig struct {
	In       string
	LogLevel string
}

// LoadValidate merges config file, environment variables, and flags into
// ValidateConfig.
func LoadValidate(cfgFile string, flags *pflag.FlagSet) (ValidateConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ValidateConfig{}, err
	}

	v.SetDefault("log-level", "info")

	cfg := ValidateConfig{
		In:       v.GetString("in"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("POOLGUARD")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
