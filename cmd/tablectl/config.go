package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nrfta/datatable-go"
)

const (
	defaultDBPath        = "tablectl.db"
	defaultQueryTimeout  = 5 * time.Second
	defaultSortDirection = string(datatable.Asc)
)

// config holds the tablectl settings. Every key can also be set through a
// TABLECTL_ prefixed environment variable, e.g. TABLECTL_PER_PAGE=25.
type config struct {
	DBPath         string        `mapstructure:"db-path"`
	PerPage        int           `mapstructure:"per-page"`
	PerPageOptions []int         `mapstructure:"per-page-options"`
	SortDirection  string        `mapstructure:"sort-direction"`
	LoadingDelay   time.Duration `mapstructure:"loading-delay"`
	LogFile        string        `mapstructure:"log-file"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`
}

func loadConfig(configPath string, cmd *cobra.Command) (config, error) {
	var cfg config

	v := viper.New()
	v.SetEnvPrefix("TABLECTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("per-page", datatable.DefaultPerPage)
	v.SetDefault("per-page-options", datatable.DefaultPerPageOptions)
	v.SetDefault("sort-direction", defaultSortDirection)
	v.SetDefault("loading-delay", datatable.DefaultLoadingDelay)
	v.SetDefault("log-file", "")
	v.SetDefault("query-timeout", defaultQueryTimeout)

	if cmd != nil {
		if f := cmd.Root().PersistentFlags().Lookup("db-path"); f != nil {
			if err := v.BindPFlag("db-path", f); err != nil {
				return cfg, fmt.Errorf("bind db-path flag: %w", err)
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "tablectl", "config.yaml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if !datatable.ValidatePerPageOptions(c.PerPageOptions) {
		return fmt.Errorf("per-page-options must be a non-empty list of positive counts, got %v", c.PerPageOptions)
	}
	if !datatable.ValidateRowsPerPage(c.PerPage, c.PerPageOptions) {
		return fmt.Errorf("per-page %d is not one of per-page-options %v", c.PerPage, c.PerPageOptions)
	}
	if !datatable.ValidateSortDirection(datatable.SortDirection(c.SortDirection)) {
		return fmt.Errorf("sort-direction must be asc or desc, got %q", c.SortDirection)
	}
	return nil
}

// tableConfig converts the settings into controller configuration.
func (c config) tableConfig() *datatable.Config {
	return datatable.NewConfig().
		WithPerPageOptions(c.PerPageOptions...).
		WithPerPage(c.PerPage).
		WithSortDirection(datatable.SortDirection(c.SortDirection)).
		WithLoadingDelay(c.LoadingDelay)
}
