package main

import (
	"github.com/spf13/cobra"

	"github.com/dukerupert/familytree/internal/config"
	"github.com/dukerupert/familytree/internal/family"
)

// flags override the environment when set.
type flags struct {
	port          string
	dbPath        string
	registryPath  string
	logLevel      string
	logFormat     string
	allowDangling bool
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "familytree",
		Short:         "Private family tree, gallery and search service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.dbPath, "db", "", "SQLite database path (FAMILYTREE_DB_PATH)")
	pf.StringVar(&f.registryPath, "registry", "", "family registry YAML file (FAMILYTREE_REGISTRY_PATH)")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (FAMILYTREE_LOG_LEVEL)")
	pf.StringVar(&f.logFormat, "log-format", "", "text or json (FAMILYTREE_LOG_FORMAT)")
	pf.BoolVar(&f.allowDangling, "allow-dangling", false, "treat unresolved parent and child references as warnings")

	root.AddCommand(
		newServeCmd(&f),
		newCheckCmd(&f),
		newBackupCmd(&f),
		newDecryptBackupCmd(),
		newHashKeyCmd(),
	)
	return root
}

// loadConfig reads the environment and applies any flags that were set.
func loadConfig(f *flags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if f.port != "" {
		cfg.Port = f.port
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.registryPath != "" {
		cfg.RegistryPath = f.registryPath
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	return cfg, nil
}

func loadRegistry(cfg config.Config, f *flags) (*family.Registry, error) {
	var opts []family.Option
	if f.allowDangling {
		opts = append(opts, family.AllowDangling())
	}
	return family.Load(cfg.RegistryPath, opts...)
}
