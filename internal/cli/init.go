package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and default files",
		Long: "Create the configuration directory with a default config.yaml and an\n" +
			"editable catalog.yaml holding the built-in age rules. Existing files are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	wroteConfig, err := writeConfigIfMissing(a.configDir)
	if err != nil {
		return sysError("write config: %w", err)
	}
	wroteCatalog, err := writeCatalogIfMissing(a.configDir)
	if err != nil {
		return sysError("write catalog: %w", err)
	}

	a.logger.Info("config directory initialized",
		zap.String("config_dir", a.configDir),
		zap.Bool("wrote_config", wroteConfig),
		zap.Bool("wrote_catalog", wroteCatalog))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Toybox initialized successfully")
	fmt.Fprintln(out, "  config: ", filepath.Join(a.configDir, paths.ConfigFileName))
	fmt.Fprintln(out, "  catalog:", filepath.Join(a.configDir, paths.CatalogFileName))
	return nil
}
