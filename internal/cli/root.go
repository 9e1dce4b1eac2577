// Package cli implements the toybox command-line interface. The root
// command is the composition root: it loads configuration, builds the
// logger, and owns the lazily built toy factory and network manager that
// subcommands receive.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/internal/logging"
	"github.com/mesh-intelligence/toybox/internal/network"
	"github.com/mesh-intelligence/toybox/internal/paths"
	"github.com/mesh-intelligence/toybox/internal/singleton"
	"github.com/mesh-intelligence/toybox/internal/toys"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by Execute to a process exit code.
// Errors that did not come from a command, such as flag parse failures,
// are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	jsonMode  bool
	logLevel  string
}

// app is the state shared by the subcommands of one root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       appConfig
	logger    *zap.Logger
	factory   *singleton.Lazy[*toys.Factory]
	network   *singleton.Lazy[*network.Manager]
}

// NewRootCmd creates the top-level "toybox" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "toybox",
		Short: "Produce toys by age and inspect the shared network manager",
		Long: "Toybox picks a toy for an age from an ordered rule catalog and exposes\n" +
			"the shared network manager built from the configured base URL.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Sync(a.logger)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/toybox)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newProduceCmd(a))
	root.AddCommand(newRulesCmd(a))
	root.AddCommand(newNetworkCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "toybox:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves the config directory, loads the configuration, builds
// the logger, and prepares the lazy components.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir, cmd.Flags())
	if err != nil {
		if errors.Is(err, errInvalidConfig) {
			return userError("load config: %w", err)
		}
		return sysError("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log, logWriter(cmd, cfg.Log.Output))
	if err != nil {
		return userError("configure logging: %w", err)
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("base_url", cfg.BaseURL),
		zap.String("catalog_file", cfg.CatalogFile))

	a.factory = singleton.New(a.buildFactory,
		singleton.WithName("toy-factory"),
		singleton.WithLogger(a.logger))
	a.network = singleton.New(a.buildNetwork,
		singleton.WithName("network"),
		singleton.WithLogger(a.logger))
	return nil
}

// logWriter routes console log output through the command's writers so it
// can be captured.
func logWriter(cmd *cobra.Command, output string) io.Writer {
	switch output {
	case logging.OutputStdout:
		return cmd.OutOrStdout()
	case logging.OutputFile:
		return nil
	default:
		return cmd.ErrOrStderr()
	}
}

func (a *app) buildFactory() (*toys.Factory, error) {
	catalog := toys.DefaultCatalog()
	if path := paths.ResolveCatalogPath(a.configDir, a.cfg.CatalogFile); path != "" {
		c, err := toys.LoadCatalog(path)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return toys.NewFactory(catalog, toys.WithLogger(a.logger))
}

func (a *app) buildNetwork() (*network.Manager, error) {
	return network.NewManager(types.NetworkConfig{BaseURL: a.cfg.BaseURL})
}

// toyFactory returns the factory, mapping a bad catalog to a user error.
func (a *app) toyFactory() (*toys.Factory, error) {
	f, err := a.factory.Get()
	if err != nil {
		if errors.Is(err, types.ErrInvalidCatalog) {
			return nil, userError("%w", err)
		}
		return nil, sysError("%w", err)
	}
	return f, nil
}

// networkManager returns the shared manager, mapping a bad base URL to a
// user error.
func (a *app) networkManager() (*network.Manager, error) {
	m, err := a.network.Get()
	if err != nil {
		if errors.Is(err, types.ErrBaseURLEmpty) || errors.Is(err, types.ErrBaseURLInvalid) {
			return nil, userError("%w", err)
		}
		return nil, sysError("%w", err)
	}
	return m, nil
}
