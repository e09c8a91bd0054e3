package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/logger"
	"github.com/dmitrymomot/modkit/pkg/store"
)

// cliConfig is the subset of the runtime configuration the CLI needs.
type cliConfig struct {
	Store store.Config `envPrefix:"MODKIT_STORE_"`
}

type storeOpener func(ctx context.Context, envFiles []string, log *slog.Logger) (store.Store, error)

func openStore(ctx context.Context, envFiles []string, log *slog.Logger) (store.Store, error) {
	if err := config.LoadEnv(envFiles...); err != nil {
		return nil, err
	}
	var cfg cliConfig
	if err := config.Parse(&cfg); err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg.Store, log)
}

type cli struct {
	open     storeOpener
	envFiles []string
	verbose  bool
}

func newRootCmd(open storeOpener) *cobra.Command {
	c := &cli{open: open}

	rootCmd := &cobra.Command{
		Use:           "modkit",
		Short:         "Inspect and edit persisted feature configuration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", nil, "load variables from these .env files")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log store activity to stderr")

	getCmd := &cobra.Command{
		Use:   "get <feature>",
		Short: "Show the persisted enabled flag of a feature",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runGet,
	}
	enableCmd := &cobra.Command{
		Use:   "enable <feature>",
		Short: "Persist enabled=true for a feature",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runSetEnabled(true),
	}
	disableCmd := &cobra.Command{
		Use:   "disable <feature>",
		Short: "Persist enabled=false for a feature",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runSetEnabled(false),
	}

	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Read or write persisted feature settings",
	}
	settingGetCmd := &cobra.Command{
		Use:   "get <feature> <name>",
		Short: "Print a setting value as JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runSettingGet,
	}
	settingSetCmd := &cobra.Command{
		Use:     "set <feature> <name> <json>",
		Short:   "Store a JSON setting value",
		Example: `  modkit setting set god-mode tags '["a","c"]'`,
		Args:    cobra.ExactArgs(3),
		RunE:    c.runSettingSet,
	}
	settingCmd.AddCommand(settingGetCmd, settingSetCmd)

	buildCmd := &cobra.Command{
		Use:   "build [name]",
		Short: "Validate a build name or list the known builds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}

	rootCmd.AddCommand(getCmd, enableCmd, disableCmd, settingCmd, buildCmd)
	return rootCmd
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	if !c.verbose {
		return logger.Nop()
	}
	return logger.New(logger.WithFormat(logger.FormatText), logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(slog.LevelDebug), logger.WithAttr(logger.Component("cli")))
}

// withStore opens the store, runs fn and closes the store.
func (c *cli) withStore(cmd *cobra.Command, fn func(ctx context.Context, st store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := c.open(ctx, c.envFiles, c.logger(cmd))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(ctx, st)
}
