// Command exrdump lists the header attributes of image files.
//
// Usage:
//
//	exrdump [flags] <file.exr>...
//	exrdump types
//	exrdump version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simonhull/exrheader"
	"github.com/simonhull/exrheader/internal/config"
)

var flags = struct {
	Config   string
	Strict   bool
	Validate bool
	NoColor  bool
	LogLevel string
}{}

var cmdMain = &cobra.Command{
	Use:           "exrdump [flags] <file.exr>...",
	Short:         "List the header attributes of image files",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDump,
}

var cmdTypes = &cobra.Command{
	Use:   "types",
	Short: "List the attribute type names that are decoded",
	Args:  cobra.NoArgs,
	RunE:  runTypes,
}

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := exrheader.GetVersionInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "exrdump %s (commit %s, built %s, %s)\n",
			info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
	},
}

func init() {
	cmdMain.AddCommand(cmdTypes, cmdVersion)

	pf := cmdMain.PersistentFlags()
	pf.StringVarP(&flags.Config, "config", "c", config.FileName, "Configuration file")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	f := cmdMain.Flags()
	f.BoolVarP(&flags.Strict, "strict", "s", false, "Fail on attribute types that are not registered")
	f.BoolVarP(&flags.Validate, "validate", "V", false, "Check the header describes a readable image")

	if os.Getenv("FORCE_COLOR") != "" {
		color.NoColor = false
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmdMain.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with the command line flags, which take
// precedence when set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(flags.Config)
	} else {
		cfg, err = config.LoadOptional(flags.Config)
	}
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.Strict
	}
	if cmd.Flags().Changed("validate") {
		cfg.Validate = flags.Validate
	}
	if cmd.Flags().Changed("no-color") {
		cfg.NoColor = flags.NoColor
	}
	if cmd.Flags().Changed("log-level") {
		level, err := zerolog.ParseLevel(flags.LogLevel)
		if err != nil {
			return config.Config{}, fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}

	if cfg.NoColor {
		color.NoColor = true
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}
	return zerolog.New(out).Level(cfg.LogLevel).With().Timestamp().Logger()
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	opts, err := cfg.ReadOptions(logger)
	if err != nil {
		return err
	}

	files, err := exrheader.OpenMany(cmd.Context(), args, opts...)
	if err != nil {
		return err
	}
	defer func() {
		for _, f := range files {
			_ = f.Close() //nolint:errcheck // Read-only
		}
	}()

	w := cmd.OutOrStdout()
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := dumpFile(w, f); err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
	}
	return nil
}

func runTypes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range reg.TypeNames() {
		if exrheader.IsBuiltinType(name) {
			fmt.Fprintln(w, typeColor.Sprint(name))
		} else {
			fmt.Fprintln(w, opaqueColor.Sprint(name), "(opaque)")
		}
	}
	return nil
}
