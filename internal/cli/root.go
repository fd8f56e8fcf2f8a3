// Package cli provides the command-line interface of the desktop host.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamehost/internal/config"
	"gamehost/internal/logging"
)

// Version is set at build time with -ldflags "-X gamehost/internal/cli.Version=...".
var Version = "dev"

// options carries the loaded configuration and logger to subcommands.
type options struct {
	cfg config.Config
	log *zap.Logger
	out io.Writer

	root, entry, assets, logLevel string
	width, height                 int
	scale                         float32
	extract                       []string
	logDev                        bool
}

func newRootCmd() *cobra.Command {
	o := &options{out: os.Stdout}

	cmd := &cobra.Command{
		Use:   "gamehost",
		Short: "Host a Lua-scripted 2D game",
		Long: `gamehost bootstraps a Lua entry script against a packaged asset
directory and drives it through the frame loop, either in a desktop window
or headless.

Every flag defaults to the matching GAMEHOST_* environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return o.load(cmd)
		},
	}
	cmd.SetOut(o.out)

	f := cmd.PersistentFlags()
	f.StringVar(&o.root, "root", "", "script root directory")
	f.StringVar(&o.entry, "entry", "", "entry script path")
	f.StringVar(&o.assets, "assets", "", "packaged asset directory")
	f.IntVar(&o.width, "width", 0, "logical surface width")
	f.IntVar(&o.height, "height", 0, "logical surface height")
	f.Float32Var(&o.scale, "scale", 0, "surface scale")
	f.StringSliceVar(&o.extract, "extract", nil, "assets to copy into the script root")
	f.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.BoolVar(&o.logDev, "log-dev", false, "human readable log output")

	cmd.AddCommand(newVersionCmd(o))
	cmd.AddCommand(newHeadlessCmd(o))
	addRunCmd(cmd, o)
	return cmd
}

// load reads the environment, then lets explicitly set flags win.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("root") {
		cfg.ScriptRoot = o.root
	}
	if f.Changed("entry") {
		cfg.EntryScript = o.entry
	}
	if f.Changed("assets") {
		cfg.AssetDir = o.assets
	}
	if f.Changed("width") {
		cfg.Width = o.width
	}
	if f.Changed("height") {
		cfg.Height = o.height
	}
	if f.Changed("scale") {
		cfg.Scale = o.scale
	}
	if f.Changed("extract") {
		cfg.Extract = o.extract
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("log-dev") {
		cfg.LogDev = o.logDev
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	o.cfg, o.log = cfg, log
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gamehost %s\n", Version)
		},
	}
}
