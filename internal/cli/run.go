//go:build !android

package cli

import (
	"github.com/spf13/cobra"

	"gamehost/internal/game"
)

// addRunCmd registers the windowed run, which is also what a bare
// invocation does.
func addRunCmd(root *cobra.Command, o *options) {
	run := func(cmd *cobra.Command, args []string) error {
		defer func() { _ = o.log.Sync() }()
		return game.RunDesktop(o.cfg, o.log)
	}
	root.RunE = run
	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Open a window and run the entry script",
		RunE:  run,
	})
}
