package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamehost/internal/assets"
	"gamehost/internal/game"
)

func newHeadlessCmd(o *options) *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "Run the entry script for a number of frames without a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 0 {
				return fmt.Errorf("frames must not be negative, got %d", frames)
			}
			defer func() { _ = o.log.Sync() }()

			var scriptErrs int
			deps := game.Deps{
				Log:     o.log,
				Store:   assets.FS(os.DirFS(o.cfg.AssetDir)),
				OnError: func(error) { scriptErrs++ },
			}
			screen, err := game.RunHeadless(o.cfg, deps, frames)
			if err != nil {
				return err
			}

			o.log.Info("headless run finished",
				zap.Int("frames", frames),
				zap.Int("clears", screen.Clears),
				zap.Int("errors", scriptErrs))
			fmt.Fprintf(cmd.OutOrStdout(), "frames=%d clears=%d errors=%d background=%#08x\n",
				frames, screen.Clears, scriptErrs, screen.Last)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 60, "number of frames to run")
	return cmd
}
