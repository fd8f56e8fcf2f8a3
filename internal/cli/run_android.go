//go:build android

package cli

import "github.com/spf13/cobra"

// The Android app is started by the platform, not by a command.
func addRunCmd(*cobra.Command, *options) {}
