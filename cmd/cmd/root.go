package cmd

import (
	"github.com/ostafen/tagkit/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - media file-format identification toolkit",
	}

	rootCmd.AddCommand(DefineFormatsCommand())
	rootCmd.AddCommand(DefineIdentifyCommand())
	rootCmd.AddCommand(DefineScanCommand())
	rootCmd.AddCommand(DefineMountCommand())

	return rootCmd.Execute()
}
