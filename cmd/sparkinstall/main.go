package main

import (
	"os"

	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/log"
)

var Version = "dev"

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/sparkinstall/config.toml)")

	installCmd.Flags().String("source", ".", "Spark source tree to build")
	installCmd.Flags().Bool("dry-run", false, "Show what would be installed without changing anything")
	remoteCmd.Flags().Bool("dry-run", false, "Show what would be installed without cloning")

	rootCmd.AddCommand(installCmd, remoteCmd, detectCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(errdefs.ExitCodeOf(err))
	}
}
