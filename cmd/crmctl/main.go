// Command crmctl is the operator CLI of go-lead-keeper: it applies database
// migrations and seeds a running server with demo data.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// Global flags
var (
	verbose bool
	timeout time.Duration
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "go-lead-keeper operator tool",
		Version:       models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "info"
			if verbose {
				level = "debug"
			}
			return logger.SetLevel(level)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall operation timeout")

	rootCmd.AddCommand(newMigrateCmd(), newSeedCmd())

	return rootCmd
}

func main() {
	log := logger.NewLogger("crmctl")

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("crmctl failed")
		os.Exit(1)
	}
}
