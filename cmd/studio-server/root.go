// cmd/studio-server/root.go
package main

import (
	"studio-growth/internal/common/config"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "studio-server",
		Short:         "Sleek Studio London growth service",
		Long:          "Serves the Growth Lab projection API, the site content catalog and the enquiry relay.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newServeCmd(opts),
		newProjectCmd(opts),
		newRegistryCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromFile(o.configPath)
	}
	return config.Load()
}
