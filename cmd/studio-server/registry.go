// cmd/studio-server/registry.go
package main

import (
	"fmt"
	"text/tabwriter"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/validation"
	"studio-growth/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	var path string

	load := func() (*registry.EndpointRegistry, error) {
		if path != "" {
			return registry.LoadRegistry(path)
		}
		return registry.Default()
	}

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the endpoint registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "registry file (default: the embedded pkg/registry/endpoints.json)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMETHOD\tPATH\tTIMEOUT")
			for _, ep := range reg.Endpoints {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.ID, ep.Method, ep.Path, ep.Timeout)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check endpoint fields, input schemas and error codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := validateRegistry(reg); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d endpoints.\n", len(reg.Endpoints))
			return err
		},
	})
	return cmd
}

func validateRegistry(reg *registry.EndpointRegistry) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	for _, ep := range reg.Endpoints {
		if ep.InputSchema != nil {
			if _, err := validation.Compile(ep.InputSchema); err != nil {
				return fmt.Errorf("endpoint %s: %w", ep.ID, err)
			}
		}
		for _, code := range ep.ErrorCodes {
			if !apperrors.IsKnownCode(apperrors.ErrorCode(code)) {
				return fmt.Errorf("endpoint %s lists unknown error code %s", ep.ID, code)
			}
		}
	}
	return nil
}
