// cmd/studio-server/project.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apperrors "studio-growth/internal/common/errors"
	"studio-growth/internal/common/logger"
	calculateprojection "studio-growth/internal/handlers/growth-lab/calculate-projection"
	"studio-growth/internal/growthlab"
	"studio-growth/pkg/registry"

	"github.com/spf13/cobra"
)

type projectOptions struct {
	maturity  string
	enquiries int
	budget    int
	timeframe int
	services  []string
	output    string
}

func newProjectCmd(root *rootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a Growth Lab projection and print the summary",
		Example: "  studio-server project --maturity growing --enquiries 6 --budget 9500 --timeframe 6 --services social,website\n" +
			"  studio-server project --services= -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			labCfg := calculateprojection.DefaultConfig()
			if root.configPath != "" {
				cfg, err := root.loadConfig()
				if err != nil {
					return err
				}
				if labCfg, err = calculateprojection.LoadConfig(cfg.GrowthLab); err != nil {
					return err
				}
			}
			return runProject(cmd, labCfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.maturity, "maturity", "", "studio maturity (new, growing, established)")
	f.IntVar(&opts.enquiries, "enquiries", 0, "current monthly enquiries (2-24)")
	f.IntVar(&opts.budget, "budget", 0, "monthly budget in GBP (3500-15000, step 250)")
	f.IntVar(&opts.timeframe, "timeframe", 0, "projection horizon in months (3, 6, 12)")
	f.StringSliceVar(&opts.services, "services", nil, "selected services (social, website, branding, seo)")
	f.StringVarP(&opts.output, "output", "o", "text", "output format (text, json)")
	return cmd
}

func runProject(cmd *cobra.Command, labCfg *calculateprojection.Config, opts *projectOptions) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	handler, err := calculateprojection.NewHandler(labCfg, registry.MustDefault(), nil, logger.NewNoOpLogger())
	if err != nil {
		return err
	}

	// Unset flags fall back to the configured defaults.
	input := &calculateprojection.Input{}
	flags := cmd.Flags()
	if flags.Changed("maturity") {
		input.Maturity = &opts.maturity
	}
	if flags.Changed("enquiries") {
		input.MonthlyEnquiries = &opts.enquiries
	}
	if flags.Changed("budget") {
		input.MonthlyBudget = &opts.budget
	}
	if flags.Changed("timeframe") {
		input.TimeframeMonths = &opts.timeframe
	}
	if flags.Changed("services") {
		input.Services = &opts.services
	}

	out, err := handler.Execute(cmd.Context(), input)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		return fmt.Errorf("%s (%s)", stdErr.Message, stdErr.Details)
	}

	if opts.output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printSummary(cmd.OutOrStdout(), out)
}

func printSummary(w io.Writer, out *calculateprojection.Output) error {
	r := out.Result
	labels := make([]string, 0, len(out.Services))
	for _, svc := range out.Services {
		labels = append(labels, growthlab.NewServiceSelection(svc).Labels()...)
	}
	services := strings.Join(labels, ", ")
	if services == "" {
		services = "None"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Growth Lab projection")
	fmt.Fprintf(tw, "Studio:\t%s, %d enquiries a month\n", out.Profile.Maturity.Label(), out.Profile.MonthlyEnquiries)
	fmt.Fprintf(tw, "Investment:\t%s a month over %d months\n", growthlab.FormatGBP(out.Investment.MonthlyBudget), out.Investment.TimeframeMonths)
	fmt.Fprintf(tw, "Services:\t%s\n", services)
	for _, p := range r.Timeline {
		fmt.Fprintf(tw, "%d months:\t%d enquiries, visibility +%d%%, positioning %d\n",
			p.Months, p.Enquiries, p.VisibilityLift, p.PositioningScore)
	}
	fmt.Fprintf(tw, "Annual leads:\t%s\n", growthlab.FormatNumber(r.AnnualLeads))
	fmt.Fprintf(tw, "Annual projects:\t%d\n", r.AnnualProjects)
	fmt.Fprintf(tw, "Revenue:\t%s to %s\n", growthlab.FormatGBP(r.Revenue.Min), growthlab.FormatGBP(r.Revenue.Max))
	fmt.Fprintf(tw, "Cost per lead:\t%s to %s\n", growthlab.FormatGBP(r.CostPerLead.Min), growthlab.FormatGBP(r.CostPerLead.Max))
	fmt.Fprintf(tw, "Fit score:\t%d (%s)\n", r.FitScore, r.QualificationLabel)
	fmt.Fprintf(tw, "Package:\t%s\n", r.Advisory.PackageLabel)
	fmt.Fprintf(tw, "Primary lever:\t%s\n", r.Advisory.PrimaryGrowthLever)
	fmt.Fprintf(tw, "Contact:\t%s\n", out.ContactHref)
	return tw.Flush()
}
