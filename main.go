package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	appconfig "quotebuilder/config"
	"quotebuilder/quote"
	"quotebuilder/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "quotebuilder",
		Short:         "Turn a finalized renovation quote into PDF, CSV, IIF and XLSX artifacts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML file overriding the company, brand and account defaults")

	root.AddCommand(
		newExportCmd(&configPath, "pdf", "Render the branded quote PDF with attachments",
			func(q quote.Quote, s services.Schedule, cfg appconfig.Config, out string) error {
				return services.RenderQuotePDF(q, s, cfg, out)
			}),
		newExportCmd(&configPath, "csv", "Export the estimate for the online accounting import",
			func(q quote.Quote, s services.Schedule, cfg appconfig.Config, out string) error {
				return services.ExportEstimateCSV(q, s, out)
			}),
		newExportCmd(&configPath, "iif", "Export the ledger transaction file for the desktop accounting import",
			func(q quote.Quote, s services.Schedule, cfg appconfig.Config, out string) error {
				return services.ExportEstimateIIF(q, s, cfg.Accounts, out)
			}),
		newExportCmd(&configPath, "xlsx", "Export the quote as an Excel workbook",
			func(q quote.Quote, s services.Schedule, cfg appconfig.Config, out string) error {
				return services.ExportQuoteXLSX(q, s, cfg, out)
			}),
		newScheduleCmd(),
	)
	return root
}

// newExportCmd builds one artifact subcommand. Each loads the quote file,
// computes the schedule, and hands both read-only to the exporter.
func newExportCmd(
	configPath *string,
	name, short string,
	export func(quote.Quote, services.Schedule, appconfig.Config, string) error,
) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   name + " <quote.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := loadQuote(args[0])
			if err != nil {
				return err
			}
			cfg, err := appconfig.Load(*configPath)
			if err != nil {
				return err
			}
			s, err := services.ComputeSchedule(q.Subtotal(), q.DurationWeeks)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("Quote_%s.%s", q.Number, name)
			}
			if err := export(q, s, cfg, out); err != nil {
				return err
			}
			color.Green("✓ wrote %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default Quote_<number>."+name+")")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <total> <weeks>",
		Short: "Preview the payment schedule for a total and duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := quote.ParseMoney(args[0])
			if err != nil {
				return err
			}
			weeks, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse weeks %q: %w", args[1], err)
			}
			s, err := services.ComputeSchedule(total, weeks)
			if err != nil {
				return err
			}
			fmt.Printf("Deposit (20%%)  %12s\n", services.FormatUSD(s.Deposit))
			for _, inst := range s.Installments {
				fmt.Printf("Week %-3d       %12s\n", inst.Week, services.FormatUSD(inst.Amount))
			}
			fmt.Printf("Total          %12s\n", services.FormatUSD(s.Total()))
			return nil
		},
	}
}

// loadQuote reads a quote JSON file produced by the editor. Identity fields
// missing from the file are assigned here, which is the one creation point;
// the quote is validated before anything downstream sees it.
func loadQuote(path string) (quote.Quote, error) {
	q := quote.New(time.Now())

	b, err := os.ReadFile(path)
	if err != nil {
		return q, fmt.Errorf("read quote file: %w", err)
	}
	if err := json.Unmarshal(b, &q); err != nil {
		return q, fmt.Errorf("parse quote file %s: %w", path, err)
	}
	if err := q.Validate(); err != nil {
		return q, fmt.Errorf("invalid quote: %w", err)
	}
	return q, nil
}
