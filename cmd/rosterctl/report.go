package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/roster-availability-api/internal/models"
)

type reportOptions struct {
	date     string
	location string
	format   string
	out      string
}

func newReportCmd(bootstrap bootstrapFunc) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the daily resources report",
		Long: `Classify every active trader for one date.

Formats:
  table  aligned columns on stdout (default)
  csv    CSV document
  xlsx   Excel workbook, requires --out
  pdf    PDF document, requires --out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, bootstrap, func(rt *runtime) error {
				return runReport(cmd, rt, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.date, "date", "", "report date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.location, "location", "", "restrict to one trader location")
	cmd.Flags().StringVar(&opts.format, "format", "table", "output format: table, csv, xlsx or pdf")
	cmd.Flags().StringVar(&opts.out, "out", "", "write to this file instead of stdout")
	return cmd
}

func runReport(cmd *cobra.Command, rt *runtime, opts *reportOptions) error {
	date, err := parseDateFlag("date", opts.date, rt.Location)
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if (format == "pdf" || format == "xlsx") && opts.out == "" {
		return fmt.Errorf("--out is required for %s output", format)
	}

	var payload []byte
	switch format {
	case "table", "":
		rows, err := rt.Reports.Report(cmd.Context(), date, opts.location)
		if err != nil {
			return err
		}
		var sb strings.Builder
		if err := writeReportTable(&sb, rows); err != nil {
			return err
		}
		payload = []byte(sb.String())
	default:
		result, err := rt.Exports.ExportDaily(cmd.Context(), date, opts.location, format)
		if err != nil {
			return err
		}
		payload = result.Payload
	}

	if opts.out == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(opts.out, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	rt.Logger.Info("report written",
		zap.String("path", opts.out),
		zap.String("format", format),
		zap.String("date", date.Format(models.DateLayout)),
	)
	return nil
}

func writeReportTable(w io.Writer, rows []models.DailyResourceRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tNAME\tALIAS\tSTATUS\tREASON")
	for _, row := range rows {
		alias := "-"
		if row.Alias != nil && *row.Alias != "" {
			alias = *row.Alias
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Location, row.Name, alias, row.Status, row.Reason)
	}
	return tw.Flush()
}
