package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/roster-availability-api/internal/shadow"
)

type shadowOptions struct {
	goBase      string
	legacyBase  string
	targetsPath string
	timeout     time.Duration
}

func newShadowCmd() *cobra.Command {
	opts := &shadowOptions{}
	cmd := &cobra.Command{
		Use:   "shadow",
		Short: "Compare API responses against the legacy roster service",
		Long: `Issue each target against both base URLs and diff status codes and bodies.
Base URLs include their API prefix, for example http://localhost:8080/api/v1
and http://localhost:8000/api. Exits non-zero when a critical target differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShadow(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.goBase, "go-base", "http://localhost:8080/api/v1", "API base URL")
	cmd.Flags().StringVar(&opts.legacyBase, "legacy-base", "http://localhost:8000/api", "legacy service base URL")
	cmd.Flags().StringVar(&opts.targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "path to JSON targets file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "HTTP client timeout")
	return cmd
}

func runShadow(cmd *cobra.Command, opts *shadowOptions) error {
	targets, err := shadow.LoadTargets(opts.targetsPath)
	if err != nil {
		return fmt.Errorf("load targets: %w", err)
	}
	comparer := shadow.NewComparer(&http.Client{Timeout: opts.timeout}, opts.goBase, opts.legacyBase, nil)
	report := comparer.Run(cmd.Context(), targets)
	shadow.WriteReport(cmd.OutOrStdout(), report)
	if report.Breaking > 0 {
		return fmt.Errorf("%d breaking diffs", report.Breaking)
	}
	return nil
}
