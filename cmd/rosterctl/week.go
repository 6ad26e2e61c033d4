package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/roster-availability-api/internal/handler"
	"github.com/noah-isme/roster-availability-api/internal/models"
)

type weekOptions struct {
	traderID int64
	week     string
	shifts   []string
	asJSON   bool
}

func newWeekCmd(bootstrap bootstrapFunc) *cobra.Command {
	opts := &weekOptions{}
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Resolve one trader's availability for a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.traderID <= 0 {
				return fmt.Errorf("--trader must be a positive id")
			}
			return withRuntime(cmd, bootstrap, func(rt *runtime) error {
				return runWeek(cmd, rt, opts)
			})
		},
	}
	cmd.Flags().Int64Var(&opts.traderID, "trader", 0, "trader id")
	cmd.Flags().StringVar(&opts.week, "week", "", "any date in the week (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&opts.shifts, "shifts", nil, "comma separated shift types (default all)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the API JSON shape instead of a grid")
	_ = cmd.MarkFlagRequired("trader")
	return cmd
}

func runWeek(cmd *cobra.Command, rt *runtime, opts *weekOptions) error {
	day, err := parseDateFlag("week", opts.week, rt.Location)
	if err != nil {
		return err
	}
	shifts := make([]models.ShiftType, 0, len(opts.shifts))
	for _, raw := range opts.shifts {
		if raw = strings.TrimSpace(raw); raw != "" {
			shifts = append(shifts, models.ShiftType(strings.ToUpper(raw)))
		}
	}

	week, err := rt.Availability.ResolveWeek(cmd.Context(), opts.traderID, models.MondayOf(day), shifts)
	if err != nil {
		return err
	}
	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(handler.WeekAvailabilityResponse(week))
	}
	return writeWeekGrid(cmd.OutOrStdout(), week)
}

// writeWeekGrid prints one row per date and one column per shift. Available
// slots show their weight.
func writeWeekGrid(w io.Writer, week *models.WeekAvailability) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"DATE", "DAY"}
	for _, shift := range week.ShiftTypes {
		header = append(header, string(shift))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, date := range week.Dates {
		cells := []string{date.Format(models.DateLayout), date.Weekday().String()[:3]}
		for _, shift := range week.ShiftTypes {
			slot, ok := week.Slot(date, shift)
			switch {
			case !ok:
				cells = append(cells, "?")
			case slot.Status == models.AvailabilityAvailable:
				cells = append(cells, fmt.Sprintf("%s(%d)", slot.Status, slot.Weight))
			default:
				cells = append(cells, string(slot.Status))
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
