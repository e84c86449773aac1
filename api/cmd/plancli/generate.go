package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/utils"
)

type generateOptions struct {
	start      string
	end        string
	adults     int
	children   int
	infants    int
	activities []string
	budget     string
	pace       string
	jsonOut    bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an itinerary and print its timeline",
		Example: `  plancli generate --start 2024-04-01 --end 2024-04-03 --adults 2 --activities temples,food
  plancli generate --start 2024-04-01 --end 2024-04-05 --activities nature --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := opts.preferences()
			if err != nil {
				return err
			}
			return runGenerate(prefs, opts.jsonOut, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.start, "start", "", "First day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "Last day of the trip (YYYY-MM-DD)")
	f.IntVar(&opts.adults, "adults", 1, "Number of adults")
	f.IntVar(&opts.children, "children", 0, "Number of children")
	f.IntVar(&opts.infants, "infants", 0, "Number of infants")
	f.StringSliceVar(&opts.activities, "activities", nil, "Activity categories, comma separated")
	f.StringVar(&opts.budget, "budget", string(planner.BudgetMid), "Budget range: budget, mid-range or luxury")
	f.StringVar(&opts.pace, "pace", string(planner.PaceModerate), "Trip pace: relaxed, moderate or packed")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the itinerary as JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (o generateOptions) preferences() (planner.TripPreferences, error) {
	start, err := planner.ParseDate(o.start)
	if err != nil {
		return planner.TripPreferences{}, fmt.Errorf("--start: %w", err)
	}
	end, err := planner.ParseDate(o.end)
	if err != nil {
		return planner.TripPreferences{}, fmt.Errorf("--end: %w", err)
	}

	prefs := planner.TripPreferences{
		StartDate:          start,
		EndDate:            end,
		Adults:             o.adults,
		Children:           o.children,
		Infants:            o.infants,
		BudgetRange:        planner.BudgetRange(o.budget),
		TripPace:           planner.TripPace(o.pace),
		AccessibilityNeeds: []string{},
	}
	for _, a := range o.activities {
		for _, part := range utils.SplitCSV(a) {
			prefs.Activities = append(prefs.Activities, planner.ActivityType(part))
		}
	}
	return prefs, nil
}

func runGenerate(prefs planner.TripPreferences, jsonOut bool, w io.Writer) error {
	it, err := planner.GenerateItinerary(prefs)
	if err != nil {
		return err
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(it)
	}

	fmt.Fprintf(w, "%d day trip for %d travelers, estimated cost ¥%.0f\n",
		it.TripDuration, prefs.TotalTravelers(), it.TotalEstimatedCost)

	for _, day := range planner.Timeline(it) {
		fmt.Fprintf(w, "\nDay %d (%s)", day.Day, day.Date)
		if len(day.Slots) == 0 {
			fmt.Fprintln(w, ": free day")
			continue
		}
		fmt.Fprintf(w, ", %s\n", day.Duration)
		for _, slot := range day.Slots {
			a := slot.Activity
			fmt.Fprintf(w, "  %8s - %-8s  %s (%s, %s)\n",
				slot.StartTime, slot.EndTime, a.Title, a.Location.Name, a.Category)
		}
	}
	return nil
}
