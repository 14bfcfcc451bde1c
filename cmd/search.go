package cmd

import (
	"fmt"
	"strings"

	"github.com/example/tablefinder/internal/availability"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var f availability.Filter

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "List restaurants with a table near the requested time",
		Example: "  tablefinder search --date 2030-03-20 --time 19:00 --party 4 --location brooklyn",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			svc, cleanup, err := a.service(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}
			matches, err := svc.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), matches)
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No restaurants have a table near that time.")
				return nil
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tCUISINE\tCOST\tRATING\tLOCATION\tSLOTS")
			for _, m := range matches {
				r := m.Restaurant
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.1f\t%s, %s %s\t%s\n",
					r.ID, r.Name, orDash(r.CuisineType), orDash(r.CostLabel()), r.AvgRating,
					r.City, r.State, r.ZipCode, strings.Join(m.Slots, " "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&f.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Time, "time", "", "time on the half-hour grid (HH:MM)")
	cmd.Flags().IntVar(&f.PartySize, "party", 2, "number of people")
	cmd.Flags().StringVar(&f.Location, "location", "", "city, state or zip code (substring)")
	return cmd
}
