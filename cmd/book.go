package cmd

import (
	"fmt"

	"github.com/example/tablefinder/internal/bookings"
	"github.com/spf13/cobra"
)

func newBookCmd() *cobra.Command {
	var req bookings.BookRequest

	cmd := &cobra.Command{
		Use:     "book",
		Short:   "Book an offered slot at a restaurant",
		Example: "  tablefinder book --restaurant 12 --date 2030-03-20 --slot 19:30 --party 4",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			token, err := a.token()
			if err != nil {
				return err
			}
			svc, cleanup, err := a.service(cmd.Context())
			defer cleanup()
			if err != nil {
				return err
			}
			res, err := svc.Book(cmd.Context(), token, req)
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked %s for %d at %s (confirmation %s)\n",
				orDash(res.RestaurantName), res.PartySize, res.ReservationTime, res.ConfirmationCode)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.RestaurantID, "restaurant", 0, "restaurant id")
	cmd.Flags().StringVar(&req.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Slot, "slot", "", "offered slot (HH:MM)")
	cmd.Flags().StringVar(&req.Time, "time", "", "time searched for; the slot must be near it (HH:MM)")
	cmd.Flags().IntVar(&req.PartySize, "party", 2, "number of people")
	cmd.Flags().StringVar(&req.SpecialRequests, "request", "", "special request for the restaurant")
	return cmd
}
