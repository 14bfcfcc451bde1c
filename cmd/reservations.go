package cmd

import (
	"fmt"

	"github.com/example/tablefinder/internal/bookings"
	"github.com/spf13/cobra"
)

func newReservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"res"},
		Short:   "List and manage your reservations",
	}
	cmd.AddCommand(newReservationsListCmd())
	cmd.AddCommand(newReservationsCancelCmd())
	cmd.AddCommand(newReservationsReviewCmd())
	return cmd
}

// withCustomer loads settings, token and service for the reservation subcommands.
func withCustomer(cmd *cobra.Command, fn func(svc *bookings.Service, token string) error) error {
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
	return fn(svc, token)
}

func newReservationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCustomer(cmd, func(svc *bookings.Service, token string) error {
				list, err := svc.Reservations(cmd.Context(), token)
				if err != nil {
					return err
				}
				if outputJSON {
					return writeJSON(cmd.OutOrStdout(), list)
				}
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "ID\tRESTAURANT\tTIME\tPARTY\tSTATUS\tCODE\tREVIEW")
				for _, r := range list {
					review := "-"
					if r.Review != nil {
						review = fmt.Sprintf("%d/5", r.Review.Rating)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
						r.ID, orDash(r.RestaurantName), r.ReservationTime, r.PartySize, r.Status,
						orDash(r.ConfirmationCode), review)
				}
				return w.Flush()
			})
		},
	}
}

func newReservationsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <reservation-id>",
		Short: "Cancel a confirmed reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCustomer(cmd, func(svc *bookings.Service, token string) error {
				if err := svc.Cancel(cmd.Context(), token, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reservation %d canceled.\n", id)
				return nil
			})
		},
	}
}

func newReservationsReviewCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)

	cmd := &cobra.Command{
		Use:   "review <reservation-id>",
		Short: "Review a completed reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withCustomer(cmd, func(svc *bookings.Service, token string) error {
				if err := svc.Review(cmd.Context(), token, id, rating, comment); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Thanks, your review of reservation %d was saved.\n", id)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "optional comment")
	return cmd
}
