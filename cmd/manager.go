package cmd

import (
	"fmt"
	"io"

	"github.com/example/tablefinder/internal/restaurant"
	"github.com/spf13/cobra"
)

func newManagerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "Manage the restaurants you own",
	}
	cmd.AddCommand(newManagerListCmd())
	cmd.AddCommand(newManagerShowCmd())
	cmd.AddCommand(newManagerAddCmd())
	cmd.AddCommand(newManagerUpdateCmd())
	return cmd
}

// withToken is withCustomer for commands that talk to the backend client directly.
func withToken(fn func(a *app, token string) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	token, err := a.token()
	if err != nil {
		return err
	}
	return fn(a, token)
}

func printRestaurants(w io.Writer, list []restaurant.Restaurant) error {
	if outputJSON {
		return writeJSON(w, list)
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCUISINE\tCITY\tSTATE\tAPPROVED\tBOOKED TODAY")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\t%d\n",
			r.ID, r.Name, orDash(r.CuisineType), orDash(r.City), orDash(r.State), r.IsApproved, r.TimesBookedToday)
	}
	return tw.Flush()
}

func printRestaurant(w io.Writer, r restaurant.Restaurant) error {
	if outputJSON {
		return writeJSON(w, r)
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", r.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Cuisine:\t%s %s\n", orDash(r.CuisineType), r.CostLabel())
	fmt.Fprintf(tw, "Address:\t%s, %s, %s %s\n", orDash(r.AddressLine1), r.City, r.State, r.ZipCode)
	fmt.Fprintf(tw, "Contact:\t%s %s\n", orDash(r.PhoneNumber), r.Email)
	fmt.Fprintf(tw, "Rating:\t%.1f (%d reviews)\n", r.AvgRating, r.ReviewCount())
	fmt.Fprintf(tw, "Approved:\t%t\n", r.IsApproved)
	fmt.Fprintf(tw, "Tables:\t%d\n", len(r.Tables))
	fmt.Fprintf(tw, "Booked today:\t%d\n", r.TimesBookedToday)
	return tw.Flush()
}

func newManagerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your restaurants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToken(func(a *app, token string) error {
				list, err := a.client.ManagerRestaurants(cmd.Context(), token)
				if err != nil {
					return err
				}
				return printRestaurants(cmd.OutOrStdout(), list)
			})
		},
	}
}

func newManagerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <restaurant-id>",
		Short: "Show one of your restaurants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withToken(func(a *app, token string) error {
				r, err := a.client.ManagerRestaurant(cmd.Context(), token, id)
				if err != nil {
					return err
				}
				return printRestaurant(cmd.OutOrStdout(), r)
			})
		},
	}
}

func newManagerAddCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a new restaurant for approval",
		Long:  "Reads the listing as JSON from --file (\"-\" for stdin).",
		RunE: func(cmd *cobra.Command, args []string) error {
			var l restaurant.Listing
			if err := readJSON(file, cmd.InOrStdin(), &l); err != nil {
				return err
			}
			if err := l.Validate(); err != nil {
				return err
			}
			return withToken(func(a *app, token string) error {
				r, err := a.client.CreateListing(cmd.Context(), token, l)
				if err != nil {
					return err
				}
				return printRestaurant(cmd.OutOrStdout(), r)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "listing JSON file")
	return cmd
}

func newManagerUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <restaurant-id>",
		Short: "Change fields of one of your restaurants",
		Long:  "Reads the changed fields as JSON from --file (\"-\" for stdin).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var u restaurant.ListingUpdate
			if err := readJSON(file, cmd.InOrStdin(), &u); err != nil {
				return err
			}
			if u.Empty() {
				return fmt.Errorf("nothing to update")
			}
			if err := u.Validate(); err != nil {
				return err
			}
			return withToken(func(a *app, token string) error {
				r, err := a.client.UpdateListing(cmd.Context(), token, id, u)
				if err != nil {
					return err
				}
				return printRestaurant(cmd.OutOrStdout(), r)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "update JSON file")
	return cmd
}
