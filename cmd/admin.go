package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/tablefinder/internal/analytics"
	"github.com/example/tablefinder/internal/attempts"
	"github.com/example/tablefinder/internal/db"
	"github.com/example/tablefinder/internal/restaurant"
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Review listings and inspect platform activity",
	}
	cmd.AddCommand(newAdminListCmd("restaurants", "List every restaurant", func(ctx context.Context, a *app, token string) ([]restaurant.Restaurant, error) {
		return a.client.AdminRestaurants(ctx, token)
	}))
	cmd.AddCommand(newAdminListCmd("pending", "List restaurants waiting for approval", func(ctx context.Context, a *app, token string) ([]restaurant.Restaurant, error) {
		return a.client.PendingRestaurants(ctx, token)
	}))
	cmd.AddCommand(newAdminDecisionCmd("approve", "Approve a pending restaurant", func(ctx context.Context, a *app, token string, id int64) (restaurant.Restaurant, error) {
		return a.client.ApproveRestaurant(ctx, token, id)
	}))
	cmd.AddCommand(newAdminDecisionCmd("reject", "Reject a pending restaurant", func(ctx context.Context, a *app, token string, id int64) (restaurant.Restaurant, error) {
		return a.client.RejectRestaurant(ctx, token, id)
	}))
	cmd.AddCommand(newAdminRemoveCmd())
	cmd.AddCommand(newAdminAnalyticsCmd())
	cmd.AddCommand(newAdminAttemptsCmd())
	return cmd
}

func newAdminListCmd(use, short string, list func(context.Context, *app, string) ([]restaurant.Restaurant, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToken(func(a *app, token string) error {
				out, err := list(cmd.Context(), a, token)
				if err != nil {
					return err
				}
				return printRestaurants(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newAdminDecisionCmd(verb, short string, decide func(context.Context, *app, string, int64) (restaurant.Restaurant, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <restaurant-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withToken(func(a *app, token string) error {
				r, err := decide(cmd.Context(), a, token, id)
				if err != nil {
					return err
				}
				a.log.WithField("restaurant_id", id).Infof("restaurant %s", verb+"d")
				return printRestaurant(cmd.OutOrStdout(), r)
			})
		},
	}
}

func newAdminRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <restaurant-id>",
		Short: "Delete a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withToken(func(a *app, token string) error {
				if err := a.client.RemoveRestaurant(cmd.Context(), token, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restaurant %d removed.\n", id)
				return nil
			})
		},
	}
}

func newAdminAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Summarize listings over the last 30 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withToken(func(a *app, token string) error {
				list, err := a.client.AdminRestaurants(cmd.Context(), token)
				if err != nil {
					return err
				}
				sum := analytics.Summarize(list, time.Now(), a.cfg.Location)
				if outputJSON {
					return writeJSON(cmd.OutOrStdout(), sum)
				}
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "Restaurants:\t%d\n", sum.Total)
				fmt.Fprintf(w, "Pending:\t%d\n", sum.Pending)
				fmt.Fprintf(w, "New since %s:\t%d\n", sum.Since.Format("2006-01-02"), sum.NewCount)
				for _, c := range sum.TopCities {
					fmt.Fprintf(w, "  %s\t%d\n", c.City, c.Count)
				}
				return w.Flush()
			})
		},
	}
}

func newAdminAttemptsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "attempts",
		Short: "Show recent booking attempts from the local log",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required to read the attempt log")
			}
			d, err := db.Open(cmd.Context(), a.cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			list, err := attempts.NewRepo(d).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if outputJSON {
				if list == nil {
					list = []attempts.Attempt{}
				}
				return writeJSON(cmd.OutOrStdout(), list)
			}
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "WHEN\tRESTAURANT\tTABLE\tPARTY\tTIME\tRESULT")
			for _, at := range list {
				result := "ok " + at.ConfirmationCode
				if !at.Success && at.Error != nil {
					result = "failed: " + *at.Error
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
					at.CreatedAt.In(a.cfg.Location).Format("2006-01-02 15:04"), at.RestaurantID, at.TableID,
					at.PartySize, at.ReservationTime, result)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "number of attempts to show")
	return cmd
}
