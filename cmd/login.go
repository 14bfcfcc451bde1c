package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend and print the access token",
		Long:  "Reads the password from stdin and prints an export line for BACKEND_TOKEN.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			a, err := loadApp()
			if err != nil {
				return err
			}
			password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && password == "" {
				return fmt.Errorf("read password: %w", err)
			}
			sess, err := a.client.Login(cmd.Context(), username, strings.TrimRight(password, "\r\n"))
			if err != nil {
				return err
			}
			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export BACKEND_TOKEN=%s\n", sess.AccessToken)
			a.log.WithField("role", sess.Role).Info("logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "backend username")
	return cmd
}
