package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	pkgvalidator "github.com/venue-master/admin-console/pkg/validator"
	"github.com/venue-master/admin-console/services/auth/domain/models"
)

func newLoginCommand(e *env) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the issued tokens",
		Long: `Sign in with an operator account. Without --password the password is read
from the first line of standard input:

  echo "$ADMIN_PASSWORD" | adminctl login --email ops@venue-master.io`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password required: pass --password or pipe it on stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			creds := models.Credentials{Email: email, Password: password}
			if err := pkgvalidator.Validate(&creds); err != nil {
				return fmt.Errorf("invalid credentials: %v", pkgvalidator.FormatValidationErrors(err))
			}
			user, err := e.sess.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: this account has no admin role; most commands will be refused")
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (visible in shell history, prefer stdin)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.sess.Logout(cmd.Context())
		},
	}
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := e.sess.Status(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), st)
		},
	}
}
