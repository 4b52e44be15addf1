package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aiscreen-io/canvasctl/internal/models"
	"github.com/aiscreen-io/canvasctl/internal/validation"
)

func newLoginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store a session token",
		Long: `Sign in to the canvas backend. The session token is stored on disk
(owner-readable only) and reused by later commands until it expires or
you run 'canvasctl logout'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			// The login screen is guest-only: an existing session wins.
			decision := a.guard.Resolve("/login")
			if !decision.Allowed {
				fmt.Fprintln(cmd.OutOrStdout(), "Already signed in. Run 'canvasctl logout' to switch accounts.")
				return nil
			}

			if email == "" {
				if email, err = promptLine("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword("Password"); err != nil {
					return err
				}
			}

			form := validation.ValidateLoginForm(validation.LoginForm{Email: email, Password: password})
			if !form.IsValid {
				return validationError(form)
			}

			result, err := a.store.Login(cmd.Context(), models.Credentials{Email: email, Password: password})
			if err != nil {
				a.authToasts.LoginError(err.Error())
				return err
			}

			name := ""
			if result.User != nil {
				name = result.User.Name
			}
			a.authToasts.LoginSuccess(name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted; prefer the prompt)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Logout(); err != nil {
				return err
			}
			a.authToasts.LogoutSuccess()
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.resolveRoute("/"); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if user := a.sessions.User(); user != nil {
				fmt.Fprintf(out, "Signed in as %s <%s>\n", user.Name, user.Email)
				return nil
			}
			fmt.Fprintln(out, "Signed in (session restored from stored token)")
			return nil
		},
	}
}

// validationError flattens a field-keyed validation result into one
// actionable error.
func validationError(result validation.Result) error {
	fields := make([]string, 0, len(result.Errors))
	for field := range result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, result.Errors[field]))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
}
