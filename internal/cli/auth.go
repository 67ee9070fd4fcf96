package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lycosidae/internal/auth/models"
	"lycosidae/internal/auth/service"
)

var registerFlags struct {
	username string
	email    string
	password string
	phone    string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and start a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		user, err := a.auth.Register(cmd.Context(), models.RegisterRequest{
			Username:    registerFlags.username,
			Email:       registerFlags.email,
			Password:    registerFlags.password,
			PhoneNumber: registerFlags.phone,
		})
		if err != nil {
			var ve *service.ValidationError
			if errors.As(err, &ve) {
				for field, msg := range ve.Fields {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
				}
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Conta criada: %s <%s>\n", user.Username, user.Email)
		return nil
	},
}

var loginFlags struct {
	email    string
	password string
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		user, err := a.auth.Login(cmd.Context(), models.LoginRequest{
			Email:    loginFlags.email,
			Password: loginFlags.password,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Sessão iniciada para %s\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		if err := a.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.shutdown()

		user, err := a.auth.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma sessão ativa")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerFlags.username, "username", "u", "", "username (3-50 chars, letters/digits/_/-)")
	registerCmd.Flags().StringVarP(&registerFlags.email, "email", "e", "", "email address")
	registerCmd.Flags().StringVarP(&registerFlags.password, "password", "p", "", "password")
	registerCmd.Flags().StringVar(&registerFlags.phone, "phone", "", "phone in international format (optional)")
	registerCmd.MarkFlagRequired("username") //nolint:errcheck // flag exists
	registerCmd.MarkFlagRequired("email")    //nolint:errcheck // flag exists
	registerCmd.MarkFlagRequired("password") //nolint:errcheck // flag exists

	loginCmd.Flags().StringVarP(&loginFlags.email, "email", "e", "", "email address")
	loginCmd.Flags().StringVarP(&loginFlags.password, "password", "p", "", "password")
	loginCmd.MarkFlagRequired("email")    //nolint:errcheck // flag exists
	loginCmd.MarkFlagRequired("password") //nolint:errcheck // flag exists

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}
