package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/sessions"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and establish a session",
	Long: `Authenticates against the backend with email and password. On success
the tokens and user record are stored durably and the active tenant is
resolved from the returned membership list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		if loginEmail == "" {
			return errors.New("--email is required")
		}

		password := loginPassword
		if password == "" {
			fmt.Print("Password: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		session, err := a.session.Login(cmd.Context(), sessions.Credentials{
			Email:    loginEmail,
			Password: password,
		})
		if err != nil {
			if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
				// deliberately generic: wrong password and unknown
				// account read the same
				return errors.New("invalid credentials")
			}
			return err
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", session.User.DisplayName, session.User.Email)
		if m := a.tenantCtx.ActiveMembership(); m != nil {
			pterm.Info.Printf("Active tenant: %s (%s)\n", m.Name, m.TenantID)
		} else {
			pterm.Info.Println("No active tenant (global mode)")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}
