package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/token"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display session and tenant status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Session")
		session := a.session.Current()
		if !session.Authenticated {
			pterm.Warning.Println("Not logged in")
			return nil
		}

		pterm.Info.Printf("User: %s (%s)\n", session.User.DisplayName, session.User.Email)
		if len(session.User.Roles) > 0 {
			pterm.Info.Printf("Roles: %s\n", strings.Join(session.User.Roles, ", "))
		}

		// local hint only; the backend remains the authority
		if payload := token.Decode(session.AccessToken); payload != nil {
			expiry := time.Unix(payload.ExpiresAt, 0)
			if token.IsExpired(session.AccessToken) {
				pterm.Warning.Printf("Access token expired at %s\n", expiry.Format(time.RFC1123))
			} else {
				pterm.Info.Printf("Access token expires at %s\n", expiry.Format(time.RFC1123))
			}
		}

		pterm.DefaultSection.Println("Tenants")
		memberships := a.tenantCtx.Memberships()
		if len(memberships) == 0 {
			pterm.Info.Println("No tenant memberships (global mode)")
			return nil
		}

		active := a.tenantCtx.ActiveTenantID()
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\tID\tNAME\tROLE")
		for _, m := range memberships {
			marker := " "
			if m.TenantID == active {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, m.TenantID, m.Name, m.Role)
		}
		return w.Flush()
	},
}
