package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-tenant-client/guards"
	"github.com/jrsteele09/go-tenant-client/transport"
)

var callGlobal bool

var callCmd = &cobra.Command{
	Use:   "call <path>",
	Short: "Issue a GET through the full request pipeline",
	Long: `Sends a GET request for the given path (relative to the configured
base URL) through the identity, tenant and error-normalization
interceptors, and prints the JSON response. With --global the tenant
guard is skipped for endpoints that are not tenant-scoped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		path := args[0]

		guard := guards.AllOf(
			guards.RequireAuthenticated(a.session, a.cfg.GetLoginPath()),
			guards.RequireTenant(a.tenantCtx, a.cfg.GetTenantSelectPath()),
		)
		if callGlobal {
			guard = guards.RequireAuthenticated(a.session, a.cfg.GetLoginPath())
		}
		if decision := guard(path); !decision.Allowed {
			return fmt.Errorf("blocked, would redirect to %s", decision.RedirectTo)
		}

		var out any
		if err := a.facade.GetJSON(cmd.Context(), path, &out); err != nil {
			var apiErr *transport.APIError
			if errors.As(err, &apiErr) {
				pterm.Error.Printf("%s [%d %s] at %s\n", apiErr.Message, apiErr.StatusCode, apiErr.ErrorCode, apiErr.Path)
				return errors.New("request failed")
			}
			return err
		}

		pretty, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(pretty))
		return nil
	},
}

func init() {
	callCmd.Flags().BoolVar(&callGlobal, "global", false, "Call a non-tenant-scoped endpoint")
}
