package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Inspect and switch the active tenant",
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenants available to the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		memberships := a.tenantCtx.Memberships()
		if len(memberships) == 0 {
			pterm.Info.Println("No tenant memberships")
			return nil
		}

		active := a.tenantCtx.ActiveTenantID()
		data := pterm.TableData{{"", "ID", "Name", "Role"}}
		for _, m := range memberships {
			marker := ""
			if m.TenantID == active {
				marker = "*"
			}
			data = append(data, []string{marker, m.TenantID, m.Name, m.Role})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var tenantUseCmd = &cobra.Command{
	Use:   "use <tenant-id>",
	Short: "Switch the active tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}

		tenantID := args[0]
		if !a.tenantCtx.SetActive(tenantID, true) {
			return fmt.Errorf("tenant %q is not in your membership list", tenantID)
		}
		pterm.Success.Printf("Active tenant is now %s\n", tenantID)
		return nil
	},
}

func init() {
	tenantCmd.AddCommand(tenantListCmd)
	tenantCmd.AddCommand(tenantUseCmd)
}
