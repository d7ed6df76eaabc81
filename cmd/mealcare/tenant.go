package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"mealcare/internal/tenant/models"
)

const (
	tenantNameFlag     = "name"
	tenantSlugFlag     = "slug"
	tenantEmailFlag    = "contact-email"
	tenantPhoneFlag    = "phone"
	tenantAddressFlag  = "address"
	tenantTimezoneFlag = "timezone"
)

var tenantCreateFlags = map[string]cobraflags.Flag{
	tenantNameFlag: &cobraflags.StringFlag{
		Name:  tenantNameFlag,
		Usage: "Display name of the care facility",
	},
	tenantSlugFlag: &cobraflags.StringFlag{
		Name:  tenantSlugFlag,
		Usage: "Unique URL-safe identifier (lowercase letters, digits, hyphens)",
	},
	tenantEmailFlag: &cobraflags.StringFlag{
		Name:  tenantEmailFlag,
		Usage: "Contact email",
	},
	tenantPhoneFlag: &cobraflags.StringFlag{
		Name:  tenantPhoneFlag,
		Usage: "Contact phone number",
	},
	tenantAddressFlag: &cobraflags.StringFlag{
		Name:  tenantAddressFlag,
		Usage: "Postal address",
	},
	tenantTimezoneFlag: &cobraflags.StringFlag{
		Name:  tenantTimezoneFlag,
		Value: models.DefaultTimezone,
		Usage: "IANA timezone the facility plans meals in",
	},
}

func (c *cli) newTenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants",
	}
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant and print it as JSON",
		Example: `  mealcare tenant create --name "Oakview" --slug oakview --timezone Australia/Sydney`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := c.actorContext(cmd.Context())
			if err != nil {
				return err
			}
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.Tenants.CreateTenant(ctx, models.TenantProfile{
				Name:         tenantCreateFlags[tenantNameFlag].GetString(),
				Slug:         tenantCreateFlags[tenantSlugFlag].GetString(),
				ContactEmail: tenantCreateFlags[tenantEmailFlag].GetString(),
				Phone:        tenantCreateFlags[tenantPhoneFlag].GetString(),
				Address:      tenantCreateFlags[tenantAddressFlag].GetString(),
				Timezone:     tenantCreateFlags[tenantTimezoneFlag].GetString(),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	cobraflags.RegisterMap(create, tenantCreateFlags)
	cmd.AddCommand(create)
	return cmd
}
