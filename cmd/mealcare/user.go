package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"mealcare/internal/user/models"
	"mealcare/pkg/domain"
)

const (
	userEmailFlag     = "email"
	userFirstNameFlag = "first-name"
	userLastNameFlag  = "last-name"
	userRoleFlag      = "role"
	userTenantFlag    = "tenant"
	userStaffFlag     = "staff"
)

var userCreateFlags = map[string]cobraflags.Flag{
	userEmailFlag: &cobraflags.StringFlag{
		Name:  userEmailFlag,
		Usage: "Login email, unique across all tenants",
	},
	userFirstNameFlag: &cobraflags.StringFlag{
		Name:  userFirstNameFlag,
		Usage: "First name",
	},
	userLastNameFlag: &cobraflags.StringFlag{
		Name:  userLastNameFlag,
		Usage: "Last name",
	},
	userRoleFlag: &cobraflags.StringFlag{
		Name:  userRoleFlag,
		Value: string(models.DefaultRole),
		Usage: "One of super_admin, venue_admin, carer, kitchen, dietitian, auditor",
	},
	userTenantFlag: &cobraflags.StringFlag{
		Name:  userTenantFlag,
		Usage: "Tenant ID (required for every role except super_admin)",
	},
	userStaffFlag: &cobraflags.BoolFlag{
		Name:  userStaffFlag,
		Usage: "Grant access to operator tooling",
	},
}

func (c *cli) newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user; the password is read from the first line of stdin",
		Example: `  printf '%s\n' "$PASSWORD" | mealcare user create --email maria@oakview.example \
      --first-name Maria --last-name Lopez --role carer --tenant 6f1c...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := models.ParseRole(userCreateFlags[userRoleFlag].GetString())
			if err != nil {
				return err
			}
			profile := models.Profile{
				Email:     userCreateFlags[userEmailFlag].GetString(),
				FirstName: userCreateFlags[userFirstNameFlag].GetString(),
				LastName:  userCreateFlags[userLastNameFlag].GetString(),
				Role:      role,
				IsStaff:   userCreateFlags[userStaffFlag].GetBool(),
			}
			if raw := userCreateFlags[userTenantFlag].GetString(); raw != "" {
				tenantID, err := domain.ParseTenantID(raw)
				if err != nil {
					return err
				}
				profile.TenantID = &tenantID
			}

			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			ctx, err := c.actorContext(cmd.Context())
			if err != nil {
				return err
			}
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.Users.CreateUser(ctx, profile, password)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	cobraflags.RegisterMap(create, userCreateFlags)
	cmd.AddCommand(create)
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required on stdin")
	}
	return password, nil
}
