package main

import (
	"github.com/go-extras/cobraflags"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mealcare/internal/audit/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
)

const (
	auditTenantFlag     = "tenant-id"
	auditEntityTypeFlag = "entity-type"
	auditEntityIDFlag   = "entity-id"
	auditUserFlag       = "user-id"
	auditLimitFlag      = "limit"
)

var auditListFlags = map[string]cobraflags.Flag{
	auditTenantFlag: &cobraflags.StringFlag{
		Name:  auditTenantFlag,
		Usage: "Only records of this tenant ID",
	},
	auditEntityTypeFlag: &cobraflags.StringFlag{
		Name:  auditEntityTypeFlag,
		Usage: "Only records of this entity type, e.g. Resident or MealOrder",
	},
	auditEntityIDFlag: &cobraflags.StringFlag{
		Name:  auditEntityIDFlag,
		Usage: "Only records of this entity ID (requires --entity-type)",
	},
	auditUserFlag: &cobraflags.StringFlag{
		Name:  auditUserFlag,
		Usage: "Only records written by this user ID",
	},
	auditLimitFlag: &cobraflags.IntFlag{
		Name:  auditLimitFlag,
		Value: models.DefaultListLimit,
		Usage: "Maximum number of records, newest first",
	},
}

func (c *cli) newAuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read the audit trail",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "Print audit records as JSON, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := auditFilterFromFlags()
			if err != nil {
				return err
			}
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.Audit.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
	cobraflags.RegisterMap(list, auditListFlags)
	cmd.AddCommand(list)
	return cmd
}

func auditFilterFromFlags() (models.Filter, error) {
	f := models.Filter{
		EntityType: auditListFlags[auditEntityTypeFlag].GetString(),
		Limit:      auditListFlags[auditLimitFlag].GetInt(),
	}
	if raw := auditListFlags[auditTenantFlag].GetString(); raw != "" {
		tenantID, err := domain.ParseTenantID(raw)
		if err != nil {
			return f, err
		}
		f.TenantID = &tenantID
	}
	if raw := auditListFlags[auditUserFlag].GetString(); raw != "" {
		userID, err := domain.ParseUserID(raw)
		if err != nil {
			return f, err
		}
		f.UserID = &userID
	}
	if raw := auditListFlags[auditEntityIDFlag].GetString(); raw != "" {
		entityID, err := uuid.Parse(raw)
		if err != nil {
			return f, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid entity ID")
		}
		f.EntityID = &entityID
	}
	return f, nil
}
