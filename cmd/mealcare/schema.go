package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mealcare/internal/schema"
)

func (c *cli) newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [print|apply]",
		Short: "Print or apply the database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Write the schema DDL to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), schema.DDL())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables, indexes and triggers",
		Long: `Apply the schema to the configured database. Every statement is
idempotent, so running apply against an up-to-date database changes nothing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := schema.Apply(cmd.Context(), a.DB); err != nil {
				return err
			}
			c.logger.InfoContext(cmd.Context(), "schema applied", "tables", len(schema.Tables))
			return nil
		},
	})
	return cmd
}
