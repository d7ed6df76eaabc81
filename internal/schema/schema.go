// Package schema owns the PostgreSQL DDL for every mealcare table.
package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var ddl string

// Tables lists every table in child-to-parent order, so truncating or dropping
// in this order never trips a foreign key.
var Tables = []string{
	"audit_logs",
	"meal_order_components",
	"meal_orders",
	"menu_items",
	"menus",
	"resident_allergies",
	"residents",
	"users",
	"rooms",
	"wings",
	"tenants",
}

// DDL returns the schema script.
func DDL() string {
	return ddl
}

// Apply runs the schema script. It is idempotent.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
