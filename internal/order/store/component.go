package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	menumodels "mealcare/internal/menu/models"
	"mealcare/internal/order/models"
	"mealcare/internal/platform/database"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/tx"
)

// quantity is NUMERIC(5, 2); reading it as float8 keeps both drivers on float64.
const componentColumns = `
	id, tenant_id, meal_order_id, menu_item_id, component_type, quantity::float8,
	texture_modification, special_instructions, created_at`

func (s *PostgresStore) CreateComponent(ctx context.Context, c *models.Component) error {
	query := `
		INSERT INTO meal_order_components (
			id, tenant_id, meal_order_id, menu_item_id, component_type, quantity,
			texture_modification, special_instructions, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(c.ID), uuid.UUID(c.TenantID), uuid.UUID(c.OrderID), domain.NullableUUID(c.MenuItemID),
		string(c.ComponentType), c.Quantity, c.TextureModification, c.SpecialInstructions, c.CreatedAt,
	)
	return database.Classify("insert order component", err)
}

// ListComponents returns an order's components in the order they were added.
func (s *PostgresStore) ListComponents(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID) ([]*models.Component, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+componentColumns+` FROM meal_order_components
		 WHERE tenant_id = $1 AND meal_order_id = $2
		 ORDER BY created_at, id`,
		uuid.UUID(tenantID), uuid.UUID(orderID))
	if err != nil {
		return nil, database.Classify("list order components", err)
	}
	defer rows.Close()

	var components []*models.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate order components", err)
	}
	return components, nil
}

func (s *PostgresStore) FindComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, id domain.ComponentID) (*models.Component, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+componentColumns+` FROM meal_order_components
		 WHERE tenant_id = $1 AND meal_order_id = $2 AND id = $3`,
		uuid.UUID(tenantID), uuid.UUID(orderID), uuid.UUID(id))
	c, err := scanComponent(row)
	if err != nil {
		return nil, database.Classify("find order component", err)
	}
	return c, nil
}

func (s *PostgresStore) DeleteComponent(ctx context.Context, tenantID domain.TenantID, orderID domain.MealOrderID, id domain.ComponentID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM meal_order_components WHERE tenant_id = $1 AND meal_order_id = $2 AND id = $3`,
		uuid.UUID(tenantID), uuid.UUID(orderID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete order component", err)
	}
	return requireRow(res, "delete order component")
}

func scanComponent(row scanner) (*models.Component, error) {
	var (
		c                     models.Component
		id, tenantID, orderID uuid.UUID
		menuItemID            uuid.NullUUID
		componentType         string
		createdAt             time.Time
	)
	if err := row.Scan(&id, &tenantID, &orderID, &menuItemID, &componentType, &c.Quantity,
		&c.TextureModification, &c.SpecialInstructions, &createdAt); err != nil {
		return nil, err
	}
	c.ID = domain.ComponentID(id)
	c.TenantID = domain.TenantID(tenantID)
	c.OrderID = domain.MealOrderID(orderID)
	c.MenuItemID = domain.FromNullableUUID[domain.MenuItemID](menuItemID)
	c.ComponentType = menumodels.ComponentType(componentType)
	c.CreatedAt = createdAt.UTC()
	return &c, nil
}
