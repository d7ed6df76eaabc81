package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mealcare/internal/menu/models"
	"mealcare/internal/platform/database"
	"mealcare/pkg/domain"
	"mealcare/pkg/platform/tx"
)

const itemColumns = `
	id, tenant_id, menu_id, component_type, name, description,
	iddsi_levels::text, allergens::text, portion_size_g, is_available, created_at, updated_at`

func (s *PostgresStore) CreateItem(ctx context.Context, i *models.Item) error {
	query := `
		INSERT INTO menu_items (
			id, tenant_id, menu_id, component_type, name, description,
			iddsi_levels, allergens, portion_size_g, is_available, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text[], $8::text[], $9, $10, $11, $12)
	`
	_, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(i.ID), uuid.UUID(i.TenantID), uuid.UUID(i.MenuID), string(i.ComponentType),
		i.Name, i.Description, tagArray(i.IDDSILevels), tagArray(i.Allergens),
		database.NullInt(i.PortionSizeG), i.IsAvailable, i.CreatedAt, i.UpdatedAt,
	)
	return database.Classify("insert menu item", err)
}

func (s *PostgresStore) FindItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) (*models.Item, error) {
	row := tx.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM menu_items WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	i, err := scanItem(row)
	if err != nil {
		return nil, database.Classify("find menu item", err)
	}
	return i, nil
}

// ListItems returns a menu's items grouped by component type.
func (s *PostgresStore) ListItems(ctx context.Context, tenantID domain.TenantID, menuID domain.MenuID) ([]*models.Item, error) {
	rows, err := tx.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+itemColumns+` FROM menu_items
		 WHERE tenant_id = $1 AND menu_id = $2
		 ORDER BY component_type, name, id`,
		uuid.UUID(tenantID), uuid.UUID(menuID))
	if err != nil {
		return nil, database.Classify("list menu items", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Classify("iterate menu items", err)
	}
	return items, nil
}

func (s *PostgresStore) UpdateItem(ctx context.Context, i *models.Item) error {
	query := `
		UPDATE menu_items
		SET component_type = $3, name = $4, description = $5, iddsi_levels = $6::text[],
		    allergens = $7::text[], portion_size_g = $8, is_available = $9, updated_at = $10
		WHERE tenant_id = $1 AND id = $2
	`
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(i.TenantID), uuid.UUID(i.ID), string(i.ComponentType), i.Name, i.Description,
		tagArray(i.IDDSILevels), tagArray(i.Allergens), database.NullInt(i.PortionSizeG),
		i.IsAvailable, i.UpdatedAt,
	)
	if err != nil {
		return database.Classify("update menu item", err)
	}
	return requireRow(res, "update menu item")
}

// DeleteItem removes the item. Order components that referenced it keep their
// component type with the item cleared.
func (s *PostgresStore) DeleteItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) error {
	res, err := tx.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM menu_items WHERE tenant_id = $1 AND id = $2`, uuid.UUID(tenantID), uuid.UUID(id))
	if err != nil {
		return database.Classify("delete menu item", err)
	}
	return requireRow(res, "delete menu item")
}

// tagArray binds an empty set as '{}' rather than NULL; the columns are NOT NULL.
func tagArray(tags []string) any {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}

func scanItem(row scanner) (*models.Item, error) {
	var (
		i                      models.Item
		id, tenantID, menuID   uuid.UUID
		componentType          string
		iddsiLevels, allergens pq.StringArray
		portion                sql.NullInt64
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &tenantID, &menuID, &componentType, &i.Name, &i.Description,
		&iddsiLevels, &allergens, &portion, &i.IsAvailable, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	i.ID = domain.MenuItemID(id)
	i.TenantID = domain.TenantID(tenantID)
	i.MenuID = domain.MenuID(menuID)
	i.ComponentType = models.ComponentType(componentType)
	i.IDDSILevels = []string(iddsiLevels)
	i.Allergens = []string(allergens)
	i.PortionSizeG = database.IntPtr(portion)
	i.CreatedAt = createdAt.UTC()
	i.UpdatedAt = updatedAt.UTC()
	return &i, nil
}
