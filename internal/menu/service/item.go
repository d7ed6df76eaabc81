package service

import (
	"context"

	"github.com/google/uuid"

	auditmodels "mealcare/internal/audit/models"
	"mealcare/internal/menu/models"
	"mealcare/pkg/domain"
	dErrors "mealcare/pkg/domain-errors"
	"mealcare/pkg/requestcontext"
)

// AddItem puts a dish on the menu.
func (s *Service) AddItem(ctx context.Context, tenantID domain.TenantID, menuID domain.MenuID, p models.ItemProfile) (*models.Item, error) {
	var item *models.Item
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.FindByID(txCtx, tenantID, menuID); err != nil {
			return dErrors.FromStore(err, "menu")
		}
		i, err := models.NewItem(domain.MenuItemID(uuid.New()), tenantID, menuID, p, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.store.CreateItem(txCtx, i); err != nil {
			return dErrors.FromStore(err, "menu item")
		}
		if err := s.record(txCtx, auditmodels.ActionCreate, auditmodels.EntityMenuItem, uuid.UUID(i.ID), tenantID, nil, i); err != nil {
			return err
		}
		item = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) (*models.Item, error) {
	i, err := s.store.FindItem(ctx, tenantID, id)
	if err != nil {
		return nil, dErrors.FromStore(err, "menu item")
	}
	return i, nil
}

func (s *Service) ListItems(ctx context.Context, tenantID domain.TenantID, menuID domain.MenuID) ([]*models.Item, error) {
	items, err := s.store.ListItems(ctx, tenantID, menuID)
	if err != nil {
		return nil, dErrors.FromStore(err, "menu items")
	}
	return items, nil
}

func (s *Service) UpdateItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID, p models.ItemProfile) (*models.Item, error) {
	var item *models.Item
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		i, err := s.store.FindItem(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "menu item")
		}
		before := *i
		if err := i.ApplyProfile(p, requestcontext.Now(txCtx)); err != nil {
			return err
		}
		if err := s.store.UpdateItem(txCtx, i); err != nil {
			return dErrors.FromStore(err, "menu item")
		}
		if err := s.record(txCtx, auditmodels.ActionUpdate, auditmodels.EntityMenuItem, uuid.UUID(i.ID), tenantID, before, i); err != nil {
			return err
		}
		item = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes the item. Orders that chose it keep the component with
// the item reference cleared.
func (s *Service) RemoveItem(ctx context.Context, tenantID domain.TenantID, id domain.MenuItemID) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		i, err := s.store.FindItem(txCtx, tenantID, id)
		if err != nil {
			return dErrors.FromStore(err, "menu item")
		}
		if err := s.store.DeleteItem(txCtx, tenantID, id); err != nil {
			return dErrors.FromStore(err, "menu item")
		}
		return s.record(txCtx, auditmodels.ActionDelete, auditmodels.EntityMenuItem, uuid.UUID(i.ID), tenantID, i, nil)
	})
}
