package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-reconciler/core/clock"
	"order-reconciler/core/database"
	"order-reconciler/feature/orders/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound is returned by writes that target an unknown order id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrExternalIDAlreadySet is returned when an order already carries a different external id.
	ErrExternalIDAlreadySet = errors.New("order already has an external id")
	// ErrOrderNotCompleted is returned when deleting an order that is not completed.
	ErrOrderNotCompleted = errors.New("only completed orders can be deleted")
	// ErrInvalidOrder is returned for unknown types or statuses and empty names.
	ErrInvalidOrder = errors.New("invalid order")
)

// Store persists orders with gorm.
type Store struct {
	db    *gorm.DB
	clock clock.Clock
}

// New creates a Store. A nil clock uses system time.
func New(db *gorm.DB, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Store{db: db, clock: clk}
}

// EnsureSchema migrates the orders table when autoMigrate is set, otherwise
// verifies that every column the store uses exists.
func (s *Store) EnsureSchema(ctx context.Context, autoMigrate bool) error {
	db := s.db.WithContext(ctx)
	if autoMigrate {
		if err := db.AutoMigrate(&models.Order{}); err != nil {
			return fmt.Errorf("failed to migrate orders table: %w", err)
		}
		return nil
	}

	missing, err := database.MissingColumns(db, models.Order{}.TableName(), models.Columns())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("orders table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Create inserts a new order with a fresh UUID. Status defaults to ordered
// and the external id is always left empty.
func (s *Store) Create(ctx context.Context, name string, typ models.Type) (*models.Order, error) {
	if strings.TrimSpace(name) == "" || len(name) > 255 {
		return nil, fmt.Errorf("%w: name must be 1-255 characters", ErrInvalidOrder)
	}
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidOrder, typ)
	}

	now := s.clock.Now()
	order := &models.Order{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		Status:    models.StatusOrdered,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// Get returns the order with the given id, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return &order, nil
}

// UpdateStatusIfChanged writes status and updated_at only when the stored
// status differs. It returns the current order and whether a write happened.
func (s *Store) UpdateStatusIfChanged(ctx context.Context, id string, status models.Status) (*models.Order, bool, error) {
	if !status.IsValid() {
		return nil, false, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}

	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, status).
		UpdateColumns(map[string]any{
			"status":     status,
			"updated_at": s.clock.Now(),
		})
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to update status of order %s: %w", id, res.Error)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if order == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return order, res.RowsAffected > 0, nil
}

// AttachExternalID records the provider id of an order. An id is never
// replaced: attaching a different value to an order that has one fails with
// ErrExternalIDAlreadySet, attaching the same value is a no-op.
func (s *Store) AttachExternalID(ctx context.Context, id, externalID string) (*models.Order, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: empty external id", ErrInvalidOrder)
	}

	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND external_id IS NULL", id).
		UpdateColumns(map[string]any{
			"external_id": externalID,
			"updated_at":  s.clock.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to attach external id to order %s: %w", id, res.Error)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if res.RowsAffected == 0 && order.ExternalIDValue() != externalID {
		return nil, fmt.Errorf("%w: %s", ErrExternalIDAlreadySet, id)
	}
	return order, nil
}

// ListCandidates returns the orders that need a status check: not completed
// and known to the provider.
func (s *Store) ListCandidates(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Where("status <> ? AND external_id IS NOT NULL", models.StatusCompleted).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate orders: %w", err)
	}
	return orders, nil
}

// List returns orders sorted by name, newest first within a name. A non-empty
// nameFilter restricts the result to names containing it.
func (s *Store) List(ctx context.Context, nameFilter string) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if nameFilter != "" {
		query = query.Where("name LIKE ?", "%"+nameFilter+"%")
	}

	var orders []models.Order
	if err := query.Order("name ASC").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Delete removes a completed order and returns it as it was before deletion.
func (s *Store) Delete(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if order.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotCompleted, id, order.Status)
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, models.StatusCompleted).
		Delete(&models.Order{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return order, nil
}
