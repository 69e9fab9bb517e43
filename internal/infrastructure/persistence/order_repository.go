package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForTenant finds an order by ID within a tenant, items included
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its number within a tenant
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByUser returns a user's orders, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).
			Where("tenant_id = ? AND user_id = ?", tenantID, userID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAllForTenant returns all orders of a tenant
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByUser counts a user's orders
func (r *GormOrderRepository) CountByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&order.Order{}).
			Where("tenant_id = ? AND user_id = ?", tenantID, userID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts all orders of a tenant
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&order.Order{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists status and payment changes of an existing order. Items are
// immutable snapshots and are never rewritten here.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}

// SaveWithLock saves using the version column for optimistic locking
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	var current order.Order
	if err := r.db.WithContext(ctx).
		Select("version").
		Where("id = ?", o.ID).
		First(&current).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	if current.Version >= o.Version {
		return shared.ErrConcurrencyConflict
	}

	// Model(o) rather than an empty Order so the event logging callback sees
	// the aggregate after the write.
	result := r.db.WithContext(ctx).
		Model(o).
		Where("id = ? AND version = ?", o.ID, current.Version).
		Updates(map[string]interface{}{
			"status":         o.Status,
			"payment_status": o.PaymentStatus,
			"payment_method": o.PaymentMethod,
			"paid_at":        o.PaidAt,
			"shipped_at":     o.ShippedAt,
			"delivered_at":   o.DeliveredAt,
			"cancelled_at":   o.CancelledAt,
			"cancel_reason":  o.CancelReason,
			"version":        o.Version,
			"updated_at":     o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CreateFromCheckout inserts the order with its items, decrements stock per
// adjustment, and clears the user's cart, all in one transaction. A decrement
// is a conditional update so two concurrent checkouts can never oversell: the
// row is only touched when enough stock remains, and zero affected rows
// aborts the whole transaction.
func (r *GormOrderRepository) CreateFromCheckout(ctx context.Context, o *order.Order, decrements []order.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			if isOrderNumberConflict(err) {
				return order.ErrOrderNumberTaken
			}
			return err
		}

		for i := range o.Items {
			o.Items[i].OrderID = o.ID
			if err := tx.Create(&o.Items[i]).Error; err != nil {
				return err
			}
		}

		for _, dec := range decrements {
			if err := applyStockDelta(tx, o.TenantID, dec, -dec.Quantity); err != nil {
				return err
			}
		}

		return tx.Where("tenant_id = ? AND user_id = ?", o.TenantID, o.UserID).
			Delete(&cart.CartItem{}).Error
	})
}

// CancelWithRestock persists the cancelled order and adds the quantities back
// to stock in one transaction. The version guard compares against the stored
// row rather than o.Version-1: a paid cancellation advances the aggregate
// version more than once (cancel plus refund) before it reaches here.
func (r *GormOrderRepository) CancelWithRestock(ctx context.Context, o *order.Order, restocks []order.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current order.Order
		if err := tx.Select("version").
			Where("id = ?", o.ID).
			First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if current.Version >= o.Version {
			return shared.ErrConcurrencyConflict
		}

		result := tx.Model(o).
			Where("id = ? AND version = ?", o.ID, current.Version).
			Updates(map[string]interface{}{
				"status":         o.Status,
				"payment_status": o.PaymentStatus,
				"paid_at":        o.PaidAt,
				"cancelled_at":   o.CancelledAt,
				"cancel_reason":  o.CancelReason,
				"version":        o.Version,
				"updated_at":     o.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		for _, res := range restocks {
			if err := applyStockDelta(tx, o.TenantID, res, res.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
}

// isOrderNumberConflict recognizes a unique violation on the order number
// index. PostgreSQL names the constraint, SQLite names the columns.
func isOrderNumberConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "idx_order_tenant_number") && !strings.Contains(msg, "order_number") {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// applyStockDelta adjusts stock on the variant row when the adjustment names
// one, otherwise on the base product row. Negative deltas are conditional on
// enough stock remaining.
func applyStockDelta(tx *gorm.DB, tenantID uuid.UUID, adj order.StockAdjustment, delta int64) error {
	var result *gorm.DB
	if adj.VariantID != nil {
		query := tx.Model(&catalog.ProductVariant{}).
			Where("tenant_id = ? AND id = ? AND product_id = ?", tenantID, *adj.VariantID, adj.ProductID)
		if delta < 0 {
			query = query.Where("stock >= ?", -delta)
		}
		result = query.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	} else {
		query := tx.Model(&catalog.Product{}).
			Where("tenant_id = ? AND id = ?", tenantID, adj.ProductID)
		if delta < 0 {
			query = query.Where("stock >= ?", -delta)
		}
		result = query.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			return shared.ErrInsufficientStock
		}
		return shared.ErrNotFound
	}
	return nil
}

// GenerateOrderNumber produces the next order number for the tenant,
// formatted ORD-YYYYMMDD-NNNNN with a per-day sequence
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	day := time.Now().UTC().Format("20060102")
	prefix := fmt.Sprintf("ORD-%s-", day)

	var last order.Order
	err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	sequence := 1
	if err == nil && last.OrderNumber != "" {
		if seq, parseErr := strconv.Atoi(strings.TrimPrefix(last.OrderNumber, prefix)); parseErr == nil {
			sequence = seq + 1
		}
	}

	// Retry past numbers taken by concurrent checkouts.
	for attempt := 0; attempt < 10; attempt++ {
		candidate := fmt.Sprintf("%s%05d", prefix, sequence)
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&order.Order{}).
			Where("tenant_id = ? AND order_number = ?", tenantID, candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		sequence++
	}

	return "", fmt.Errorf("failed to generate unique order number after 10 attempts")
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "created_from":
			query = query.Where("created_at >= ?", value)
		case "created_to":
			query = query.Where("created_at <= ?", value)
		case "min_total":
			query = query.Where("total >= ?", value)
		case "max_total":
			query = query.Where("total <= ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
