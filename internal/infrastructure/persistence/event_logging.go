package persistence

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// eventCarrier matches any aggregate that records domain events
type eventCarrier interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}

// RegisterEventLogging attaches callbacks that drain pending domain events
// from an aggregate after a successful insert or update and write them to
// the log. Events on an aggregate whose write fails stay on the aggregate.
func RegisterEventLogging(db *gorm.DB, logger *zap.Logger) error {
	drain := func(tx *gorm.DB) {
		if tx.Error != nil {
			return
		}
		carrier := carrierFrom(tx)
		if carrier == nil {
			return
		}
		for _, event := range carrier.GetDomainEvents() {
			logger.Info("Domain event",
				zap.String("event_id", event.EventID().String()),
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_type", event.AggregateType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.String("tenant_id", event.TenantID().String()),
			)
		}
		carrier.ClearDomainEvents()
	}

	if err := db.Callback().Create().After("gorm:create").Register("domain_events:after_create", drain); err != nil {
		return err
	}
	return db.Callback().Update().After("gorm:update").Register("domain_events:after_update", drain)
}

// carrierFrom extracts the aggregate being written, if any. Batch writes of
// plain slices carry no events and are skipped.
func carrierFrom(tx *gorm.DB) eventCarrier {
	if carrier, ok := tx.Statement.Model.(eventCarrier); ok {
		return carrier
	}
	if carrier, ok := tx.Statement.Dest.(eventCarrier); ok {
		return carrier
	}
	return nil
}
