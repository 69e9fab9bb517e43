package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegisterEventLogging(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("drains events after a successful write", func(t *testing.T) {
		db := newCartTestDB(t)
		core, recorded := observer.New(zapcore.InfoLevel)
		require.NoError(t, RegisterEventLogging(db, zap.New(core)))
		repo := NewGormCartRepository(db)

		item := mustNewCartItem(t, tenantID, userID, uuid.New(), nil, 2)
		require.Len(t, item.GetDomainEvents(), 1)

		require.NoError(t, repo.Save(ctx, item))

		assert.Empty(t, item.GetDomainEvents())
		entries := recorded.FilterMessage("Domain event").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, cart.EventTypeCartItemAdded, fields["event_type"])
		assert.Equal(t, cart.AggregateTypeCartItem, fields["aggregate_type"])
		assert.Equal(t, item.ID.String(), fields["aggregate_id"])
		assert.Equal(t, tenantID.String(), fields["tenant_id"])
	})

	t.Run("keeps events when the write fails", func(t *testing.T) {
		db := newCartTestDB(t)
		core, recorded := observer.New(zapcore.InfoLevel)
		require.NoError(t, RegisterEventLogging(db, zap.New(core)))
		repo := NewGormCartRepository(db)

		require.NoError(t, db.Migrator().DropTable(&cart.CartItem{}))

		item := mustNewCartItem(t, tenantID, userID, uuid.New(), nil, 1)
		require.Error(t, repo.Save(ctx, item))

		assert.Len(t, item.GetDomainEvents(), 1)
		assert.Empty(t, recorded.FilterMessage("Domain event").All())
	})

	t.Run("ignores writes that carry no aggregate", func(t *testing.T) {
		db := newCartTestDB(t)
		core, recorded := observer.New(zapcore.InfoLevel)
		require.NoError(t, RegisterEventLogging(db, zap.New(core)))
		repo := NewGormCartRepository(db)

		item := mustNewCartItem(t, tenantID, userID, uuid.New(), nil, 3)
		item.ClearDomainEvents()
		require.NoError(t, repo.Save(ctx, item))

		require.NoError(t, db.Model(&cart.CartItem{}).
			Where("id = ?", item.ID).
			Update("quantity", int64(5)).Error)

		assert.Empty(t, recorded.FilterMessage("Domain event").All())
	})
}
