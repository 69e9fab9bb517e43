package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/storefront/backend/internal/application/cart"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// Every read path takes a tenant ID, so rows of one tenant must be
// unreachable from another even when the raw UUIDs are known.
func TestTenantIsolation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newCheckoutFixture(t)
	ctx := context.Background()

	otherTenant := uuid.New()

	product := f.createProduct(t, "ISO-001", 10.00, 5)
	address := f.createAddress(t, "SHIPPING")

	t.Run("products are tenant scoped", func(t *testing.T) {
		_, err := f.productService.GetByID(ctx, otherTenant, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.productService.GetBySlug(ctx, otherTenant, product.Slug)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("addresses are tenant scoped", func(t *testing.T) {
		_, err := f.addressService.GetByID(ctx, otherTenant, f.userID, address.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cart items are tenant scoped", func(t *testing.T) {
		_, _, err := f.cartService.AddItem(ctx, f.tenantID, f.userID, cartapp.AddItemRequest{
			ProductID: product.ID,
			Quantity:  1,
		})
		require.NoError(t, err)

		cart, err := f.cartService.Get(ctx, otherTenant, f.userID)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)

		// The product does not exist from the other tenant's view either.
		_, _, err = f.cartService.AddItem(ctx, otherTenant, f.userID, cartapp.AddItemRequest{
			ProductID: product.ID,
			Quantity:  1,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("orders are tenant scoped", func(t *testing.T) {
		billing := f.createAddress(t, "BILLING")

		order, err := f.orderService.Checkout(ctx, f.tenantID, f.userID, orderapp.CheckoutRequest{
			ShippingAddressID: address.ID,
			BillingAddressID:  billing.ID,
			PaymentMethod:     "card",
		})
		require.NoError(t, err)

		_, err = f.orderService.GetByID(ctx, otherTenant, f.userID, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.orderService.GetByIDAsAdmin(ctx, otherTenant, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.orderService.GetByOrderNumber(ctx, otherTenant, f.userID, order.OrderNumber)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, total, err := f.orderService.List(ctx, otherTenant, f.userID, orderapp.ListFilter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("orders are owner scoped within a tenant", func(t *testing.T) {
		orders, total, err := f.orderService.List(ctx, f.tenantID, uuid.New(), orderapp.ListFilter{Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
	})
}
