package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func usd(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyUSDFromString(s)
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), "ORD-20260827-00001", uuid.New(), uuid.New(), uuid.New(), "card")
	require.NoError(t, err)
	return o
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, false},
		{StatusProcessing, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending unpaid order", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, PaymentStatusUnpaid, o.PaymentStatus)
		assert.True(t, o.Total.IsZero())
		assert.Len(t, o.GetDomainEvents(), 1)
	})

	t.Run("rejects missing order number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "", uuid.New(), uuid.New(), uuid.New(), "card")
		assert.Error(t, err)
	})

	t.Run("rejects missing addresses", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "ORD-20260827-00001", uuid.New(), uuid.Nil, uuid.New(), "card")
		assert.Error(t, err)
	})
}

func TestOrderAddItemTotals(t *testing.T) {
	o := newTestOrder(t)

	// two lines at 99.99: one of qty 2, one of qty 1
	require.NoError(t, o.AddItem(uuid.New(), nil, "Widget", "WID-1", usd(t, "99.99"), 2))
	require.NoError(t, o.AddItem(uuid.New(), nil, "Gadget", "GAD-1", usd(t, "99.99"), 1))

	assert.Equal(t, "299.97", o.Total.StringFixed(2))
	assert.Equal(t, "299.97", o.Subtotal.StringFixed(2))
	assert.Len(t, o.Items, 2)
	assert.Equal(t, "199.98", o.Items[0].Amount.StringFixed(2))
}

func TestOrderAddItemValidation(t *testing.T) {
	o := newTestOrder(t)

	assert.Error(t, o.AddItem(uuid.Nil, nil, "Widget", "WID-1", usd(t, "10"), 1))
	assert.Error(t, o.AddItem(uuid.New(), nil, "", "WID-1", usd(t, "10"), 1))
	assert.Error(t, o.AddItem(uuid.New(), nil, "Widget", "WID-1", usd(t, "10"), 0))
	assert.Error(t, o.AddItem(uuid.New(), nil, "Widget", "WID-1", usd(t, "-1"), 1))

	require.NoError(t, o.UpdateStatus(StatusProcessing))
	err := o.AddItem(uuid.New(), nil, "Widget", "WID-1", usd(t, "10"), 1)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestOrderUpdateStatus(t *testing.T) {
	t.Run("walks the forward path", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.UpdateStatus(StatusProcessing))
		assert.Equal(t, StatusProcessing, o.Status)

		require.NoError(t, o.UpdateStatus(StatusShipped))
		assert.NotNil(t, o.ShippedAt)

		require.NoError(t, o.UpdateStatus(StatusDelivered))
		assert.NotNil(t, o.DeliveredAt)
	})

	t.Run("rejects skipping a step", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.UpdateStatus(StatusShipped))
	})

	t.Run("rejects cancellation through UpdateStatus", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.UpdateStatus(StatusCancelled))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.UpdateStatus(Status("LOST")))
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel("changed my mind"))

		assert.True(t, o.IsCancelled())
		assert.Equal(t, "changed my mind", o.CancelReason)
		assert.NotNil(t, o.CancelledAt)
	})

	t.Run("rejects cancelling a processing order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.UpdateStatus(StatusProcessing))

		err := o.Cancel("too late")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestOrderPayment(t *testing.T) {
	t.Run("marks unpaid order paid", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkPaid("card"))

		assert.True(t, o.IsPaid())
		assert.NotNil(t, o.PaidAt)
		// payment does not advance fulfillment
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("rejects double payment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkPaid("card"))
		assert.Error(t, o.MarkPaid("card"))
	})

	t.Run("rejects paying a cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel("nope"))
		assert.Error(t, o.MarkPaid("card"))
	})

	t.Run("refunds a paid order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkPaid("card"))
		require.NoError(t, o.MarkRefunded())
		assert.Equal(t, PaymentStatusRefunded, o.PaymentStatus)
	})

	t.Run("rejects refunding an unpaid order", func(t *testing.T) {
		o := newTestOrder(t)
		assert.Error(t, o.MarkRefunded())
	})
}
