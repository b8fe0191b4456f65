package order_test

import (
	"testing"
	"time"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/kernel"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burger(t *testing.T) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "X-Burger", decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	return item
}

func soda(t *testing.T) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Cola", decimal.RequireFromString("6.00"))
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	clientID := kernel.NewUUID()
	total := decimal.RequireFromString("18.50")

	t.Run("should create received order with all valid parameters", func(t *testing.T) {
		items := []order.LineItem{burger(t), soda(t)}

		o, err := order.NewOrder(id, clientID, items, total)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ClientID().IsEqual(clientID))
		assert.Equal(t, items, o.LineItems())
		assert.True(t, total.Equal(o.TotalAmount()))
		assert.Equal(t, order.Received, o.Status())
		assert.False(t, o.HasPaymentReference())
		assert.Zero(t, o.Version())
	})

	t.Run("should keep caller supplied total even when it differs from line items", func(t *testing.T) {
		o, err := order.NewOrder(id, clientID, []order.LineItem{burger(t)}, decimal.RequireFromString("99.90"))

		require.NoError(t, err)
		assert.Equal(t, "99.9", o.TotalAmount().String())
	})

	t.Run("should keep product ids in request order", func(t *testing.T) {
		first, second := burger(t), soda(t)

		o, err := order.NewOrder(id, clientID, []order.LineItem{first, second}, total)

		require.NoError(t, err)
		assert.Equal(t, []kernel.UUID{first.ProductID(), second.ProductID()}, o.ProductIDs())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, clientID, []order.LineItem{burger(t)}, total)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail without line items", func(t *testing.T) {
		o, err := order.NewOrder(id, clientID, nil, total)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "line items")
	})

	t.Run("should fail with zero total", func(t *testing.T) {
		o, err := order.NewOrder(id, clientID, []order.LineItem{burger(t)}, decimal.Zero)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should fail when total does not fit the stored precision", func(t *testing.T) {
		for _, raw := range []string{"12.505", "100000000", "99999999.999"} {
			o, err := order.NewOrder(id, clientID, []order.LineItem{burger(t)}, decimal.RequireFromString(raw))

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
			assert.Nil(t, o)
		}
	})

	t.Run("should accept the largest storable total", func(t *testing.T) {
		o, err := order.NewOrder(id, clientID, []order.LineItem{burger(t)}, order.MaxAmount)

		require.NoError(t, err)
		assert.True(t, order.MaxAmount.Equal(o.TotalAmount()))
	})

	t.Run("should join every validation error", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, nil, decimal.RequireFromString("-1"))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "client id")
		assert.Contains(t, err.Error(), "line items")
		assert.Contains(t, err.Error(), "total amount")
	})

	t.Run("should not share line item slice with caller", func(t *testing.T) {
		items := []order.LineItem{burger(t)}
		o, err := order.NewOrder(id, clientID, items, total)
		require.NoError(t, err)

		items[0] = soda(t)

		assert.Equal(t, "X-Burger", o.LineItems()[0].Name())
	})
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	state := order.State{
		ID:               kernel.NewUUID(),
		ClientID:         kernel.NewUUID(),
		LineItems:        []order.LineItem{burger(t)},
		TotalAmount:      decimal.RequireFromString("12.50"),
		Status:           order.Ready,
		PaymentReference: "qr-123",
		Version:          3,
		CreatedAt:        created,
		UpdatedAt:        created.Add(time.Minute),
	}

	t.Run("should restore every field", func(t *testing.T) {
		o, err := order.RestoreOrder(state)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(state.ID))
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, "qr-123", o.PaymentReference())
		assert.Equal(t, 3, o.Version())
		assert.Equal(t, created, o.CreatedAt())
		assert.Equal(t, created.Add(time.Minute), o.UpdatedAt())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		broken := state
		broken.Status = order.Unknown

		o, err := order.RestoreOrder(broken)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var o order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for nil pointer", func(t *testing.T) {
		var o *order.Order
		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{burger(t)}, decimal.NewFromInt(10))
		require.NoError(t, err)
		return o
	}

	t.Run("permissive table should accept any valid target", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ChangeStatus(order.Completed, nil))
		require.NoError(t, o.ChangeStatus(order.Received, nil))
		assert.Equal(t, order.Received, o.Status())
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		o := newOrder(t)

		err := o.ChangeStatus(order.Unknown, nil)

		require.ErrorIs(t, err, order.ErrInvalidStatus)
		assert.Equal(t, order.Received, o.Status())
	})

	t.Run("kitchen table should follow the forward flow", func(t *testing.T) {
		o := newOrder(t)
		table := order.KitchenTransitions()

		require.NoError(t, o.ChangeStatus(order.Preparing, table))
		require.NoError(t, o.ChangeStatus(order.Ready, table))
		require.NoError(t, o.ChangeStatus(order.Completed, table))
	})

	t.Run("kitchen table should reject skipping back", func(t *testing.T) {
		o := newOrder(t)
		table := order.KitchenTransitions()
		require.NoError(t, o.ChangeStatus(order.Preparing, table))

		err := o.ChangeStatus(order.Received, table)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "PREPARING -> RECEIVED")
		assert.Equal(t, order.Preparing, o.Status())
	})
}

func TestOrder_AttachPaymentReference(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{burger(t)}, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.ErrorIs(t, o.AttachPaymentReference("  "), errs.ErrValueIsRequired)
	require.NoError(t, o.AttachPaymentReference("qr-1"))
	assert.True(t, o.HasPaymentReference())
	require.ErrorIs(t, o.AttachPaymentReference("qr-2"), errs.ErrValueIsInvalid)
	assert.Equal(t, "qr-1", o.PaymentReference())
}

func TestOrder_MarkPersisted(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{burger(t)}, decimal.NewFromInt(10))
	require.NoError(t, err)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	o.MarkPersisted(1, created, created)
	o.MarkPersisted(2, time.Time{}, created.Add(time.Hour))

	assert.Equal(t, 2, o.Version())
	assert.Equal(t, created, o.CreatedAt())
	assert.Equal(t, created.Add(time.Hour), o.UpdatedAt())
}

func TestNewLineItem(t *testing.T) {
	t.Run("should reject blank name and negative price", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), " ", decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should allow free items", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), "Ketchup", decimal.Zero)

		require.NoError(t, err)
		assert.True(t, item.UnitPrice().IsZero())
	})
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{raw: "0.01", valid: true},
		{raw: "12.50", valid: true},
		{raw: "12.500", valid: true},
		{raw: "99999999.99", valid: true},
		{raw: "0", valid: false},
		{raw: "-5", valid: false},
		{raw: "12.505", valid: false},
		{raw: "0.001", valid: false},
		{raw: "100000000", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := order.ValidateAmount("total amount", decimal.RequireFromString(tt.raw))

			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), "total amount")
		})
	}
}
