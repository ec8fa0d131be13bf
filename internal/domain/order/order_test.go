package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slippery-operator/pos-sub001/internal/domain/shared/valueobject"
)

func TestNewOrder(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	t.Run("computes total across items", func(t *testing.T) {
		o, err := NewOrder([]Line{
			{ProductID: productA, Quantity: 2, SellingPrice: valueobject.NewMoneyINRFromFloat(10.50)},
			{ProductID: productB, Quantity: 3, SellingPrice: valueobject.NewMoneyINRFromFloat(5)},
		})
		require.NoError(t, err)
		assert.Len(t, o.Items, 2)
		assert.Equal(t, "36", o.Total().String())
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("empty item list rejected", func(t *testing.T) {
		_, err := NewOrder(nil)
		assert.Error(t, err)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := NewOrder([]Line{
			{ProductID: productA, Quantity: 0, SellingPrice: valueobject.NewMoneyINRFromFloat(10)},
		})
		assert.Error(t, err)
	})

	t.Run("non-positive price rejected", func(t *testing.T) {
		_, err := NewOrder([]Line{
			{ProductID: productA, Quantity: 1, SellingPrice: valueobject.ZeroINR()},
		})
		assert.Error(t, err)
	})

	t.Run("duplicate product allowed as separate lines", func(t *testing.T) {
		o, err := NewOrder([]Line{
			{ProductID: productA, Quantity: 1, SellingPrice: valueobject.NewMoneyINRFromFloat(10)},
			{ProductID: productA, Quantity: 2, SellingPrice: valueobject.NewMoneyINRFromFloat(9)},
		})
		require.NoError(t, err)
		assert.Len(t, o.Items, 2)
		assert.Equal(t, "28", o.Total().String())
	})
}

func TestAttachInvoice(t *testing.T) {
	o, err := NewOrder([]Line{
		{ProductID: uuid.New(), Quantity: 1, SellingPrice: valueobject.NewMoneyINRFromFloat(10)},
	})
	require.NoError(t, err)
	assert.False(t, o.HasInvoice())

	require.NoError(t, o.AttachInvoice("invoices/ord-1.pdf"))
	assert.True(t, o.HasInvoice())
	assert.Equal(t, 2, o.Version)

	// Second attachment is rejected - the annotation is write-once.
	assert.Error(t, o.AttachInvoice("invoices/ord-1-v2.pdf"))
	assert.Equal(t, "invoices/ord-1.pdf", o.InvoicePath)

	assert.Error(t, o.AttachInvoice(""))
}
