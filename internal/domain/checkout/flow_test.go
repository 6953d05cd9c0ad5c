// internal/domain/checkout/flow_test.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// fakeCartGateway backs a real cart.Store so PlaceOrder exercises the
// actual snapshot and clear paths
type fakeCartGateway struct {
	rows   map[uint][]cart.Item
	nextID int
}

func newFakeCartGateway() *fakeCartGateway {
	return &fakeCartGateway{rows: make(map[uint][]cart.Item)}
}

func (g *fakeCartGateway) CartItems(_ context.Context, userID uint) ([]cart.Item, error) {
	items := make([]cart.Item, len(g.rows[userID]))
	copy(items, g.rows[userID])
	return items, nil
}

func (g *fakeCartGateway) AddCartItem(_ context.Context, userID uint, p product.Product, quantity int) error {
	for i := range g.rows[userID] {
		if g.rows[userID][i].ProductID == p.ID {
			g.rows[userID][i].Quantity += quantity
			return nil
		}
	}
	g.nextID++
	g.rows[userID] = append(g.rows[userID], cart.Item{
		ID:        fmt.Sprintf("row-%d", g.nextID),
		ProductID: p.ID,
		Quantity:  quantity,
		Product:   p,
	})
	return nil
}

func (g *fakeCartGateway) UpdateCartQuantity(_ context.Context, userID uint, itemID string, quantity int) error {
	for i := range g.rows[userID] {
		if g.rows[userID][i].ID == itemID {
			g.rows[userID][i].Quantity = quantity
		}
	}
	return nil
}

func (g *fakeCartGateway) RemoveCartItem(_ context.Context, userID uint, itemID string) error {
	rows := g.rows[userID][:0:0]
	for _, item := range g.rows[userID] {
		if item.ID != itemID {
			rows = append(rows, item)
		}
	}
	g.rows[userID] = rows
	return nil
}

func (g *fakeCartGateway) ClearCart(_ context.Context, userID uint) error {
	g.rows[userID] = nil
	return nil
}

type fakeOrderGateway struct {
	created []order.Order
	fail    bool
}

func (g *fakeOrderGateway) CreateOrder(_ context.Context, _ uint, o order.Order) (order.Order, error) {
	if g.fail {
		return order.Order{}, errors.New("insert failed")
	}
	o.ID = "order-1"
	g.created = append(g.created, o)
	return o, nil
}

func validForm() ShippingForm {
	return ShippingForm{
		FirstName: "Jamie",
		LastName:  "Doe",
		Email:     "jamie@example.com",
		Phone:     "555-0100",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "US",
	}
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	gw := newFakeCartGateway()
	s := cart.NewStore(gw, 1)
	require.NoError(t, s.AddItem(context.Background(), product.Product{ID: "prod-a", Name: "Widget A", Price: 10}, 2))
	require.NoError(t, s.AddItem(context.Background(), product.Product{ID: "prod-b", Name: "Widget B", Price: 25}, 1))
	return s
}

func TestFlowTransitions(t *testing.T) {
	t.Run("advances one step at a time", func(t *testing.T) {
		f := NewFlow()
		assert.Equal(t, StepCart, f.Step)

		require.NoError(t, f.Begin())
		assert.Equal(t, StepShipping, f.Step)

		require.NoError(t, f.SubmitShipping(validForm(), "standard"))
		assert.Equal(t, StepPayment, f.Step)
	})

	t.Run("begin from the wrong step", func(t *testing.T) {
		f := NewFlow()
		require.NoError(t, f.Begin())
		assert.ErrorIs(t, f.Begin(), ErrWrongStep)
	})

	t.Run("submit shipping from the cart step", func(t *testing.T) {
		f := NewFlow()
		assert.ErrorIs(t, f.SubmitShipping(validForm(), "standard"), ErrWrongStep)
	})

	t.Run("back walks the same path in reverse", func(t *testing.T) {
		f := NewFlow()
		require.NoError(t, f.Begin())
		require.NoError(t, f.SubmitShipping(validForm(), "express"))

		require.NoError(t, f.Back())
		assert.Equal(t, StepShipping, f.Step)
		require.NoError(t, f.Back())
		assert.Equal(t, StepCart, f.Step)
		assert.ErrorIs(t, f.Back(), ErrWrongStep)
	})

	t.Run("confirmation is terminal", func(t *testing.T) {
		f := NewFlow()
		f.Step = StepConfirmation

		assert.ErrorIs(t, f.Begin(), ErrFlowFinished)
		assert.ErrorIs(t, f.SubmitShipping(validForm(), "standard"), ErrFlowFinished)
		assert.ErrorIs(t, f.Back(), ErrFlowFinished)

		_, err := f.PlaceOrder(context.Background(), &fakeOrderGateway{}, 1, filledCart(t), "")
		assert.ErrorIs(t, err, ErrFlowFinished)
	})
}

func TestShippingFormValidate(t *testing.T) {
	t.Run("reports missing fields in order", func(t *testing.T) {
		checks := []struct {
			clear func(*ShippingForm)
			field string
		}{
			{func(f *ShippingForm) { f.FirstName = "" }, "firstName"},
			{func(f *ShippingForm) { f.LastName = "" }, "lastName"},
			{func(f *ShippingForm) { f.Email = "" }, "email"},
			{func(f *ShippingForm) { f.Phone = "" }, "phone"},
			{func(f *ShippingForm) { f.Address = "" }, "address"},
			{func(f *ShippingForm) { f.City = "" }, "city"},
			{func(f *ShippingForm) { f.State = "" }, "state"},
			{func(f *ShippingForm) { f.ZipCode = "" }, "zipCode"},
			{func(f *ShippingForm) { f.Country = "" }, "country"},
		}
		for _, check := range checks {
			form := validForm()
			check.clear(&form)

			var verr *ValidationError
			require.ErrorAs(t, form.Validate(), &verr)
			assert.Equal(t, check.field, verr.Field)
		}
	})

	t.Run("first missing field wins", func(t *testing.T) {
		form := validForm()
		form.FirstName = ""
		form.Country = ""

		var verr *ValidationError
		require.ErrorAs(t, form.Validate(), &verr)
		assert.Equal(t, "firstName", verr.Field)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		form := validForm()
		form.Email = "not-an-email"

		var verr *ValidationError
		require.ErrorAs(t, form.Validate(), &verr)
		assert.Equal(t, "email", verr.Field)
	})

	t.Run("unknown shipping method", func(t *testing.T) {
		f := NewFlow()
		require.NoError(t, f.Begin())

		var verr *ValidationError
		require.ErrorAs(t, f.SubmitShipping(validForm(), "drone"), &verr)
		assert.Equal(t, "shippingMethod", verr.Field)
		assert.Equal(t, StepShipping, f.Step)
	})
}

func TestFlowTotals(t *testing.T) {
	t.Run("tax rounds to two decimals", func(t *testing.T) {
		assert.Equal(t, 3.60, Tax(45))
		assert.Equal(t, 0.08, Tax(1))
		assert.Equal(t, 0.0, Tax(0))
	})

	t.Run("total is subtotal plus shipping plus tax", func(t *testing.T) {
		f := NewFlow()
		f.ShippingMethod = "standard"
		assert.InDelta(t, 54.59, f.Total(45), 0.001)

		f.ShippingMethod = "express"
		assert.InDelta(t, 61.59, f.Total(45), 0.001)

		f.ShippingMethod = "overnight"
		assert.InDelta(t, 73.59, f.Total(45), 0.001)
	})
}

func TestFlowPlaceOrder(t *testing.T) {
	ctx := context.Background()

	toPayment := func(t *testing.T) *Flow {
		t.Helper()
		f := NewFlow()
		require.NoError(t, f.Begin())
		require.NoError(t, f.SubmitShipping(validForm(), "standard"))
		return f
	}

	t.Run("creates the order and clears the cart", func(t *testing.T) {
		f := toPayment(t)
		gw := &fakeOrderGateway{}
		cartStore := filledCart(t)

		created, err := f.PlaceOrder(ctx, gw, 1, cartStore, "paypal")
		require.NoError(t, err)

		assert.Equal(t, StepConfirmation, f.Step)
		assert.Equal(t, created.OrderNumber, f.OrderNumber)
		require.NotNil(t, f.PlacedAt)

		require.Len(t, gw.created, 1)
		placed := gw.created[0]
		assert.Equal(t, order.StatusPending, placed.Status)
		assert.Equal(t, "paypal", placed.PaymentMethod)
		assert.Equal(t, "standard", placed.ShippingMethod)
		assert.InDelta(t, 54.59, placed.Total, 0.001)
		assert.Len(t, placed.Items, 2)
		require.NotNil(t, placed.Customer)
		assert.Equal(t, "jamie@example.com", placed.Customer.Email)

		assert.Empty(t, cartStore.Items())
	})

	t.Run("empty payment method keeps the current selection", func(t *testing.T) {
		f := toPayment(t)
		gw := &fakeOrderGateway{}

		_, err := f.PlaceOrder(ctx, gw, 1, filledCart(t), "")
		require.NoError(t, err)
		assert.Equal(t, "credit-card", gw.created[0].PaymentMethod)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		f := toPayment(t)
		emptyStore := cart.NewStore(newFakeCartGateway(), 1)

		_, err := f.PlaceOrder(ctx, &fakeOrderGateway{}, 1, emptyStore, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "cart", verr.Field)
		assert.Equal(t, StepPayment, f.Step)
	})

	t.Run("stays on payment when the gateway fails", func(t *testing.T) {
		f := toPayment(t)
		cartStore := filledCart(t)

		_, err := f.PlaceOrder(ctx, &fakeOrderGateway{fail: true}, 1, cartStore, "")
		require.Error(t, err)

		assert.Equal(t, StepPayment, f.Step)
		assert.Empty(t, f.OrderNumber)
		assert.Equal(t, 3, cartStore.ItemCount())
	})

	t.Run("wrong step", func(t *testing.T) {
		f := NewFlow()
		_, err := f.PlaceOrder(ctx, &fakeOrderGateway{}, 1, filledCart(t), "")
		assert.ErrorIs(t, err, ErrWrongStep)
	})
}
