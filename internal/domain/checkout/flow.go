// internal/domain/checkout/flow.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
)

// Step identifies a position in the linear checkout flow
type Step string

const (
	StepCart         Step = "cart"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// Shipping cost lookup, keyed by method
var ShippingCosts = map[string]float64{
	"standard":  5.99,
	"express":   12.99,
	"overnight": 24.99,
}

// TaxRate is the flat tax percentage applied to the subtotal
const TaxRate = 0.08

var (
	// ErrFlowFinished is returned for any transition attempted after
	// confirmation; the flow is strictly linear and ends there.
	ErrFlowFinished = errors.New("checkout already confirmed")

	// ErrWrongStep is returned when an operation is invoked from a step
	// that does not allow it
	ErrWrongStep = errors.New("operation not allowed at this step")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports the first missing or invalid required field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ShippingForm carries the fields collected on the shipping step
type ShippingForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Validate checks required fields in a fixed order and reports the first
// missing one; the email must additionally be well formed
func (f *ShippingForm) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zipCode", f.ZipCode},
		{"country", f.Country},
	}
	for _, field := range required {
		if field.value == "" {
			return &ValidationError{
				Field:   field.name,
				Message: fmt.Sprintf("please fill in %s", field.name),
			}
		}
	}
	if !emailPattern.MatchString(f.Email) {
		return &ValidationError{
			Field:   "email",
			Message: "please enter a valid email",
		}
	}
	return nil
}

// OrderGateway is the slice of the remote gateway the flow needs
type OrderGateway interface {
	CreateOrder(ctx context.Context, userID uint, o order.Order) (order.Order, error)
}

// Flow is the linear checkout state machine:
// cart -> shipping -> payment -> confirmation. Steps only advance one at a
// time, backward moves are allowed until confirmation, and confirmation is
// terminal.
type Flow struct {
	Step           Step         `json:"step"`
	Shipping       ShippingForm `json:"shipping"`
	ShippingMethod string       `json:"shippingMethod"`
	PaymentMethod  string       `json:"paymentMethod"`
	OrderNumber    string       `json:"orderNumber,omitempty"`
	PlacedAt       *time.Time   `json:"placedAt,omitempty"`
}

// NewFlow starts a flow at the cart step with the default methods selected
func NewFlow() *Flow {
	return &Flow{
		Step:           StepCart,
		ShippingMethod: "standard",
		PaymentMethod:  "credit-card",
	}
}

// Begin moves cart -> shipping. The precondition that the cart is non-empty
// is enforced by the caller not rendering the flow for an empty cart.
func (f *Flow) Begin() error {
	switch f.Step {
	case StepCart:
		f.Step = StepShipping
		return nil
	case StepConfirmation:
		return ErrFlowFinished
	default:
		return ErrWrongStep
	}
}

// SubmitShipping validates the form and moves shipping -> payment
func (f *Flow) SubmitShipping(form ShippingForm, method string) error {
	if f.Step == StepConfirmation {
		return ErrFlowFinished
	}
	if f.Step != StepShipping {
		return ErrWrongStep
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if _, ok := ShippingCosts[method]; !ok {
		return &ValidationError{Field: "shippingMethod", Message: "unknown shipping method"}
	}
	f.Shipping = form
	f.ShippingMethod = method
	f.Step = StepPayment
	return nil
}

// Back moves one step backward; confirmation is terminal
func (f *Flow) Back() error {
	switch f.Step {
	case StepShipping:
		f.Step = StepCart
	case StepPayment:
		f.Step = StepShipping
	case StepConfirmation:
		return ErrFlowFinished
	default:
		return ErrWrongStep
	}
	return nil
}

// ShippingCost returns the cost of the selected shipping method
func (f *Flow) ShippingCost() float64 {
	return ShippingCosts[f.ShippingMethod]
}

// Tax returns the flat tax on a subtotal, rounded to two decimals
func Tax(subtotal float64) float64 {
	return math.Round(subtotal*TaxRate*100) / 100
}

// Total returns subtotal + shipping + tax for the current selections
func (f *Flow) Total(subtotal float64) float64 {
	return subtotal + f.ShippingCost() + Tax(subtotal)
}

// PlaceOrder performs payment -> confirmation: it snapshots the cart into an
// order, creates it through the gateway, clears the cart, and advances. On
// any failure the flow stays on the payment step and the error surfaces to
// the caller.
func (f *Flow) PlaceOrder(ctx context.Context, gw OrderGateway, userID uint, cartStore *cart.Store, paymentMethod string) (order.Order, error) {
	if f.Step == StepConfirmation {
		return order.Order{}, ErrFlowFinished
	}
	if f.Step != StepPayment {
		return order.Order{}, ErrWrongStep
	}
	if paymentMethod != "" {
		f.PaymentMethod = paymentMethod
	}

	items := cartStore.Items()
	if len(items) == 0 {
		return order.Order{}, &ValidationError{Field: "cart", Message: "your cart is empty"}
	}

	subtotal := cartStore.Total()
	now := time.Now().UTC()

	o := order.Order{
		OrderNumber:    order.NewOrderNumber(),
		Total:          f.Total(subtotal),
		Status:         order.StatusPending,
		ShippingMethod: f.ShippingMethod,
		PaymentMethod:  f.PaymentMethod,
		Customer: &order.CustomerInfo{
			FirstName: f.Shipping.FirstName,
			LastName:  f.Shipping.LastName,
			Email:     f.Shipping.Email,
			Phone:     f.Shipping.Phone,
			Address:   f.Shipping.Address,
			City:      f.Shipping.City,
			State:     f.Shipping.State,
			ZipCode:   f.Shipping.ZipCode,
			Country:   f.Shipping.Country,
		},
		CreatedAt: now,
	}
	for _, item := range items {
		o.Items = append(o.Items, order.Item{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
			Image:       item.Product.PrimaryImage(),
		})
	}

	created, err := gw.CreateOrder(ctx, userID, o)
	if err != nil {
		return order.Order{}, err
	}

	if err := cartStore.Clear(ctx); err != nil {
		return order.Order{}, err
	}

	f.OrderNumber = created.OrderNumber
	f.PlacedAt = &now
	f.Step = StepConfirmation
	return created, nil
}
