// internal/domain/order/entity.go
package order

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Status represents the order status. Status changes happen out-of-band
// (fulfilment tooling); this application only ever creates orders as
// "pending"/"processing" and reads them back.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Order is an immutable snapshot taken at checkout time. Item fields are
// copied, not referenced, so later catalog changes never alter history.
type Order struct {
	ID             string        `json:"id"`
	OrderNumber    string        `json:"orderNumber"`
	Items          []Item        `json:"items"`
	Total          float64       `json:"total"`
	Status         Status        `json:"status"`
	ShippingMethod string        `json:"shippingMethod,omitempty"`
	PaymentMethod  string        `json:"paymentMethod,omitempty"`
	Customer       *CustomerInfo `json:"customerInfo,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Item is an order line: product identity plus the values frozen at
// placement time
type Item struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// CustomerInfo carries the shipping contact captured at checkout
type CustomerInfo struct {
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

const base36Pow9 = int64(101559956668416) // 36^9

// NewOrderNumber generates a client-side order number: current time in
// milliseconds plus a random base36 suffix. Collision-resistant rather than
// globally unique.
func NewOrderNumber() string {
	suffix := strconv.FormatInt(rand.Int63n(base36Pow9), 36)
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}
