package entity

import "time"

const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusDelivering = "DELIVERING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

const (
	PaymentMethodCash = "CASH"
)

type OrderItem struct {
	FoodID   string  `json:"food_id" firestore:"foodId"`
	FoodName string  `json:"food_name" firestore:"foodName"`
	Quantity int     `json:"quantity" firestore:"quantity"`
	// Price is snapshotted at checkout so later catalog edits do not
	// rewrite order history.
	Price float64 `json:"price" firestore:"price"`
	Note  string  `json:"note,omitempty" firestore:"note,omitempty"`
}

type Order struct {
	ID              string      `json:"id" firestore:"id"`
	CustomerID      string      `json:"customer_id" firestore:"customerId"`
	StoreID         string      `json:"store_id" firestore:"storeId"`
	Items           []OrderItem `json:"items" firestore:"items"`
	Status          string      `json:"status" firestore:"status"`
	ShippingFee     float64     `json:"shipping_fee" firestore:"shippingFee"`
	PaymentMethod   string      `json:"payment_method" firestore:"paymentMethod"`
	DeliveryAddress string      `json:"delivery_address" firestore:"deliveryAddress"`
	Note            string      `json:"note,omitempty" firestore:"note,omitempty"`
	CreatedAt       time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time   `json:"updated_at" firestore:"updatedAt"`
}

// TotalAmount is the item subtotal plus shipping.
func (o *Order) TotalAmount() float64 {
	total := o.ShippingFee
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CanTransitionTo reports whether the status machine allows moving the
// order to next. Cancellation is only possible while pending.
func (o *Order) CanTransitionTo(next string) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusDelivering
	case OrderStatusDelivering:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// CartItem lives in the Redis-backed cart, keyed by customer id.
type CartItem struct {
	FoodID   string  `json:"food_id"`
	FoodName string  `json:"food_name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Note     string  `json:"note,omitempty"`
}

// Cart holds one customer's pending order. A cart only ever contains
// foods from a single store; the mobile client replaces the cart when
// the customer picks a dish from a different store.
type Cart struct {
	CustomerID string     `json:"customer_id"`
	StoreID    string     `json:"store_id"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
