package entity

import "time"

type Review struct {
	ID         string    `json:"id" firestore:"id"`
	CustomerID string    `json:"customer_id" firestore:"customerId"`
	StoreID    string    `json:"store_id" firestore:"storeId"`
	FoodID     string    `json:"food_id,omitempty" firestore:"foodId,omitempty"`
	OrderID    string    `json:"order_id" firestore:"orderId"`
	Rating     int       `json:"rating" firestore:"rating"` // 1..5
	Comment    string    `json:"comment" firestore:"comment"`
	Active     bool      `json:"active" firestore:"active"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
