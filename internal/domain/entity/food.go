package entity

import "time"

const (
	MealTimeBreakfast = "BREAKFAST"
	MealTimeLunch     = "LUNCH"
	MealTimeDinner    = "DINNER"
	MealTimeAnytime   = "ANYTIME"
)

type Category struct {
	ID          string    `json:"id" firestore:"id"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Active      bool      `json:"active" firestore:"active"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

type Food struct {
	ID          string  `json:"id" firestore:"id"`
	StoreID     string  `json:"store_id" firestore:"storeId"`
	CategoryID  string  `json:"category_id,omitempty" firestore:"categoryId,omitempty"`
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description,omitempty" firestore:"description,omitempty"`
	Price       float64 `json:"price" firestore:"price"`
	Image       string  `json:"image,omitempty" firestore:"image,omitempty"`
	MealTime    string  `json:"meal_time" firestore:"mealTime"`
	IsAvailable bool    `json:"is_available" firestore:"isAvailable"`

	// Optional daily availability window, "HH:MM" local time.
	AvailableFrom string `json:"available_from,omitempty" firestore:"availableFrom,omitempty"`
	AvailableTo   string `json:"available_to,omitempty" firestore:"availableTo,omitempty"`

	Active    bool      `json:"active" firestore:"active"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Menu groups a store's foods under a meal time.
type Menu struct {
	ID        string    `json:"id" firestore:"id"`
	StoreID   string    `json:"store_id" firestore:"storeId"`
	Name      string    `json:"name" firestore:"name"`
	MenuType  string    `json:"menu_type" firestore:"menuType"`
	FoodIDs   []string  `json:"food_ids" firestore:"foodIds"`
	Active    bool      `json:"active" firestore:"active"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
