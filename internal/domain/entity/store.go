package entity

import "time"

type Store struct {
	ID           string  `json:"id" firestore:"id"`
	AccountID    string  `json:"account_id" firestore:"accountId"`
	Name         string  `json:"name" firestore:"name"`
	Description  string  `json:"description,omitempty" firestore:"description,omitempty"`
	Address      string  `json:"address" firestore:"address"`
	Latitude     float64 `json:"latitude" firestore:"latitude"`
	Longitude    float64 `json:"longitude" firestore:"longitude"`
	OpeningHours string  `json:"opening_hours,omitempty" firestore:"openingHours,omitempty"`
	Avatar       string  `json:"avatar,omitempty" firestore:"avatar,omitempty"`

	// New stores wait for admin approval before they are listed.
	IsApproved bool `json:"is_approved" firestore:"isApproved"`
	Active     bool `json:"active" firestore:"active"`

	Rating      float64 `json:"rating" firestore:"rating"`
	ReviewCount int     `json:"review_count" firestore:"reviewCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
