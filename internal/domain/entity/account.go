package entity

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
	RoleStore    = "STORE"
)

type Account struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	Username    string `json:"username" firestore:"username"`
	FirstName   string `json:"first_name" firestore:"firstName"`
	LastName    string `json:"last_name" firestore:"lastName"`
	PhoneNumber string `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	Avatar      string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Role        string `json:"role" firestore:"role"`
	IsVerified  bool   `json:"is_verified" firestore:"isVerified"`
	Active      bool   `json:"active" firestore:"active"`

	// StoreID is set when Role is RoleStore and the owner's store
	// document exists.
	StoreID string `json:"store_id,omitempty" firestore:"storeId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayName is the name shown in chat and order screens.
func (a *Account) DisplayName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Username
	}
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

func (a *Account) IsStoreOwner() bool {
	return a.Role == RoleStore
}
