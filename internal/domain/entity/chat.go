package entity

import "time"

const (
	SenderTypeStore    = "store"
	SenderTypeCustomer = "customer"
)

// Display fallbacks used when a room's denormalized fields have not
// been populated yet. The URLs match what the mobile clients render.
const (
	DefaultStoreName    = "Cửa hàng"
	DefaultStoreAvatar  = "https://res.cloudinary.com/dtcxjo4ns/image/upload/v1745666322/default-store.png"
	DefaultUserAvatar   = "https://res.cloudinary.com/dtcxjo4ns/image/upload/v1745666322/default-user.png"
	CustomerNamePrefix  = "Khách hàng"
	UnknownSenderName   = "Unknown User"
)

// ChatRoomID derives the canonical room id for the 1:1 conversation
// between two participants. Ids are sorted lexicographically so both
// sides derive the same id regardless of who initiates. Pure, no I/O;
// rejecting a == b is the caller's job.
func ChatRoomID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "chat_" + a + "_" + b
}

// ChatRoom is the room document. Field names are shared wire contract
// with the customer-side and store-side screens and must not change.
type ChatRoom struct {
	ID               string            `json:"id" firestore:"-"`
	Participants     []string          `json:"participants" firestore:"participants"`
	ParticipantRoles map[string]string `json:"participant_roles" firestore:"participantRoles"`

	// Denormalized participant ids by role.
	UserID      string `json:"user_id" firestore:"userId"`
	StoreUserID string `json:"store_user_id" firestore:"storeUserId"`

	// Cached display identity of each side, populated lazily and
	// repaired on demand.
	CustomerName   string `json:"customer_name" firestore:"customerName"`
	CustomerAvatar string `json:"customer_avatar" firestore:"customerAvatar"`
	StoreName      string `json:"store_name" firestore:"storeName"`
	StoreAvatar    string `json:"store_avatar" firestore:"storeAvatar"`

	// Summary of the most recent message so the room list renders
	// without reading the message subcollection.
	LastMessage     string    `json:"last_message" firestore:"lastMessage"`
	LastMessageTime time.Time `json:"last_message_time" firestore:"lastMessageTime"`
	LastSender      string    `json:"last_sender" firestore:"lastSender"`
	LastSenderType  string    `json:"last_sender_type" firestore:"lastSenderType"`
	LastSenderName  string    `json:"last_sender_name" firestore:"lastSenderName"`
	// Wire name is senderAvatar, what the list screens read.
	LastSenderAvatar string `json:"last_sender_avatar" firestore:"senderAvatar"`

	UnreadCount int       `json:"unread_count" firestore:"unreadCount"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}

// OtherParticipant returns the counterpart of the given participant,
// or "" when the id is not part of the room.
func (r *ChatRoom) OtherParticipant(id string) string {
	for _, p := range r.Participants {
		if p != id {
			return p
		}
	}
	return ""
}

// HasParticipant reports whether id belongs to the room.
func (r *ChatRoom) HasParticipant(id string) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// ChatMessage is one message in a room's subcollection. Immutable once
// written; ordering within a room is defined solely by Timestamp.
type ChatMessage struct {
	ID           string    `json:"id" firestore:"-"`
	Text         string    `json:"text" firestore:"text"`
	Timestamp    time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Sender       string    `json:"sender" firestore:"sender"`
	SenderType   string    `json:"sender_type" firestore:"senderType"`
	SenderName   string    `json:"sender_name" firestore:"senderName"`
	SenderAvatar string    `json:"sender_avatar" firestore:"senderAvatar"`
}
