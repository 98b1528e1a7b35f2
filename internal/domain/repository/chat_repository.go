package repository

import (
	"context"

	"foodapp/internal/domain/entity"
)

// ServerTime marks a patch field to receive the store's write time.
type ServerTime struct{}

// ServerTimestamp is the sentinel value callers put in a patch map.
var ServerTimestamp ServerTime

// Increment marks a patch field for an atomic add.
type Increment int64

// ChatRepository is the document-store contract for chat rooms and
// their message subcollections. All writes that touch an existing room
// are merge-patches restricted to specific field sets; CreateRoom must
// also be merge-capable so concurrent creates of the same derived room
// id converge instead of clobbering each other.
type ChatRepository interface {
	GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error)
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	PatchRoom(ctx context.Context, id string, fields map[string]interface{}) error

	// AppendMessage stores the message with a server-assigned
	// timestamp and returns the assigned document id.
	AppendMessage(ctx context.Context, roomID string, message *entity.ChatMessage) (string, error)

	ListRooms(ctx context.Context, participantID string, limit, offset int) ([]*entity.ChatRoom, int64, error)
	ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, int64, error)

	// WatchRooms emits a full snapshot of the participant's rooms,
	// newest activity first, on every change. WatchMessages emits the
	// room's full message list ordered by timestamp ascending. Both
	// stop when ctx is canceled; a listener error is sent once on the
	// error channel and the subscription is terminated (callers decide
	// whether to resubscribe).
	WatchRooms(ctx context.Context, participantID string) (<-chan []*entity.ChatRoom, <-chan error)
	WatchMessages(ctx context.Context, roomID string) (<-chan []*entity.ChatMessage, <-chan error)
}
