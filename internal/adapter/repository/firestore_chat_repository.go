package repository

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat room", nil)
		}
		return nil, errors.Internal("Failed to get chat room", err)
	}

	var room entity.ChatRoom
	if err := doc.DataTo(&room); err != nil {
		return nil, errors.Internal("Failed to parse chat room data", err)
	}
	room.ID = doc.Ref.ID

	return &room, nil
}

// CreateRoom writes the full initial room document. The write is a
// merge so two participants racing to create the same derived room id
// converge to one logical room instead of the loser clobbering the
// winner's fields.
func (r *firestoreChatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	data := map[string]interface{}{
		"participants":     room.Participants,
		"participantRoles": room.ParticipantRoles,
		"userId":           room.UserID,
		"storeUserId":      room.StoreUserID,
		"customerName":     room.CustomerName,
		"customerAvatar":   room.CustomerAvatar,
		"storeName":        room.StoreName,
		"storeAvatar":      room.StoreAvatar,
		"lastMessage":      "",
		"lastMessageTime":  firestore.ServerTimestamp,
		"unreadCount":      0,
		"createdAt":        firestore.ServerTimestamp,
	}

	_, err := r.client.Collection("chats").Doc(room.ID).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to create chat room", err)
	}

	return nil
}

func (r *firestoreChatRepository) PatchRoom(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	data := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		switch v := value.(type) {
		case repository.ServerTime:
			data[key] = firestore.ServerTimestamp
		case repository.Increment:
			data[key] = firestore.Increment(int64(v))
		default:
			data[key] = value
		}
	}

	_, err := r.client.Collection("chats").Doc(id).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to patch chat room", err)
	}

	return nil
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, roomID string, message *entity.ChatMessage) (string, error) {
	// Timestamp carries the serverTimestamp tag, so the zero value is
	// replaced by the store on write.
	ref, _, err := r.client.Collection("chats").Doc(roomID).Collection("messages").Add(ctx, message)
	if err != nil {
		return "", errors.Internal("Failed to append message", err)
	}

	return ref.ID, nil
}

func (r *firestoreChatRepository) ListRooms(ctx context.Context, participantID string, limit, offset int) ([]*entity.ChatRoom, int64, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", participantID).
		OrderBy("lastMessageTime", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching chat rooms for %s: %v", participantID, err)
		return nil, 0, errors.Internal("Failed to fetch chat rooms", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var rooms []*entity.ChatRoom
	for i := start; i < end; i++ {
		var room entity.ChatRoom
		if err := allDocs[i].DataTo(&room); err != nil {
			log.Printf("Error parsing chat room %s: %v", allDocs[i].Ref.ID, err)
			continue // Skip bad data instead of failing
		}
		room.ID = allDocs[i].Ref.ID
		rooms = append(rooms, &room)
	}

	return rooms, total, nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	query := r.client.Collection("chats").Doc(roomID).Collection("messages").
		OrderBy("timestamp", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while counting messages for room %s: %v", roomID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.ChatMessage

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for room %s: %v", roomID, err)
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for room %s: %v", roomID, err)
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID

		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) WatchRooms(ctx context.Context, participantID string) (<-chan []*entity.ChatRoom, <-chan error) {
	rooms := make(chan []*entity.ChatRoom, 1)
	errs := make(chan error, 1)

	query := r.client.Collection("chats").
		Where("participants", "array-contains", participantID).
		OrderBy("lastMessageTime", firestore.Desc)

	go func() {
		defer close(rooms)
		defer close(errs)

		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				// Error is reported once; no auto-reconnect here.
				errs <- errors.Internal("Chat room subscription failed", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- errors.Internal("Failed to read chat room snapshot", err)
				return
			}

			list := make([]*entity.ChatRoom, 0, len(docs))
			for _, doc := range docs {
				var room entity.ChatRoom
				if err := doc.DataTo(&room); err != nil {
					log.Printf("Error parsing chat room %s in snapshot: %v", doc.Ref.ID, err)
					continue
				}
				room.ID = doc.Ref.ID
				list = append(list, &room)
			}

			select {
			case rooms <- list:
			case <-ctx.Done():
				return
			}
		}
	}()

	return rooms, errs
}

func (r *firestoreChatRepository) WatchMessages(ctx context.Context, roomID string) (<-chan []*entity.ChatMessage, <-chan error) {
	messages := make(chan []*entity.ChatMessage, 1)
	errs := make(chan error, 1)

	query := r.client.Collection("chats").Doc(roomID).Collection("messages").
		OrderBy("timestamp", firestore.Asc)

	go func() {
		defer close(messages)
		defer close(errs)

		snapshots := query.Snapshots(ctx)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				errs <- errors.Internal("Message subscription failed", err)
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				errs <- errors.Internal("Failed to read message snapshot", err)
				return
			}

			list := make([]*entity.ChatMessage, 0, len(docs))
			for _, doc := range docs {
				var message entity.ChatMessage
				if err := doc.DataTo(&message); err != nil {
					log.Printf("Error parsing message %s in snapshot: %v", doc.Ref.ID, err)
					continue
				}
				message.ID = doc.Ref.ID
				list = append(list, &message)
			}

			select {
			case messages <- list:
			case <-ctx.Done():
				return
			}
		}
	}()

	return messages, errs
}
