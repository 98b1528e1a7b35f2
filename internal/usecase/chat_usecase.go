package usecase

import (
	"context"
	"fmt"
	"strings"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
	"foodapp/pkg/logger"
)

// Pusher delivers realtime events to a connected user. Implemented by
// the websocket manager; nil-safe via the pushTo helper.
type Pusher interface {
	Push(userID, eventType string, payload interface{}) bool
}

// Limiter gates repeated actions per key.
type Limiter interface {
	Allow(key string) bool
}

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	pusher      Pusher
	limiter     Limiter
	maxLength   int
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	accountRepo repository.AccountRepository,
	storeRepo repository.StoreRepository,
	pusher Pusher,
	limiter Limiter,
	maxLength int,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		accountRepo: accountRepo,
		storeRepo:   storeRepo,
		pusher:      pusher,
		limiter:     limiter,
		maxLength:   maxLength,
	}
}

// senderSide maps an account role to the chat-side label stored on the
// wire.
func senderSide(account *entity.Account) string {
	if account.IsStoreOwner() {
		return entity.SenderTypeStore
	}
	return entity.SenderTypeCustomer
}

// identity is a resolved display name and avatar pair for one side of
// a room.
type identity struct {
	name   string
	avatar string
}

// ownIdentity resolves the actor's own display fields. The actor is
// authoritative for its side, so no placeholders are needed here.
func (uc *ChatUseCase) ownIdentity(ctx context.Context, account *entity.Account) identity {
	if account.IsStoreOwner() {
		name := entity.DefaultStoreName
		avatar := entity.DefaultStoreAvatar
		if store, err := uc.storeRepo.GetByAccountID(ctx, account.ID); err == nil {
			if store.Name != "" {
				name = store.Name
			}
			if store.Avatar != "" {
				avatar = store.Avatar
			}
		}
		return identity{name: name, avatar: avatar}
	}

	id := identity{name: account.DisplayName(), avatar: account.Avatar}
	if id.name == "" {
		id.name = fmt.Sprintf("%s %s", entity.CustomerNamePrefix, account.ID)
	}
	if id.avatar == "" {
		id.avatar = entity.DefaultUserAvatar
	}
	return id
}

// counterpartIdentity resolves the other side's display fields on a
// best-effort basis, falling back to placeholders when the lookup
// fails. These values only fill fields that are still empty; they
// never overwrite what the counterpart wrote about itself.
func (uc *ChatUseCase) counterpartIdentity(ctx context.Context, counterpartID string, counterpartIsStore bool) identity {
	if counterpartIsStore {
		id := identity{name: entity.DefaultStoreName, avatar: entity.DefaultStoreAvatar}
		if store, err := uc.storeRepo.GetByAccountID(ctx, counterpartID); err == nil {
			if store.Name != "" {
				id.name = store.Name
			}
			if store.Avatar != "" {
				id.avatar = store.Avatar
			}
		}
		return id
	}

	id := identity{
		name:   fmt.Sprintf("%s %s", entity.CustomerNamePrefix, counterpartID),
		avatar: entity.DefaultUserAvatar,
	}
	if account, err := uc.accountRepo.GetByID(ctx, counterpartID); err == nil {
		if name := account.DisplayName(); name != "" {
			id.name = name
		}
		if account.Avatar != "" {
			id.avatar = account.Avatar
		}
	}
	return id
}

type SetupRoomInput struct {
	CounterpartID string

	// Create authorizes creating the room when it does not exist yet.
	// Without it a missing room is left untouched.
	Create bool
}

// SetupRoom ensures the 1:1 room between the actor and the counterpart
// exists and that its display fields are populated. The room id is
// derived from the sorted participant pair, so both sides converge on
// the same document no matter who opens the conversation first.
//
// The actor only ever writes its own display fields with authority;
// counterpart fields are filled when missing and left alone otherwise.
func (uc *ChatUseCase) SetupRoom(ctx context.Context, actor *entity.Account, input SetupRoomInput) (*entity.ChatRoom, error) {
	counterpartID := input.CounterpartID
	if counterpartID == "" {
		return nil, errors.Validation("counterpart id is required", nil)
	}
	if counterpartID == actor.ID {
		return nil, errors.Validation("cannot open a chat with yourself", nil)
	}

	if uc.limiter != nil && !uc.limiter.Allow(actor.ID+":setup_chat") {
		return nil, errors.TooManyRequests("Too many chat setups, slow down", nil)
	}

	roomID := entity.ChatRoomID(actor.ID, counterpartID)
	actorSide := senderSide(actor)
	counterpartIsStore := actorSide == entity.SenderTypeCustomer

	own := uc.ownIdentity(ctx, actor)

	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, errors.ChatSetup("Failed to look up chat room", err)
		}
		if !input.Create {
			return nil, err
		}
		return uc.createRoom(ctx, roomID, actor, counterpartID, actorSide, own)
	}

	patch := uc.repairPatch(ctx, room, actor.ID, actorSide, own, counterpartID, counterpartIsStore)
	if len(patch) > 0 {
		if err := uc.chatRepo.PatchRoom(ctx, roomID, patch); err != nil {
			return nil, errors.ChatSetup("Failed to repair chat room", err)
		}
		room, err = uc.chatRepo.GetRoom(ctx, roomID)
		if err != nil {
			return nil, errors.ChatSetup("Failed to reload chat room", err)
		}
	}

	return room, nil
}

func (uc *ChatUseCase) createRoom(
	ctx context.Context,
	roomID string,
	actor *entity.Account,
	counterpartID, actorSide string,
	own identity,
) (*entity.ChatRoom, error) {
	counterpartIsStore := actorSide == entity.SenderTypeCustomer
	other := uc.counterpartIdentity(ctx, counterpartID, counterpartIsStore)

	room := &entity.ChatRoom{
		ID:           roomID,
		Participants: []string{actor.ID, counterpartID},
		ParticipantRoles: map[string]string{
			actor.ID:      actorSide,
			counterpartID: otherSide(actorSide),
		},
	}

	if actorSide == entity.SenderTypeCustomer {
		room.UserID = actor.ID
		room.StoreUserID = counterpartID
		room.CustomerName = own.name
		room.CustomerAvatar = own.avatar
		room.StoreName = other.name
		room.StoreAvatar = other.avatar
	} else {
		room.UserID = counterpartID
		room.StoreUserID = actor.ID
		room.StoreName = own.name
		room.StoreAvatar = own.avatar
		room.CustomerName = other.name
		room.CustomerAvatar = other.avatar
	}

	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, errors.ChatSetup("Failed to create chat room", err)
	}

	// The merge-create may have raced another participant; read back
	// the converged document.
	created, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, errors.ChatSetup("Failed to read created chat room", err)
	}
	logger.Info("Chat room %s bootstrapped by %s", roomID, actor.ID)

	return created, nil
}

// repairPatch computes the minimal merge-patch for an existing room.
// Empty map means the room is already complete and no write happens.
func (uc *ChatUseCase) repairPatch(
	ctx context.Context,
	room *entity.ChatRoom,
	actorID, actorSide string,
	own identity,
	counterpartID string,
	counterpartIsStore bool,
) map[string]interface{} {
	patch := map[string]interface{}{}

	if len(room.Participants) == 0 {
		patch["participants"] = []string{actorID, counterpartID}
	}

	if actorSide == entity.SenderTypeCustomer {
		if room.CustomerName == "" || room.CustomerName != own.name {
			patch["customerName"] = own.name
		}
		if room.CustomerAvatar == "" || room.CustomerAvatar != own.avatar {
			patch["customerAvatar"] = own.avatar
		}
		if room.StoreName == "" {
			other := uc.counterpartIdentity(ctx, counterpartID, counterpartIsStore)
			patch["storeName"] = other.name
			if room.StoreAvatar == "" {
				patch["storeAvatar"] = other.avatar
			}
		} else if room.StoreAvatar == "" {
			other := uc.counterpartIdentity(ctx, counterpartID, counterpartIsStore)
			patch["storeAvatar"] = other.avatar
		}
		if room.StoreUserID == "" {
			patch["storeUserId"] = counterpartID
		}
		if room.UserID == "" {
			patch["userId"] = actorID
		}
	} else {
		if room.StoreName == "" || room.StoreName != own.name {
			patch["storeName"] = own.name
		}
		if room.StoreAvatar == "" || room.StoreAvatar != own.avatar {
			patch["storeAvatar"] = own.avatar
		}
		if room.CustomerName == "" {
			other := uc.counterpartIdentity(ctx, counterpartID, counterpartIsStore)
			patch["customerName"] = other.name
			if room.CustomerAvatar == "" {
				patch["customerAvatar"] = other.avatar
			}
		} else if room.CustomerAvatar == "" {
			other := uc.counterpartIdentity(ctx, counterpartID, counterpartIsStore)
			patch["customerAvatar"] = other.avatar
		}
		if room.UserID == "" {
			patch["userId"] = counterpartID
		}
		if room.StoreUserID == "" {
			patch["storeUserId"] = actorID
		}
	}

	return patch
}

func otherSide(side string) string {
	if side == entity.SenderTypeCustomer {
		return entity.SenderTypeStore
	}
	return entity.SenderTypeCustomer
}

// SendMessage validates and appends a message, then patches the room's
// last-message summary. The summary patch is best effort: a failure is
// logged but never surfaces, because the message itself is already
// durable and the next send repairs the summary.
func (uc *ChatUseCase) SendMessage(ctx context.Context, actor *entity.Account, roomID, text string) (*entity.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.Validation("message text must not be empty", nil)
	}
	if len([]rune(trimmed)) > uc.maxLength {
		return nil, errors.Validation(
			fmt.Sprintf("message exceeds %d characters", uc.maxLength), nil)
	}

	if uc.limiter != nil && !uc.limiter.Allow(actor.ID+":send_message") {
		return nil, errors.TooManyRequests("Too many messages, slow down", nil)
	}

	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(actor.ID) {
		return nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	own := uc.ownIdentity(ctx, actor)
	message := &entity.ChatMessage{
		Text:         trimmed,
		Sender:       actor.ID,
		SenderType:   senderSide(actor),
		SenderName:   own.name,
		SenderAvatar: own.avatar,
	}

	id, err := uc.chatRepo.AppendMessage(ctx, roomID, message)
	if err != nil {
		return nil, err
	}
	message.ID = id
	// Timestamp stays zero: the store assigns it, and only the
	// server-assigned value circulates through the watch feeds.

	counterpartID := room.OtherParticipant(actor.ID)

	// The summary patch also repairs display fields that are still
	// missing, so a room degraded by an old client heals on each send.
	summary := uc.repairPatch(ctx, room, actor.ID, message.SenderType, own,
		counterpartID, message.SenderType == entity.SenderTypeCustomer)
	summary["lastMessage"] = trimmed
	summary["lastMessageTime"] = repository.ServerTimestamp
	summary["lastSender"] = actor.ID
	summary["lastSenderType"] = message.SenderType
	summary["lastSenderName"] = message.SenderName
	summary["senderAvatar"] = message.SenderAvatar
	summary["unreadCount"] = repository.Increment(1)

	if err := uc.chatRepo.PatchRoom(ctx, roomID, summary); err != nil {
		logger.Warn("Summary patch failed for room %s: %v", roomID, err)
	}

	uc.pushTo(counterpartID, "new_message", map[string]interface{}{
		"room_id": roomID,
		"message": message,
	})
	uc.pushTo(counterpartID, "chat_list_update", map[string]string{
		"room_id": roomID,
	})

	return message, nil
}

func (uc *ChatUseCase) pushTo(userID, eventType string, payload interface{}) {
	if uc.pusher == nil || userID == "" {
		return
	}
	uc.pusher.Push(userID, eventType, payload)
}

// MarkRoomRead clears the unread counter when the viewer opens the
// room.
func (uc *ChatUseCase) MarkRoomRead(ctx context.Context, viewer *entity.Account, roomID string) error {
	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasParticipant(viewer.ID) {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	if room.UnreadCount == 0 {
		return nil
	}
	return uc.chatRepo.PatchRoom(ctx, roomID, map[string]interface{}{
		"unreadCount": 0,
	})
}

// RoomListItem is what the room list screen renders: the raw room plus
// the counterpart identity projected for this viewer, with placeholder
// fallbacks applied.
type RoomListItem struct {
	Room           *entity.ChatRoom `json:"room"`
	PartnerID      string           `json:"partner_id"`
	PartnerName    string           `json:"partner_name"`
	PartnerAvatar  string           `json:"partner_avatar"`
	LastSenderName string           `json:"last_sender_name"`
}

// projectRoom derives the viewer-facing fields without mutating the
// stored document. The viewer's side comes from their role, never from
// the room's denormalized ids: legacy rooms may lack userId until a
// bootstrap repairs them. Missing display data degrades to
// placeholders, the projection never fails.
func projectRoom(room *entity.ChatRoom, viewer *entity.Account) *RoomListItem {
	item := &RoomListItem{
		Room:      room,
		PartnerID: room.OtherParticipant(viewer.ID),
	}

	if viewer.IsStoreOwner() {
		item.PartnerName = room.CustomerName
		item.PartnerAvatar = room.CustomerAvatar
		if item.PartnerName == "" {
			// The customer's last message carries their name even when
			// the room's cached field was never written.
			if room.LastSenderType == entity.SenderTypeCustomer && room.LastSenderName != "" {
				item.PartnerName = room.LastSenderName
			} else {
				item.PartnerName = fmt.Sprintf("%s %s", entity.CustomerNamePrefix, item.PartnerID)
			}
		}
		if item.PartnerAvatar == "" {
			if room.LastSenderType == entity.SenderTypeCustomer && room.LastSenderAvatar != "" {
				item.PartnerAvatar = room.LastSenderAvatar
			} else {
				item.PartnerAvatar = entity.DefaultUserAvatar
			}
		}
	} else {
		item.PartnerName = room.StoreName
		item.PartnerAvatar = room.StoreAvatar
		if item.PartnerName == "" {
			item.PartnerName = entity.DefaultStoreName
		}
		if item.PartnerAvatar == "" {
			item.PartnerAvatar = entity.DefaultStoreAvatar
		}
	}

	item.LastSenderName = room.LastSenderName
	if item.LastSenderName == "" && room.LastSender != "" {
		item.LastSenderName = entity.UnknownSenderName
	}

	return item
}

func (uc *ChatUseCase) ListRooms(ctx context.Context, viewer *entity.Account, limit, offset int) ([]*RoomListItem, int64, error) {
	rooms, total, err := uc.chatRepo.ListRooms(ctx, viewer.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*RoomListItem, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, projectRoom(room, viewer))
	}
	return items, total, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, viewer *entity.Account, roomID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, 0, err
	}
	if !room.HasParticipant(viewer.ID) {
		return nil, 0, errors.Forbidden("You are not a participant of this chat", nil)
	}
	return uc.chatRepo.ListMessages(ctx, roomID, limit, offset)
}

// WatchRoomList streams the viewer's projected room list. Every change
// in the underlying store emits a fresh, fully projected snapshot.
// The subscription ends when ctx is canceled or after the first error.
func (uc *ChatUseCase) WatchRoomList(ctx context.Context, viewer *entity.Account) (<-chan []*RoomListItem, <-chan error) {
	items := make(chan []*RoomListItem, 1)
	errs := make(chan error, 1)

	rooms, repoErrs := uc.chatRepo.WatchRooms(ctx, viewer.ID)

	go func() {
		defer close(items)
		defer close(errs)

		for {
			select {
			case snapshot, ok := <-rooms:
				if !ok {
					if err, open := <-repoErrs; open {
						errs <- err
					}
					return
				}
				projected := make([]*RoomListItem, 0, len(snapshot))
				for _, room := range snapshot {
					projected = append(projected, projectRoom(room, viewer))
				}
				select {
				case items <- projected:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return items, errs
}

// WatchMessages streams the room's full message history on every
// change, after verifying the viewer belongs to the room.
func (uc *ChatUseCase) WatchMessages(ctx context.Context, viewer *entity.Account, roomID string) (<-chan []*entity.ChatMessage, <-chan error, error) {
	room, err := uc.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	if !room.HasParticipant(viewer.ID) {
		return nil, nil, errors.Forbidden("You are not a participant of this chat", nil)
	}

	messages, errs := uc.chatRepo.WatchMessages(ctx, roomID)
	return messages, errs, nil
}
