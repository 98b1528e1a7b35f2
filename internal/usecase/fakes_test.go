package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"foodapp/internal/domain/entity"
	"foodapp/internal/domain/repository"
	"foodapp/pkg/errors"
)

// In-memory fakes shared by the usecase tests.

type memChatRepo struct {
	mu       sync.Mutex
	rooms    map[string]*entity.ChatRoom
	messages map[string][]*entity.ChatMessage
	patches  []map[string]interface{}
	getCalls int
	patchErr error

	watchRooms    chan []*entity.ChatRoom
	watchMessages chan []*entity.ChatMessage
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		rooms:         make(map[string]*entity.ChatRoom),
		messages:      make(map[string][]*entity.ChatMessage),
		watchRooms:    make(chan []*entity.ChatRoom, 4),
		watchMessages: make(chan []*entity.ChatMessage, 4),
	}
}

func (r *memChatRepo) GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	room, ok := r.rooms[id]
	if !ok {
		return nil, errors.NotFound("Chat room", nil)
	}
	copied := *room
	return &copied, nil
}

func (r *memChatRepo) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *room
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.rooms[room.ID] = &copied
	return nil
}

func (r *memChatRepo) PatchRoom(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(fields) == 0 {
		return nil
	}
	if r.patchErr != nil {
		return r.patchErr
	}
	r.patches = append(r.patches, fields)

	room, ok := r.rooms[id]
	if !ok {
		room = &entity.ChatRoom{ID: id}
		r.rooms[id] = room
	}
	for key, value := range fields {
		switch key {
		case "participants":
			room.Participants = value.([]string)
		case "userId":
			room.UserID = value.(string)
		case "storeUserId":
			room.StoreUserID = value.(string)
		case "customerName":
			room.CustomerName = value.(string)
		case "customerAvatar":
			room.CustomerAvatar = value.(string)
		case "storeName":
			room.StoreName = value.(string)
		case "storeAvatar":
			room.StoreAvatar = value.(string)
		case "lastMessage":
			room.LastMessage = value.(string)
		case "lastMessageTime":
			room.LastMessageTime = time.Now()
		case "lastSender":
			room.LastSender = value.(string)
		case "lastSenderType":
			room.LastSenderType = value.(string)
		case "lastSenderName":
			room.LastSenderName = value.(string)
		case "senderAvatar":
			room.LastSenderAvatar = value.(string)
		case "unreadCount":
			if inc, ok := value.(repository.Increment); ok {
				room.UnreadCount += int(inc)
			} else {
				room.UnreadCount = value.(int)
			}
		}
	}
	return nil
}

func (r *memChatRepo) AppendMessage(ctx context.Context, roomID string, message *entity.ChatMessage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *message
	copied.ID = fmt.Sprintf("msg-%d", len(r.messages[roomID])+1)
	copied.Timestamp = time.Now()
	r.messages[roomID] = append(r.messages[roomID], &copied)
	return copied.ID, nil
}

func (r *memChatRepo) ListRooms(ctx context.Context, participantID string, limit, offset int) ([]*entity.ChatRoom, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatRoom
	for _, room := range r.rooms {
		if room.HasParticipant(participantID) {
			copied := *room
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageTime.After(out[j].LastMessageTime)
	})
	return out, int64(len(out)), nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[roomID]
	out := make([]*entity.ChatMessage, len(msgs))
	copy(out, msgs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, int64(len(out)), nil
}

func (r *memChatRepo) WatchRooms(ctx context.Context, participantID string) (<-chan []*entity.ChatRoom, <-chan error) {
	out := make(chan []*entity.ChatRoom, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case snapshot, ok := <-r.watchRooms:
				if !ok {
					return
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errs
}

func (r *memChatRepo) WatchMessages(ctx context.Context, roomID string) (<-chan []*entity.ChatMessage, <-chan error) {
	out := make(chan []*entity.ChatMessage, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for {
			select {
			case snapshot, ok := <-r.watchMessages:
				if !ok {
					return
				}
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, errs
}

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newMemAccountRepo(accounts ...*entity.Account) *memAccountRepo {
	r := &memAccountRepo{accounts: make(map[string]*entity.Account)}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *memAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.ID] = account
	return nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, errors.NotFound("Account", nil)
	}
	return account, nil
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, errors.NotFound("Account", nil)
}

func (r *memAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.ID] = account
	return nil
}

type memStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*entity.Store
}

func newMemStoreRepo(stores ...*entity.Store) *memStoreRepo {
	r := &memStoreRepo{stores: make(map[string]*entity.Store)}
	for _, s := range stores {
		r.stores[s.ID] = s
	}
	return r
}

func (r *memStoreRepo) Create(ctx context.Context, store *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[store.ID] = store
	return nil
}

func (r *memStoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, errors.NotFound("Store", nil)
	}
	return store, nil
}

func (r *memStoreRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, store := range r.stores {
		if store.AccountID == accountID {
			return store, nil
		}
	}
	return nil, errors.NotFound("Store", nil)
}

func (r *memStoreRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Store, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Store
	for _, store := range r.stores {
		out = append(out, store)
	}
	return out, int64(len(out)), nil
}

func (r *memStoreRepo) Update(ctx context.Context, store *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[store.ID] = store
	return nil
}

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*entity.Cart)}
}

func (r *memCartRepo) Get(ctx context.Context, customerID string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[customerID]
	if !ok {
		return &entity.Cart{CustomerID: customerID}, nil
	}
	copied := *cart
	copied.Items = append([]entity.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (r *memCartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.CustomerID] = cart
	return nil
}

func (r *memCartRepo) Clear(ctx context.Context, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, customerID)
	return nil
}

type memFoodRepo struct {
	mu    sync.Mutex
	foods map[string]*entity.Food
}

func newMemFoodRepo(foods ...*entity.Food) *memFoodRepo {
	r := &memFoodRepo{foods: make(map[string]*entity.Food)}
	for _, f := range foods {
		r.foods[f.ID] = f
	}
	return r
}

func (r *memFoodRepo) Create(ctx context.Context, food *entity.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.foods[food.ID] = food
	return nil
}

func (r *memFoodRepo) GetByID(ctx context.Context, id string) (*entity.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	food, ok := r.foods[id]
	if !ok {
		return nil, errors.NotFound("Food", nil)
	}
	return food, nil
}

func (r *memFoodRepo) List(ctx context.Context, filter repository.FoodFilter, limit, offset int) ([]*entity.Food, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Food
	for _, food := range r.foods {
		out = append(out, food)
	}
	return out, int64(len(out)), nil
}

func (r *memFoodRepo) Update(ctx context.Context, food *entity.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.foods[food.ID] = food
	return nil
}

func (r *memFoodRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.foods, id)
	return nil
}

func (r *memFoodRepo) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return nil, nil
}

func (r *memFoodRepo) CreateMenu(ctx context.Context, menu *entity.Menu) error { return nil }

func (r *memFoodRepo) GetMenuByID(ctx context.Context, id string) (*entity.Menu, error) {
	return nil, errors.NotFound("Menu", nil)
}

func (r *memFoodRepo) ListMenusByStore(ctx context.Context, storeID string) ([]*entity.Menu, error) {
	return nil, nil
}

func (r *memFoodRepo) UpdateMenu(ctx context.Context, menu *entity.Menu) error { return nil }

func (r *memFoodRepo) DeleteMenu(ctx context.Context, id string) error { return nil }

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newMemOrderRepo(orders ...*entity.Order) *memOrderRepo {
	r := &memOrderRepo{orders: make(map[string]*entity.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *memOrderRepo) ListByCustomer(ctx context.Context, customerID string, status string, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID && (status == "" || order.Status == status) {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) ListByStore(ctx context.Context, storeID string, status string, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if order.StoreID == storeID && (status == "" || order.Status == status) {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) ListCompletedByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, order := range r.orders {
		if order.StoreID == storeID && order.Status == entity.OrderStatusCompleted &&
			!order.CreatedAt.Before(from) && order.CreatedAt.Before(to) {
			out = append(out, order)
		}
	}
	return out, nil
}

// denyLimiter rejects everything, for rate limit tests.
type denyLimiter struct{}

func (denyLimiter) Allow(key string) bool { return false }
